package handler

import (
	"context"
	"errors"

	"github.com/mgarrido/agrotrace/internal/adapter/handler/pb"
	"github.com/mgarrido/agrotrace/internal/core/domain"
	"github.com/mgarrido/agrotrace/internal/core/service"
)

// GRPCHandler serves the purchase hot path over gRPC.
type GRPCHandler struct {
	pb.UnimplementedMarketServer
	market *service.MarketService
}

func NewGRPCHandler(market *service.MarketService) *GRPCHandler {
	return &GRPCHandler{market: market}
}

func (h *GRPCHandler) Buy(ctx context.Context, req *pb.BuyRequest) (*pb.BuyResponse, error) {
	err := h.market.Buy(ctx,
		domain.Identity(req.GetBuyer()),
		req.GetRequestId(),
		domain.Identity(req.GetDistributor()),
		req.GetIndex(),
		req.GetAmount(),
		req.GetPayment(),
	)
	if err != nil {
		return &pb.BuyResponse{Success: false, Message: buyMessage(err)}, nil
	}
	return &pb.BuyResponse{Success: true, Message: "sale settled"}, nil
}

func buyMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateRequest):
		return "duplicate request"
	case errors.Is(err, domain.ErrNotListed):
		return "not listed for sale"
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return "insufficient quantity"
	case errors.Is(err, domain.ErrInvalidPayment):
		return "payment must equal amount times price"
	case errors.Is(err, domain.ErrNotFound):
		return "no such entry"
	}
	return "internal error"
}
