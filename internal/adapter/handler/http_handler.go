package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mgarrido/agrotrace/internal/core/access"
	"github.com/mgarrido/agrotrace/internal/core/domain"
	"github.com/mgarrido/agrotrace/internal/core/service"
	"github.com/mgarrido/agrotrace/internal/port"
)

// HTTPHandler exposes the registry, market and admin surfaces as a JSON API.
// The caller identity comes from the X-Identity header; attached payments
// are explicit request fields.
type HTTPHandler struct {
	roles    *access.Registry
	registry *service.RegistryService
	market   *service.MarketService
	journal  port.EventJournal
	cache    port.QuantityCache
}

func NewHTTPHandler(
	roles *access.Registry,
	registry *service.RegistryService,
	market *service.MarketService,
	journal port.EventJournal,
	cache port.QuantityCache,
) *HTTPHandler {
	return &HTTPHandler{
		roles:    roles,
		registry: registry,
		market:   market,
		journal:  journal,
		cache:    cache,
	}
}

// Register wires all routes onto the mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/plant", h.Plant)
	mux.HandleFunc("/api/treatment", h.AddTreatment)
	mux.HandleFunc("/api/production", h.AddProduction)
	mux.HandleFunc("/api/reduce", h.ReduceProduction)
	mux.HandleFunc("/api/transport", h.RecordTransport)
	mux.HandleFunc("/api/storage", h.RecordStorage)
	mux.HandleFunc("/api/location", h.UpdateLocation)
	mux.HandleFunc("/api/class", h.UpdateClass)
	mux.HandleFunc("/api/acquire", h.Acquire)
	mux.HandleFunc("/api/list", h.ListForSale)
	mux.HandleFunc("/api/buy", h.Buy)
	mux.HandleFunc("/api/roles/grant", h.GrantRole)
	mux.HandleFunc("/api/roles/revoke", h.RevokeRole)
	mux.HandleFunc("/api/council/add", h.AddCouncilMember)
	mux.HandleFunc("/api/council/remove", h.RemoveCouncilMember)
	mux.HandleFunc("/api/fee", h.PlantingFee)
	mux.HandleFunc("/api/withdraw", h.WithdrawFees)
	mux.HandleFunc("/api/asset", h.Asset)
	mux.HandleFunc("/api/productions", h.Productions)
	mux.HandleFunc("/api/treatments", h.Treatments)
	mux.HandleFunc("/api/inventory", h.Inventory)
	mux.HandleFunc("/api/events", h.Events)
	mux.HandleFunc("/api/remaining", h.Remaining)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientQuantity):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotListed):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateRequest):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrReentrancy):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPayment):
		status = http.StatusPaymentRequired
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// identity extracts the caller from the X-Identity header. decode rejects
// non-POST methods and malformed bodies in one place.
func identity(r *http.Request) domain.Identity {
	return domain.Identity(r.Header.Get("X-Identity"))
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) (domain.Identity, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
	caller := identity(r)
	if caller == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing X-Identity header"})
		return "", false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return "", false
	}
	return caller, true
}

func queryID(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type locationRequest struct {
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
	ProvinceCode int    `json:"province_code"`
	PolygonCode  int    `json:"polygon_code"`
	Plot         string `json:"plot"`
	Municipality string `json:"municipality"`
}

func (l locationRequest) toDomain() domain.Location {
	return domain.Location{
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		ProvinceCode: l.ProvinceCode,
		PolygonCode:  l.PolygonCode,
		Plot:         l.Plot,
		Municipality: l.Municipality,
	}
}

type plantRequest struct {
	Payment     uint64          `json:"payment"`
	VarietyCode int             `json:"variety_code"`
	Class       string          `json:"class"`
	Location    locationRequest `json:"location"`
}

func (h *HTTPHandler) Plant(w http.ResponseWriter, r *http.Request) {
	var req plantRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	id, err := h.registry.Plant(r.Context(), caller, req.Payment, req.VarietyCode, req.Class, req.Location.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"asset_id": id})
}

type treatmentRequest struct {
	AssetID          uint64 `json:"asset_id"`
	Date             string `json:"date"`
	Dose             string `json:"dose"`
	Product          string `json:"product"`
	ActiveIngredient string `json:"active_ingredient"`
	Method           string `json:"method"`
	Target           string `json:"target"`
	Operator         string `json:"operator"`
}

func parseDate(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now()
}

func (h *HTTPHandler) AddTreatment(w http.ResponseWriter, r *http.Request) {
	var req treatmentRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	index, err := h.registry.AddTreatment(r.Context(), caller, req.AssetID, domain.Treatment{
		Date:             parseDate(req.Date),
		Dose:             req.Dose,
		Product:          req.Product,
		ActiveIngredient: req.ActiveIngredient,
		Method:           req.Method,
		Target:           req.Target,
		Operator:         req.Operator,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"index": index})
}

type productionRequest struct {
	AssetID  uint64 `json:"asset_id"`
	Date     string `json:"date"`
	Quantity uint64 `json:"quantity"`
}

func (h *HTTPHandler) AddProduction(w http.ResponseWriter, r *http.Request) {
	var req productionRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	index, err := h.registry.AddProduction(r.Context(), caller, req.AssetID, parseDate(req.Date), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"index": index})
}

type reduceRequest struct {
	AssetID      uint64 `json:"asset_id"`
	ProductionID uint64 `json:"production_id"`
	Amount       uint64 `json:"amount"`
}

func (h *HTTPHandler) ReduceProduction(w http.ResponseWriter, r *http.Request) {
	var req reduceRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.registry.ReduceProduction(r.Context(), caller, req.AssetID, req.ProductionID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type logisticsRequest struct {
	AssetID      uint64 `json:"asset_id"`
	ProductionID uint64 `json:"production_id"`
	Note         string `json:"note"`
}

func (h *HTTPHandler) RecordTransport(w http.ResponseWriter, r *http.Request) {
	var req logisticsRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.registry.RecordTransport(r.Context(), caller, req.AssetID, req.ProductionID, req.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) RecordStorage(w http.ResponseWriter, r *http.Request) {
	var req logisticsRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.registry.RecordStorage(r.Context(), caller, req.AssetID, req.ProductionID, req.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateLocationRequest struct {
	AssetID  uint64          `json:"asset_id"`
	Location locationRequest `json:"location"`
}

func (h *HTTPHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.registry.UpdateLocation(r.Context(), caller, req.AssetID, req.Location.toDomain()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateClassRequest struct {
	AssetID uint64 `json:"asset_id"`
	Class   string `json:"class"`
}

func (h *HTTPHandler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var req updateClassRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.registry.UpdateClass(r.Context(), caller, req.AssetID, req.Class); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type acquireRequest struct {
	AssetID      uint64 `json:"asset_id"`
	ProductionID uint64 `json:"production_id"`
	Amount       uint64 `json:"amount"`
}

func (h *HTTPHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	var req acquireRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	index, err := h.market.Acquire(r.Context(), caller, req.AssetID, req.ProductionID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"index": index})
}

type listRequest struct {
	Index        uint64 `json:"index"`
	PricePerUnit uint64 `json:"price_per_unit"`
}

func (h *HTTPHandler) ListForSale(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.market.ListForSale(r.Context(), caller, req.Index, req.PricePerUnit); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type buyRequest struct {
	RequestID   string `json:"request_id"`
	Distributor string `json:"distributor"`
	Index       uint64 `json:"index"`
	Amount      uint64 `json:"amount"`
	Payment     uint64 `json:"payment"`
}

func (h *HTTPHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}
	if req.RequestID == "" || req.Distributor == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		return
	}

	err := h.market.Buy(r.Context(), caller, req.RequestID, domain.Identity(req.Distributor), req.Index, req.Amount, req.Payment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type roleRequest struct {
	Role     string `json:"role"`
	Identity string `json:"identity"`
}

func (h *HTTPHandler) GrantRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.roles.Grant(caller, domain.Role(req.Role), domain.Identity(req.Identity)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.roles.Revoke(caller, domain.Role(req.Role), domain.Identity(req.Identity)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type councilRequest struct {
	Identity string `json:"identity"`
}

func (h *HTTPHandler) AddCouncilMember(w http.ResponseWriter, r *http.Request) {
	var req councilRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.roles.AddCouncilMember(caller, domain.Identity(req.Identity)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *HTTPHandler) RemoveCouncilMember(w http.ResponseWriter, r *http.Request) {
	var req councilRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.roles.RemoveCouncilMember(caller, domain.Identity(req.Identity)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type feeRequest struct {
	Fee uint64 `json:"fee"`
}

func (h *HTTPHandler) PlantingFee(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, map[string]uint64{"fee": h.registry.PlantingFee()})
		return
	}

	var req feeRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	if err := h.registry.SetPlantingFee(caller, req.Fee); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type withdrawRequest struct {
	To string `json:"to"`
}

func (h *HTTPHandler) WithdrawFees(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	caller, ok := decode(w, r, &req)
	if !ok {
		return
	}

	amount, err := h.registry.WithdrawFees(r.Context(), caller, domain.Identity(req.To))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"amount": amount})
}

func (h *HTTPHandler) Asset(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}

	asset, err := h.registry.Asset(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *HTTPHandler) Productions(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "asset_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset_id"})
		return
	}

	productions, err := h.registry.Productions(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productions)
}

func (h *HTTPHandler) Treatments(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "asset_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset_id"})
		return
	}

	treatments, err := h.registry.Treatments(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, treatments)
}

func (h *HTTPHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	distributor := r.URL.Query().Get("distributor")
	if distributor == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing distributor"})
		return
	}
	writeJSON(w, http.StatusOK, h.market.Inventory(domain.Identity(distributor)))
}

func (h *HTTPHandler) Events(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "asset_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset_id"})
		return
	}

	events, err := h.journal.EventsByAsset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Remaining serves the mirrored remaining amount for a production, falling
// back to the ledger on a cache miss.
func (h *HTTPHandler) Remaining(w http.ResponseWriter, r *http.Request) {
	assetID, err := queryID(r, "asset_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid asset_id"})
		return
	}
	productionID, err := queryID(r, "production_id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid production_id"})
		return
	}

	if h.cache != nil {
		if remaining, ok, err := h.cache.Remaining(r.Context(), assetID, productionID); err == nil && ok {
			writeJSON(w, http.StatusOK, map[string]uint64{"remaining": remaining})
			return
		}
	}

	p, err := h.registry.Production(assetID, productionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"remaining": p.Amount})
}
