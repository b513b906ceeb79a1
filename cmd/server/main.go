package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"github.com/mgarrido/agrotrace/internal/adapter/collab"
	"github.com/mgarrido/agrotrace/internal/adapter/handler"
	"github.com/mgarrido/agrotrace/internal/adapter/handler/pb"
	"github.com/mgarrido/agrotrace/internal/adapter/storage"
	"github.com/mgarrido/agrotrace/internal/core/access"
	"github.com/mgarrido/agrotrace/internal/core/domain"
	"github.com/mgarrido/agrotrace/internal/core/service"
	"github.com/mgarrido/agrotrace/internal/port"
)

const (
	httpPort    = ":8080"
	grpcPort    = ":50051"
	mysqlDSN    = "root:root@tcp(localhost:3306)/agrotrace?parseTime=true"
	redisAddr   = "localhost:6379"
	workerCount = 4
	queueSize   = 10000

	adminAccount    = domain.Identity("admin")
	treasuryAccount = domain.Identity("treasury")
	marketAccount   = domain.Identity("market-service")
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	log.Println("connected to redis")

	// Initialize adapters
	redisAdapter := storage.NewRedisAdapter(rdb)
	mysqlAdapter := storage.NewMySQLAdapter(db)

	// Initialize collaborators
	ownership := collab.NewOwnershipRegistry()
	token := collab.NewUnitToken()
	varieties := collab.NewVarietyLookup()
	payments := collab.NewPaymentRail()

	// Initialize role registry and the deployment-time grants. The market
	// service account holds production-manager so acquisitions can reduce
	// productions without re-deriving the role per caller.
	roles := access.NewRegistry(adminAccount)
	if err := roles.Grant(adminAccount, domain.RoleProductionManager, marketAccount); err != nil {
		log.Fatalf("failed to grant market capability: %v", err)
	}

	// Initialize services
	registry := service.NewRegistryService(roles, ownership, varieties, payments, treasuryAccount, queueSize)
	market := service.NewMarketService(roles, registry, token, payments, redisAdapter, marketAccount)

	// Start journaling workers
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, registry.Events(), mysqlAdapter, redisAdapter)
		}(i)
	}
	log.Printf("started %d journal workers", workerCount)

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	grpcHandler := handler.NewGRPCHandler(market)
	pb.RegisterMarketServer(grpcServer, grpcHandler)

	// Start gRPC server
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", grpcPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(roles, registry, market, mysqlAdapter, redisAdapter)
	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    httpPort,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpPort)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	// Stop HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Stop gRPC server
	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	// Close event queue and wait for workers
	registry.Close()
	wg.Wait()
	log.Println("journal workers stopped")

	// Close connections
	rdb.Close()
	db.Close()
	log.Println("connections closed")
}

// workerLoop drains committed events: each one is journaled to MySQL and,
// when it carries a remaining amount, mirrored to Redis for stock reads.
func workerLoop(id int, queue <-chan domain.Event, journal port.EventJournal, cache port.QuantityCache) {
	for ev := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := journal.Append(ctx, ev); err != nil {
			log.Printf("worker %d: failed to journal event %s: %v", id, ev.ID, err)
		}

		switch ev.Type {
		case domain.EventProductionAdded, domain.EventProductionReduced:
			if err := cache.SetRemaining(ctx, ev.AssetID, ev.ProductionID, ev.Remaining); err != nil {
				log.Printf("worker %d: failed to mirror remaining for event %s: %v", id, ev.ID, err)
			}
		}

		cancel()
	}
}
