package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	cataloghttp "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-commerce-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"

	customerhttp "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/http"
	customermemory "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/Apurer/go-commerce-api/internal/domains/customers/application"
	customerports "github.com/Apurer/go-commerce-api/internal/domains/customers/ports"

	ordershttp "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"

	platformmigrations "github.com/Apurer/go-commerce-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-commerce-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-commerce-api/internal/platform/postgres"
)

// Run boots the commerce HTTP API with observability and repositories wired.
func Run(ctx context.Context) error {
	const serviceName = "commerce-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	customerRepo, catalogRepo, orderRepo := buildRepositories(db)

	customerService := customerapp.NewService(customerRepo)
	catalogService := catalogapp.NewService(catalogRepo)
	coreOrderService := ordersapp.NewService(orderRepo, customerRepo, catalogRepo)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	customerhttp.NewHandler(customerService).Register(router)
	cataloghttp.NewHandler(catalogService).Register(router)
	ordershttp.NewHandler(orderService).Register(router)

	addr := ":" + cfg.Port
	logger.Info("commerce API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("commerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories wires postgres-backed adapters when a DB connection is
// available and falls back to the in-memory set otherwise. The in-memory
// order repository needs the catalog repository to honor the atomic
// create-plus-decrement contract.
func buildRepositories(db *gorm.DB) (customerports.Repository, catalogports.Repository, ordersports.Repository) {
	if db != nil {
		return customerpostgres.NewRepository(db), catalogpostgres.NewRepository(db), orderspostgres.NewRepository(db)
	}
	catalogRepo := catalogmemory.NewRepository()
	return customermemory.NewRepository(), catalogRepo, ordersmemory.NewRepository(catalogRepo)
}
