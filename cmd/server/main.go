package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/storebooks/backend/internal/application/inventory"
	partnerapp "github.com/storebooks/backend/internal/application/partner"
	storeapp "github.com/storebooks/backend/internal/application/store"
	tradeapp "github.com/storebooks/backend/internal/application/trade"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/infrastructure/auth"
	"github.com/storebooks/backend/internal/infrastructure/cache"
	"github.com/storebooks/backend/internal/infrastructure/config"
	"github.com/storebooks/backend/internal/infrastructure/logger"
	"github.com/storebooks/backend/internal/infrastructure/persistence"
	"github.com/storebooks/backend/internal/interfaces/http/handler"
	"github.com/storebooks/backend/internal/interfaces/http/middleware"
	"github.com/storebooks/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting StoreBooks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	storeService := storeapp.NewService(storeRepo)
	itemService := inventoryapp.NewItemService(itemRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	invoiceService := tradeapp.NewInvoiceService(invoiceRepo, itemRepo, txScope, log)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, itemRepo, txScope, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Idempotency store: Redis when enabled, otherwise in-memory
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins))
	engine.Use(middleware.Idempotency(idempotencyStore, middleware.DefaultIdempotencyTTL, log))

	if cfg.JWT.Secret != "" {
		engine.Use(middleware.JWTAuthWithConfig(middleware.DefaultJWTConfig(jwtService)))
	} else {
		log.Warn("JWT secret not configured, authentication disabled")
	}

	r := router.New(engine,
		router.WithAPIVersion("v1"),
		router.WithScopeMiddleware(middleware.StoreScope(storeService)),
	)
	r.Register(handler.NewSystemHandler(db, version))
	r.Register(handler.NewStoreHandler(storeService))
	r.RegisterScoped(handler.NewInventoryHandler(itemService))
	r.RegisterScoped(handler.NewCustomerHandler(customerService))
	r.RegisterScoped(handler.NewSupplierHandler(supplierService))
	r.RegisterScoped(handler.NewInvoiceHandler(invoiceService))
	r.RegisterScoped(handler.NewPurchaseHandler(purchaseService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
