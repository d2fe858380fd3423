package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/ecommerce/internal/config"
	"github.com/Skotchmaster/ecommerce/internal/db"
	"github.com/Skotchmaster/ecommerce/internal/events"
	"github.com/Skotchmaster/ecommerce/internal/httpserver"
	"github.com/Skotchmaster/ecommerce/internal/idempotency"
	"github.com/Skotchmaster/ecommerce/internal/identity"
	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/ecommerce/internal/middleware/logging"
	"github.com/Skotchmaster/ecommerce/internal/middleware/metrics"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/payment"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/search"
	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/tokens"
	"github.com/Skotchmaster/ecommerce/internal/transport"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(logging.Options{Service: cfg.ServiceName, Level: cfg.LogLevel})
	ctx := logging.IntoContext(context.Background(), log)

	decimal.MarshalJSONWithoutQuotes = true

	startCtx, cancelStart := context.WithTimeout(ctx, 30*time.Second)
	defer cancelStart()

	gdb, err := db.Open(startCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(gdb); err != nil {
		log.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	if err := models.Seed(startCtx, gdb); err != nil {
		log.Error("db_seed_failed", "error", err)
		os.Exit(1)
	}

	prod := events.NewProducer(cfg.KafkaBrokers)
	if !prod.Enabled() {
		log.Warn("kafka_disabled", "reason", "KAFKA_BROKERS not set")
	}

	var idem service.IdempotencyStore
	if cfg.RedisAddr != "" {
		rdb, err := idempotency.Connect(startCtx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Error("redis_init_failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		idem = idempotency.NewRedisStore(rdb, cfg.IdempotencyTTL)
	} else {
		log.Warn("idempotency_disabled", "reason", "REDIS_ADDR not set")
	}

	products := repo.New[models.Product](gdb, "Category")
	productSvc := &service.ProductService{Repo: products, Events: prod}
	productHTTP := &httpserver.ProductHTTP{Svc: productSvc}
	if cfg.ESURL != "" {
		es, err := search.NewClient(startCtx, search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword, Index: cfg.ESIndex})
		if err != nil {
			log.Error("es_init_failed", "error", err)
			os.Exit(1)
		}
		index := &search.Products{ES: es, Index: cfg.ESIndex}
		productSvc.Index = index
		productHTTP.Search = index
	} else {
		log.Warn("search_disabled", "reason", "ES_URL not set")
	}

	tm := &tokens.Manager{
		DB:         gdb,
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		TTL:        cfg.JWTTTL,
		RefreshTTL: cfg.RefreshTTL,
	}
	roles := &identity.RoleManager{DB: gdb}
	validator := transport.NewValidator()
	methods := &service.PaymentMethodService{Repo: &repo.PaymentMethodRepo{DB: gdb}}
	gateway := payment.NewStripeGateway(payment.Config{
		SecretKey:  cfg.StripeSecretKey,
		APIURL:     cfg.StripeAPIURL,
		SuccessURL: cfg.PaymentSuccessURL,
		CancelURL:  cfg.PaymentCancelURL,
		Timeout:    cfg.PaymentTimeout,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	mw := auth.New(tm)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(m.Middleware(), loggingmw.RequestLogger(log))

	httpserver.Register(e, &httpserver.Deps{
		DB: gdb,
		Auth: &httpserver.AuthHTTP{Svc: &service.AuthenticationService{
			Users:     &identity.UserManager{DB: gdb, Roles: roles},
			Roles:     roles,
			Tokens:    tm,
			Validator: validator,
			Events:    prod,
		}},
		Products:   productHTTP,
		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: repo.New[models.Category](gdb, "Products"), Events: prod}},
		Carts: &httpserver.CartHTTP{Svc: &service.CartService{
			Products:       products,
			PaymentMethods: methods,
			History:        &repo.CheckoutRepo{DB: gdb},
			Gateway:        gateway,
			Idempotency:    idem,
			Events:         prod,
			PaymentTimeout: cfg.PaymentTimeout,
		}},
		PaymentMethods: &httpserver.PaymentMethodsHTTP{Svc: methods},
		RequireAuth:    mw.RequireAuth,
		RequireAdmin:   mw.RequireAdmin,
		Metrics:        m.Handler(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info("http_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("db_close_error", "error", err)
		}
	} else {
		log.Error("db_handle_error", "error", err)
	}

	if err := prod.Close(); err != nil {
		log.Error("kafka_close_error", "error", err)
	}

	log.Info("shutdown_complete")
}
