package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartshttp "github.com/dejobratic/storefront/internal/carts/adapters/http"
	cartsmongo "github.com/dejobratic/storefront/internal/carts/adapters/mongo"
	cartsapp "github.com/dejobratic/storefront/internal/carts/app"
	catalogcache "github.com/dejobratic/storefront/internal/catalog/adapters/cache"
	cataloghttp "github.com/dejobratic/storefront/internal/catalog/adapters/http"
	catalogmongo "github.com/dejobratic/storefront/internal/catalog/adapters/mongo"
	catalogapp "github.com/dejobratic/storefront/internal/catalog/app"
	catalogports "github.com/dejobratic/storefront/internal/catalog/ports"
	"github.com/dejobratic/storefront/internal/config"
	"github.com/dejobratic/storefront/internal/docstore"
	"github.com/dejobratic/storefront/internal/events"
	"github.com/dejobratic/storefront/internal/httpapi"
	"github.com/dejobratic/storefront/internal/inventory"
	ordersadapters "github.com/dejobratic/storefront/internal/orders/adapters"
	ordershttp "github.com/dejobratic/storefront/internal/orders/adapters/http"
	ordersmongo "github.com/dejobratic/storefront/internal/orders/adapters/mongo"
	ordersapp "github.com/dejobratic/storefront/internal/orders/app"
	ordersmetrics "github.com/dejobratic/storefront/internal/orders/metrics"
	paymentsgateway "github.com/dejobratic/storefront/internal/payments/adapters/gateway"
	paymentshttp "github.com/dejobratic/storefront/internal/payments/adapters/http"
	paymentsmongo "github.com/dejobratic/storefront/internal/payments/adapters/mongo"
	paymentsapp "github.com/dejobratic/storefront/internal/payments/app"
	paymentsmetrics "github.com/dejobratic/storefront/internal/payments/metrics"
	"github.com/dejobratic/storefront/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	client, err := docstore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		logger.Error("failed to connect to document store", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if cfg.Mongo.AutoMigrate {
		logger.Info("running store migrations", "path", cfg.Mongo.MigrationsPath)
		if err := docstore.RunMigrations(cfg.Mongo.URI, cfg.Mongo.MigrationsPath); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations completed successfully")
	}

	db := client.Database(cfg.Mongo.Database)
	meter := otel.Meter(cfg.Service.Name)
	if mp := tel.MeterProvider(); mp != nil {
		meter = mp.Meter(cfg.Service.Name)
	}

	storeMetrics, err := docstore.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create store metrics", "error", err)
		os.Exit(1)
	}
	eventMetrics, err := events.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create event metrics", "error", err)
		os.Exit(1)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}
	paymentMetrics, err := paymentsmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create payment metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := httpapi.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	var productCache catalogports.ProductCache = catalogcache.NewNoop()
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer func() { _ = redisClient.Close() }()
		productCache = catalogcache.NewRedisCache(redisClient, cfg.Cache.ProductTTL)
	}

	productRepo := catalogmongo.NewRepository(db)
	cartRepo := cartsmongo.NewRepository(db)
	orderRepo := ordersadapters.NewObservableRepository(ordersmongo.NewRepository(db), storeMetrics)
	paymentRepo := paymentsmongo.NewRepository(db)

	coordinator := inventory.NewCoordinator(productRepo, cfg.Inventory.DecrementRetries, logger)
	bus := events.NewObservableBus(events.NewNoopBus(), eventMetrics)

	catalogService := catalogapp.NewService(productRepo, productCache, logger)
	cartService := cartsapp.NewService(cartRepo, productRepo, logger)
	orderService := ordersapp.NewService(orderRepo, productRepo, coordinator, bus, logger, orderMetrics)
	paymentService := paymentsapp.NewService(
		paymentRepo,
		orderService,
		paymentsgateway.NewSimulated(cfg.Payment.GatewaySuccessRate),
		logger,
		paymentMetrics,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := docstore.CheckHealth(r.Context(), client); err != nil {
			httpapi.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.HandleFunc(cfg.HTTP.MetricsPath, func(w http.ResponseWriter, _ *http.Request) {
		// Metrics are exported over OTLP; this endpoint exists for probes
		// that expect a scrape target to respond.
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("# metrics are exported via OTLP\n"))
	})

	cataloghttp.NewHandler(catalogService).Register(mux)
	cartshttp.NewHandler(cartService).Register(mux)
	ordershttp.NewHandler(orderService).Register(mux)
	paymentshttp.NewHandler(paymentService).Register(mux)

	handler := httpapi.WithRecovery(
		httpapi.WithLogging(
			httpapi.WithMetrics(mux, httpMetrics),
			logger,
		),
		logger,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
