package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration for the API service.
type Config struct {
	HTTP      HTTPConfig
	Mongo     MongoConfig
	Cache     CacheConfig
	Inventory InventoryConfig
	Payment   PaymentConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	MetricsPath   string
	ShutdownGrace int
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	AutoMigrate    bool
	MigrationsPath string
}

type CacheConfig struct {
	Enabled    bool
	RedisAddr  string
	ProductTTL time.Duration
}

type InventoryConfig struct {
	DecrementRetries int
}

type PaymentConfig struct {
	GatewaySuccessRate float64
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	defaultHTTPPort           = 8080
	defaultMetricsPath        = "/metrics"
	defaultShutdownGrace      = 15
	defaultMongoURI           = "mongodb://localhost:27017/storefront"
	defaultMongoDatabase      = "storefront"
	defaultConnectTimeout     = 10 * time.Second
	defaultAutoMigrate        = true
	defaultMigrationsPath     = "migrations"
	defaultRedisAddr          = "localhost:6379"
	defaultProductTTL         = 15 * time.Minute
	defaultDecrementRetries   = 3
	defaultGatewaySuccessRate = 0.9
	defaultServiceName        = "storefront-api"
	defaultServiceVersion     = "0.1.0"
	defaultEnvironment        = "development"
	defaultLogLevel           = "info"
	defaultOTelSampleRate     = 1.0
)

// Load reads configuration from environment variables, applying defaults when needed.
func Load() (*Config, error) {
	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	mongoCfg, err := loadMongoConfig()
	if err != nil {
		return nil, fmt.Errorf("loading mongo config: %w", err)
	}

	cacheCfg, err := loadCacheConfig()
	if err != nil {
		return nil, fmt.Errorf("loading cache config: %w", err)
	}

	invCfg, err := loadInventoryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading inventory config: %w", err)
	}

	payCfg, err := loadPaymentConfig()
	if err != nil {
		return nil, fmt.Errorf("loading payment config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	return &Config{
		HTTP:      httpCfg,
		Mongo:     mongoCfg,
		Cache:     cacheCfg,
		Inventory: invCfg,
		Payment:   payCfg,
		Telemetry: telCfg,
		Service:   loadServiceConfig(),
	}, nil
}

func loadHTTPConfig() (HTTPConfig, error) {
	port := defaultHTTPPort
	if value, ok := os.LookupEnv("API_HTTP_PORT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_HTTP_PORT: %w", err)
		}
		port = parsed
	}

	shutdownGrace := defaultShutdownGrace
	if value, ok := os.LookupEnv("API_SHUTDOWN_GRACE_SECONDS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_SHUTDOWN_GRACE_SECONDS: %w", err)
		}
		shutdownGrace = parsed
	}

	return HTTPConfig{
		Port:          port,
		MetricsPath:   getEnvOrDefault("API_METRICS_PATH", defaultMetricsPath),
		ShutdownGrace: shutdownGrace,
	}, nil
}

func loadMongoConfig() (MongoConfig, error) {
	connectTimeout := defaultConnectTimeout
	if value, ok := os.LookupEnv("MONGO_CONNECT_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return MongoConfig{}, fmt.Errorf("invalid MONGO_CONNECT_TIMEOUT: %w", err)
		}
		connectTimeout = parsed
	}

	autoMigrate := defaultAutoMigrate
	if value, ok := os.LookupEnv("AUTO_MIGRATE"); ok {
		autoMigrate = value == "true"
	}

	return MongoConfig{
		URI:            getEnvOrDefault("MONGO_URI", defaultMongoURI),
		Database:       getEnvOrDefault("MONGO_DATABASE", defaultMongoDatabase),
		ConnectTimeout: connectTimeout,
		AutoMigrate:    autoMigrate,
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath),
	}, nil
}

func loadCacheConfig() (CacheConfig, error) {
	productTTL := defaultProductTTL
	if value, ok := os.LookupEnv("PRODUCT_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return CacheConfig{}, fmt.Errorf("invalid PRODUCT_CACHE_TTL: %w", err)
		}
		productTTL = parsed
	}

	return CacheConfig{
		Enabled:    getBoolEnv("CACHE_ENABLED", true),
		RedisAddr:  getEnvOrDefault("REDIS_ADDR", defaultRedisAddr),
		ProductTTL: productTTL,
	}, nil
}

func loadInventoryConfig() (InventoryConfig, error) {
	retries := defaultDecrementRetries
	if value, ok := os.LookupEnv("STOCK_DECREMENT_RETRIES"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return InventoryConfig{}, fmt.Errorf("invalid STOCK_DECREMENT_RETRIES: %w", err)
		}
		if parsed < 1 {
			return InventoryConfig{}, fmt.Errorf("STOCK_DECREMENT_RETRIES must be at least 1, got %d", parsed)
		}
		retries = parsed
	}

	return InventoryConfig{DecrementRetries: retries}, nil
}

func loadPaymentConfig() (PaymentConfig, error) {
	successRate := defaultGatewaySuccessRate
	if value, ok := os.LookupEnv("PAYMENT_GATEWAY_SUCCESS_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return PaymentConfig{}, fmt.Errorf("invalid PAYMENT_GATEWAY_SUCCESS_RATE: %w", err)
		}
		if parsed < 0.0 || parsed > 1.0 {
			return PaymentConfig{}, fmt.Errorf("PAYMENT_GATEWAY_SUCCESS_RATE must be between 0.0 and 1.0, got %v", parsed)
		}
		successRate = parsed
	}

	return PaymentConfig{GatewaySuccessRate: successRate}, nil
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		OTelEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		EnableTracing: getBoolEnv("OTEL_ENABLE_TRACING", true),
		EnableMetrics: getBoolEnv("OTEL_ENABLE_METRICS", true),
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("API_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
