package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"payguard/internal/accounts"
	"payguard/internal/breaker"
	"payguard/internal/cache"
	"payguard/internal/payments"
	"payguard/internal/ratelimiter"
	"payguard/internal/retry"
	"payguard/internal/secrets"
)

var version = "1.0.0"

// NewLogger creates a zap logger with a colored console encoder.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func envInt(name string, fallback int) int {
	val, exists := os.LookupEnv(name)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %d\n", name, fallback)
		return fallback
	}
	return parsed
}

func envString(name, fallback string) string {
	if val, exists := os.LookupEnv(name); exists && val != "" {
		return val
	}
	return fallback
}

func envBool(name string, fallback bool) bool {
	val, exists := os.LookupEnv(name)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %v\n", name, fallback)
		return fallback
	}
	return parsed
}

func loadConfig() config {
	return config{
		addr:       envString("ADDR", ":8080"),
		env:        envString("ENV", "development"),
		gatewayURL: envString("GATEWAY_BASE_URL", "https://api.gateway.example.com/v1"),
		redis: redisConfig{
			addr:     envString("REDIS_ADDR", "localhost:6379"),
			password: os.Getenv("REDIS_PASSWORD"),
			db:       envInt("REDIS_DB", 0),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		breaker: breaker.Thresholds{
			FailureCount: envInt("BREAKER_FAILURE_THRESHOLD", 5),
			TimeToExpire: time.Duration(envInt("BREAKER_TTL_SECONDS", 120)) * time.Second,
		},
		retryPolicy: retry.Policy{
			MaxRetries:        envInt("RETRY_MAX", 2),
			RetryDelay:        time.Duration(envInt("RETRY_DELAY_MS", 500)) * time.Millisecond,
			BackoffMultiplier: float64(envInt("RETRY_BACKOFF_MULTIPLIER", 2)),
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: envInt("RATELIMITER_REQUESTS_COUNT", 200),
			TimeFrame:            5 * time.Second,
			Enabled:              envBool("RATE_LIMITER_ENABLED", false),
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, relying on process environment")
	}

	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	ctx := context.Background()

	// Shared cache, the one store every instance sees
	redisClient, err := cache.NewRedisClient(ctx, cfg.redis.addr, cfg.redis.password, cfg.redis.db)
	if err != nil {
		logger.Fatalw("redis connection failed", "addr", cfg.redis.addr, "error", err)
	}
	defer redisClient.Close()
	logger.Info("redis connection established")

	cacheStore := cache.NewRedisStore(redisClient)
	circuit := breaker.NewCircuitStore(cacheStore, logger)

	secretStore := secrets.NewEnvStore()
	resolver := accounts.NewCredentialResolver(secretStore)
	manager := accounts.NewManager(resolver, accounts.RESTFactory(cfg.gatewayURL), logger)

	engine := retry.NewEngine(circuit, cfg.breaker, logger)
	service := payments.NewService(manager, engine, cfg.retryPolicy, secretStore, logger)

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:      cfg,
		logger:      logger,
		accounts:    manager,
		circuit:     circuit,
		payments:    service,
		rateLimiter: rateLimiter,
	}

	// Warm every merchant account; only a total failure is fatal.
	if err := manager.InitializeAll(ctx); err != nil {
		logger.Fatalw("payment account initialization failed", "error", err)
	}

	// Metrics at /v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
