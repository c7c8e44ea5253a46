package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"payguard/internal/accounts"
	"payguard/internal/breaker"
	"payguard/internal/payments"
	"payguard/internal/ratelimiter"
	"payguard/internal/retry"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	accounts    *accounts.Manager
	circuit     *breaker.CircuitStore
	payments    *payments.Service
	rateLimiter *ratelimiter.FixedWindowRateLimiter
}

type config struct {
	addr        string
	env         string
	gatewayURL  string
	redis       redisConfig
	auth        authConfig
	breaker     breaker.Thresholds
	retryPolicy retry.Policy
	rateLimiter ratelimiter.Config
}

type redisConfig struct {
	addr     string
	password string
	db       int
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)
		r.With(app.BasicAuthMiddleware()).Get("/debug/circuits", app.circuitSnapshotHandler)

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", app.createOrUpdateCustomerHandler)
			r.Post("/{customerID}/validate", app.validateCustomerHandler)
			r.Get("/{customerID}/tokens", app.fetchTokensHandler)
			r.Delete("/{customerID}/tokens/{tokenID}", app.deleteTokenHandler)
		})

		r.Post("/orders", app.createChargeOrderHandler)
		r.Post("/payments/recurring", app.createRecurringPaymentHandler)
		r.Post("/webhooks/payment", app.paymentWebhookHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)
	return nil
}
