package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/saaaadmalik/food-delivery-multivendor/internal/queue"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/ratelimiter"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/repo"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/service"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/store/mongo"
	"github.com/saaaadmalik/food-delivery-multivendor/internal/worker"
)

type application struct {
	config          config
	logger          *zap.SugaredLogger
	rateLimiter     ratelimiter.Limiter
	storage         *mongo.Storage
	broker          queue.Broker
	catalogRepo     repo.CatalogRepository
	orderRepo       repo.OrderRepository
	auditRepo       repo.OrderAuditRepository
	cartService     *service.CartService
	checkoutService *service.CheckoutService
	orderWorker     *worker.OrderEventsWorker
}

type config struct {
	addr        string
	env         string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	redis       redisConfig
	rabbitMQ    rabbitMQConfig
	gateway     gatewayConfig
	storefront  service.StorefrontConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type redisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type gatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Get("/restaurants/{restaurant_id}/catalog", app.getCatalogHandler)
		r.Put("/restaurants/{restaurant_id}/catalog", app.upsertCatalogHandler)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", app.getCartHandler)
			r.Delete("/", app.clearCartHandler)
			r.Post("/items", app.addCartItemHandler)
			r.Patch("/items/{item_key}", app.adjustQuantityHandler)
			r.Delete("/items/{item_key}", app.removeCartItemHandler)
			r.Put("/coupon", app.setCouponHandler)
			r.Put("/tip", app.setTipHandler)
			r.Put("/fulfilment", app.setFulfilmentHandler)
			r.Put("/address", app.setAddressHandler)
		})

		r.Post("/checkout", app.checkoutHandler)
		r.Get("/orders", app.listOrdersHandler)
		r.Get("/orders/{order_id}", app.getOrderHandler)
		r.Get("/orders/{order_id}/audit", app.getOrderAuditHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	if app.orderWorker != nil {
		if err := app.orderWorker.Start(); err != nil {
			return err
		}
	}

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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.orderWorker != nil {
			app.orderWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

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

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
