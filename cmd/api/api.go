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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/konigunited/restdelbot/docs"
	"github.com/konigunited/restdelbot/internal/metrics"
	"github.com/konigunited/restdelbot/internal/queue"
	"github.com/konigunited/restdelbot/internal/ratelimiter"
	"github.com/konigunited/restdelbot/internal/service"
	"github.com/konigunited/restdelbot/internal/worker"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type recordStorage interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type sessionCache interface {
	Ping(ctx context.Context) error
	Close() error
}

type application struct {
	config         config
	logger         *zap.SugaredLogger
	rateLimiter    ratelimiter.Limiter
	storage        recordStorage
	sessionCache   sessionCache
	broker         queue.Broker
	metrics        *metrics.Metrics
	assistant      *service.AssistantService
	catalogService *service.CatalogService
	recordService  *service.RecordService
	catalogWorker  *worker.CatalogReloadWorker
	recordWorker   *worker.EstimateRecordWorker
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Handle("/metrics", app.metrics.Handler())

		r.Group(func(r chi.Router) {
			r.Use(app.RateLimiterMiddleware)

			r.Post("/chat", app.chatHandler)

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/stats", app.catalogStatsHandler)
				r.Get("/search", app.catalogSearchHandler)
				r.Get("/items/{id}", app.catalogItemHandler)
				r.Get("/codes/{code}", app.catalogCodeHandler)

				r.Post("/reload", app.createReloadTaskHandler)
				r.Get("/reload/{task_id}", app.getReloadTaskHandler)
			})

			r.Get("/estimates", app.listEstimatesHandler)
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

// queueDrainer is implemented by brokers that hold messages in process.
type queueDrainer interface {
	Wait(ctx context.Context) error
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Event Catering Assistant"
	docs.SwaggerInfo.Description = "API for the catering order-intake assistant"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.catalogWorker != nil {
		if err := app.catalogWorker.Start(); err != nil {
			return fmt.Errorf("failed to start catalog worker: %w", err)
		}
	}
	if app.recordWorker != nil {
		if err := app.recordWorker.Start(); err != nil {
			return fmt.Errorf("failed to start record worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 60,
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

		if b, ok := app.broker.(queueDrainer); ok {
			if err := b.Wait(ctx); err != nil {
				app.logger.Warnw("in-process queues not drained", "error", err)
			}
		}

		if app.catalogWorker != nil {
			app.catalogWorker.Stop()
		}
		if app.recordWorker != nil {
			app.recordWorker.Stop()
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
				app.logger.Errorw("error closing broker", "error", err)
			} else {
				app.logger.Info("broker closed gracefully")
			}
		}

		if app.sessionCache != nil {
			if err := app.sessionCache.Close(); err != nil {
				app.logger.Errorw("error closing Redis", "error", err)
			} else {
				app.logger.Info("Redis connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

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
