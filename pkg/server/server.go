package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	handlers "github.com/de-tools/ledger-atlas/pkg/handlers/report"
	"github.com/de-tools/ledger-atlas/pkg/metrics"
	ledgermiddleware "github.com/de-tools/ledger-atlas/pkg/server/middleware"
	"github.com/de-tools/ledger-atlas/pkg/services/config"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Runner    handlers.Runner
	Publisher handlers.Publisher // optional
	Metrics   *metrics.Recorder
	Report    config.ReportSettings
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// RateLimit is requests per minute per client IP on the report routes. 0 disables it.
	RateLimit    int
	Dependencies Dependencies
}

func ConfigureRouter(logger zerolog.Logger, cfg Config) http.Handler {
	deps := cfg.Dependencies
	reportHandler := handlers.NewHandler(deps.Runner, deps.Publisher, deps.Report)

	router := chi.NewRouter()
	router.Use(ledgermiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(deps.Metrics.Middleware)

	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	router.Route("/api/v1/reports/financial", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.Limit(cfg.RateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		r.Get("/", reportHandler.GetFinancialReport)
		r.Get("/transactions", reportHandler.ListTransactions)
		r.Get("/categories", reportHandler.ListCategories)
		r.Get("/export", reportHandler.ExportReport)
		r.Post("/publish", reportHandler.PublishReport)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, cfg Config) *WebAPI {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           ConfigureRouter(logger, cfg),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
