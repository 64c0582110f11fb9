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
	"github.com/rs/zerolog"

	handlers "github.com/fin-tools/spendsight/pkg/handlers/expense"
	spendsightmiddleware "github.com/fin-tools/spendsight/pkg/server/middleware"
	"github.com/fin-tools/spendsight/pkg/services/config"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Expenses handlers.Service
	Parser   handlers.Parser
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Analytics       config.Config
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, cfg Config) *WebAPI {
	handler := handlers.NewHandler(cfg.Dependencies.Expenses, cfg.Dependencies.Parser, cfg.Analytics)

	router := chi.NewRouter()

	router.Use(spendsightmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/expenses", handler.ListTransactions)
		r.Post("/expenses", handler.CreateTransaction)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/parse", handler.ParseText)
			r.Get("/analyze", handler.Analyze)
			r.Get("/anomalies", handler.Anomalies)
			r.Get("/forecast", handler.Forecast)
			r.Get("/insights", handler.Insights)
			r.Get("/health", handler.Health)
		})
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    cfg.Addr,
			Handler: router,
		},
	}
}

// Router exposes the configured mux, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
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
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
