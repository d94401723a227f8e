package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "cultural_planner/internal/adapters/http_server"
	"cultural_planner/internal/adapters/observability"
	"cultural_planner/internal/adapters/openrouter"
	"cultural_planner/internal/app"
	"cultural_planner/internal/domain"
	"cultural_planner/internal/parser"
	"cultural_planner/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	var gen domain.Generator
	client, err := openrouter.New(openrouter.Options{
		BaseURL: cfg.UpstreamBase,
		APIKey:  cfg.UpstreamKey,
		Model:   cfg.UpstreamModel,
		Referer: cfg.UpstreamReferer,
		RPS:     cfg.UpstreamRPS,
		Timeout: cfg.UpstreamTimeout,
	})
	switch {
	case errors.Is(err, domain.ErrMissingUpstreamCredential):
		log.Warn().Msg("no upstream credential; every plan will be a fallback itinerary")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to initialize upstream client")
	default:
		gen = client
	}
	planner := app.NewPlannerService(gen, parser.New(nil))

	// http
	srv := server.New(cfg.UpstreamTimeout + 5*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: planner, MaxDays: cfg.MaxTripDays})

	log.Info().Str("addr", cfg.HTTPAddr).Str("model", cfg.UpstreamModel).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
