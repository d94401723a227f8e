// Command planner builds itineraries for every trip in a YAML file and
// writes them as a JSON array, in input order.
//
//	planner -in trips.yaml [-out plans.json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"

	"cultural_planner/internal/adapters/observability"
	"cultural_planner/internal/adapters/openrouter"
	"cultural_planner/internal/app"
	"cultural_planner/internal/domain"
	"cultural_planner/internal/shared"
)

type tripsFile struct {
	Trips []domain.TripRequest `yaml:"trips"`
}

func main() {
	in := flag.String("in", "trips.yaml", "YAML file with a top-level trips list")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	trips, err := readTrips(*in, cfg.MaxTripDays)
	if err != nil {
		log.Fatal().Err(err).Str("file", *in).Msg("cannot read trips")
	}
	log.Info().Int("trips", len(trips)).Int("workers", cfg.Workers).Msg("planner starting")

	var gen domain.Generator
	if client, err := openrouter.New(openrouter.Options{
		BaseURL: cfg.UpstreamBase,
		APIKey:  cfg.UpstreamKey,
		Model:   cfg.UpstreamModel,
		Referer: cfg.UpstreamReferer,
		RPS:     cfg.UpstreamRPS,
		Timeout: cfg.UpstreamTimeout,
	}); err == nil {
		gen = client
	}
	svc := app.NewPlannerService(gen, nil)

	plans := run(ctx, svc, trips, cfg.Workers)

	if err := writePlans(*out, plans); err != nil {
		log.Fatal().Err(err).Msg("write output failed")
	}
	log.Info().Msg("planning completed")
}

// writePlans writes plans as indented JSON to path, or to stdout when path is
// empty. The file is closed before returning and a close error is reported.
func writePlans(path string, plans []domain.PlanView) (err error) {
	w := io.Writer(os.Stdout)
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", path, cerr)
			}
		}()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plans); err != nil {
		return fmt.Errorf("encode plans: %w", err)
	}
	return nil
}

func readTrips(path string, maxDays int) ([]domain.TripRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf tripsFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i, t := range tf.Trips {
		if t.Destination == "" || t.Duration < 1 || t.Duration > maxDays {
			return nil, fmt.Errorf("trip %d: need a destination and 1..%d days", i+1, maxDays)
		}
	}
	return tf.Trips, nil
}

// run plans every trip with at most workers in flight. plans[i] answers trips[i].
func run(ctx context.Context, svc *app.PlannerService, trips []domain.TripRequest, workers int) []domain.PlanView {
	if workers < 1 {
		workers = 1
	}
	plans := make([]domain.PlanView, len(trips))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, trip := range trips {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(i int, trip domain.TripRequest) {
			defer wg.Done()
			defer sem.Release(1)

			res := svc.Plan(ctx, trip)
			v := app.View(trip.Destination, res)
			v.PlanID = uuid.NewString()
			plans[i] = v
			log.Info().Str("destination", trip.Destination).Int("days", trip.Duration).Bool("fallback", res.Fallback).Msg("trip planned")
		}(i, trip)
	}

	wg.Wait()
	return plans
}
