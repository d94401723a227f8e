package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	UpstreamBase    string
	UpstreamKey     string
	UpstreamModel   string
	UpstreamReferer string
	UpstreamRPS     int
	UpstreamTimeout time.Duration
	Workers         int
	MaxTripDays     int
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid integer")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		UpstreamBase:    env("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		UpstreamKey:     env("OPENROUTER_API_KEY", ""),
		UpstreamModel:   env("OPENROUTER_MODEL", "deepseek/deepseek-r1-distill-llama-70b:free"),
		UpstreamReferer: env("OPENROUTER_REFERER", "http://localhost:8080"),
		UpstreamRPS:     atoi("UPSTREAM_RPS", 2),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 60)) * time.Second,
		Workers:         atoi("PLANNER_WORKERS", 4),
		MaxTripDays:     atoi("MAX_TRIP_DAYS", 14),
	}
	if c.UpstreamKey == "" {
		log.Warn().Msg("OPENROUTER_API_KEY is empty; serving fallback itineraries only")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
