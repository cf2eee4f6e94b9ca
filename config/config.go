package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env               string
	Port              string
	Debug             bool
	WhoisTimeout      time.Duration
	TLSTimeout        time.Duration
	AssessWorkers     int
	MaxURLsPerMessage int
	SessionTTL        time.Duration
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:               getenv("APP_ENV", "development"),
		Port:              getenv("PORT", "8080"),
		Debug:             getenvBool("LOG_DEBUG", false),
		AssessWorkers:     getenvInt("ASSESS_WORKERS", 4),
		MaxURLsPerMessage: getenvInt("MAX_URLS_PER_MESSAGE", 10),
	}

	var err error
	if cfg.WhoisTimeout, err = getenvDuration("WHOIS_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}
	if cfg.TLSTimeout, err = getenvDuration("TLS_TIMEOUT", 5*time.Second); err != nil {
		return cfg, err
	}
	if cfg.SessionTTL, err = getenvDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.AssessWorkers <= 0 {
		return cfg, fmt.Errorf("ASSESS_WORKERS must be > 0, got %d", cfg.AssessWorkers)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
