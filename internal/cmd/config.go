package cmd

import (
	"fmt"
	"os"
	"strconv"
)

type config struct {
	Port        int
	MetricsPort int
	// DatabaseURL selects the storage backend by scheme: firestore://<project>,
	// postgres://... or memory://.
	DatabaseURL     string
	JWTSecret       string
	FrontendURL     string
	Env             string
	CredentialsJSON string
}

func (c config) production() bool {
	return c.Env == "production"
}

// loadConfig reads the process environment once. A missing JWT_SECRET is not
// an error here; the login and session endpoints answer 500 instead.
func loadConfig() (config, error) {
	cfg := config{
		Port:            3000,
		MetricsPort:     9091,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
		Env:             os.Getenv("ENV"),
		CredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_CONTENT"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "memory://"
	}
	var err error
	if cfg.Port, err = intEnv("PORT", cfg.Port); err != nil {
		return cfg, err
	}
	if cfg.MetricsPort, err = intEnv("METRICS_PORT", cfg.MetricsPort); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
