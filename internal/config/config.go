// Package config loads application configuration from environment
// variables. A .env file in the working directory is honored for local
// development; real deployments set the variables directly.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable: strings for identifiers and secrets, durations
// for anything time-based.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host address
	DBPort    string // database port number
	DBName    string // database name
	JWTSecret string // secret used to verify gateway-issued JWTs
}

// Load reads configuration from the environment. A .env file is loaded
// first when present. Missing required variables are fatal.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:       must("APP_ENV"),
		Port:      must("APP_PORT"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"), // empty allowed
		DBHost:    must("DB_HOST"),
		DBPort:    must("DB_PORT"),
		DBName:    must("DB_NAME"),
		JWTSecret: must("JWT_SECRET"),
	}
}

// Policy mirrors the reservation policy knobs as environment overrides.
// Every field falls back to the standing coworking defaults, so a bare
// environment yields the documented behavior.
type Policy struct {
	WalkinWindow                      time.Duration
	WalkinInitialDuration             time.Duration
	ReservationWindow                 time.Duration
	MinimumReservationDuration        time.Duration
	MaximumInitialReservationDuration time.Duration
	ReservationDraftTimeout           time.Duration
	ReservationCheckinTimeout         time.Duration
}

// LoadPolicy reads policy overrides from the environment.
func LoadPolicy() Policy {
	return Policy{
		WalkinWindow:                      envDur("POLICY_WALKIN_WINDOW", 10*time.Minute),
		WalkinInitialDuration:             envDur("POLICY_WALKIN_INITIAL_DURATION", 2*time.Hour),
		ReservationWindow:                 envDur("POLICY_RESERVATION_WINDOW", 7*24*time.Hour),
		MinimumReservationDuration:        envDur("POLICY_MIN_RESERVATION_DURATION", 10*time.Minute),
		MaximumInitialReservationDuration: envDur("POLICY_MAX_INITIAL_RESERVATION_DURATION", 2*time.Hour),
		ReservationDraftTimeout:           envDur("POLICY_DRAFT_TIMEOUT", 5*time.Minute),
		ReservationCheckinTimeout:         envDur("POLICY_CHECKIN_TIMEOUT", 10*time.Minute),
	}
}

// must retrieves a required environment variable or exits fatally.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// Shared env parsing helpers used across the config loaders.

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "":
		return def
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
