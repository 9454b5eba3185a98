package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Infrastructure
	RedisAddr     string
	RedisPassword string
	SQLitePath    string
	JournalPath   string
	MetricsAddr   string

	// Engine tunables
	SwingLookback      int
	MinSwingStrength   float64 // fractional, e.g. 0.01 = 1%
	MinBreak           float64
	VolumeConfirmRatio float64
	MinConfidence      int
	Timeframe          string // "swing" or "scalp"

	// Scanner
	Workers int
}

// Load reads configuration from a .env file (if present) and environment
// variables with sensible defaults.
func Load() *Config {
	// Best-effort: absence of a .env file is not an error.
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	return &Config{
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "data/bars.db"),
		JournalPath:   getEnv("JOURNAL_PATH", "data/signals.db"),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),

		SwingLookback:      getEnvInt("SWING_LOOKBACK", 5),
		MinSwingStrength:   getEnvFloat("MIN_SWING_STRENGTH", 0.01),
		MinBreak:           getEnvFloat("MIN_BREAK", 0.005),
		VolumeConfirmRatio: getEnvFloat("VOLUME_CONFIRM_RATIO", 1.2),
		MinConfidence:      getEnvInt("MIN_CONFIDENCE", 70),
		Timeframe:          getEnv("TIMEFRAME", "swing"),

		Workers: getEnvInt("SCAN_WORKERS", 4),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid int for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid float for %s: %q, using %f", key, v, fallback)
		return fallback
	}
	return f
}
