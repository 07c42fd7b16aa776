package config

import (
	"os"
	"strconv"
)

// Config holds the service configuration
type Config struct {
	Port            string
	DBPath          string
	JWTSecret       string
	FineBinWidthM   float64 // Stage-1 depth bin width
	CoarseBinWidthM float64 // Stage-2 depth bin width
}

// Load reads the configuration from the environment
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/mwd/mwd.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:            port,
		DBPath:          dbPath,
		JWTSecret:       jwtSecret,
		FineBinWidthM:   envFloat("MWD_FINE_BIN_M", 0.2),
		CoarseBinWidthM: envFloat("MWD_COARSE_BIN_M", 1.0),
	}
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
