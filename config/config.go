package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL            string
	JWTSecret        string
	RefreshSecret    string
	FMPKey           string
	Port             string
	PriceRefreshSpec string
}

// Load reads configuration from the environment. A .env file in the working
// directory is picked up first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		return nil, fmt.Errorf("PG_URL environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	refreshSecret := os.Getenv("REFRESH_TOKEN_SECRET")
	if refreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET environment variable is required")
	}

	fmpKey := os.Getenv("FMP_KEY")
	if fmpKey == "" {
		return nil, fmt.Errorf("FMP_KEY environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	refreshSpec := os.Getenv("PRICE_REFRESH_SPEC")
	if refreshSpec == "" {
		refreshSpec = "0 7 * * *"
	}

	return &Config{
		PGURL:            pgURL,
		JWTSecret:        jwtSecret,
		RefreshSecret:    refreshSecret,
		FMPKey:           fmpKey,
		Port:             port,
		PriceRefreshSpec: refreshSpec,
	}, nil
}
