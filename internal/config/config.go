package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the runtime tunables that are not part of the database
// connection.
type Settings struct {
	Port       string
	BcryptCost int

	// FreshnessWindow bounds how old a stored bus position may be before
	// reads stop returning it.
	FreshnessWindow time.Duration
}

// LoadSettings reads tunables from the environment with defaults. The .env
// file is loaded here too, so settings read before InitDB see the same
// environment as the database config.
func LoadSettings() Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return Settings{
		Port:            getEnv("PORT", "8080"),
		BcryptCost:      getEnvAsInt("BCRYPT_COST", 10),
		FreshnessWindow: time.Duration(getEnvAsInt("LOCATION_FRESHNESS_MINUTES", 5)) * time.Minute,
	}
}

// getEnvAsInt reads an integer environment variable or returns the default.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}
