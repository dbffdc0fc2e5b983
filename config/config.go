package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all process configuration. It is loaded once in main and
// passed down explicitly; nothing in this package keeps global state.
type Config struct {
	Port       string
	DBURL      string
	JWTSecret  string
	CORSOrigin string

	// Lightspark credentials. All four are required; the adapter refuses to
	// construct without them.
	LightsparkTokenID      string
	LightsparkTokenSecret  string
	LightsparkNodeID       string
	LightsparkNodePassword string

	UploadDir     string
	SweepInterval time.Duration
}

func LoadEnv() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		DBURL:      mustEnv("DB_URL"),
		JWTSecret:  mustEnv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),

		LightsparkTokenID:      mustEnv("LIGHTSPARK_API_TOKEN_CLIENT_ID"),
		LightsparkTokenSecret:  mustEnv("LIGHTSPARK_API_TOKEN_CLIENT_SECRET"),
		LightsparkNodeID:       mustEnv("LIGHTSPARK_NODE_ID"),
		LightsparkNodePassword: mustEnv("LIGHTSPARK_NODE_PASSWORD"),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
	}

	interval := getEnv("RESERVATION_SWEEP_INTERVAL", "1m")
	d, err := time.ParseDuration(interval)
	if err != nil {
		log.Fatalf("Invalid RESERVATION_SWEEP_INTERVAL %q: %v", interval, err)
	}
	cfg.SweepInterval = d

	return cfg
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
