package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Env        string `env:"ENV" env-default:"development"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`

	// Canonical URL of the mini app. Used as the default notification target
	// and as the base for manifest asset URLs.
	AppURL string `env:"APP_URL" env-default:"https://neynar-score-checkerv2.vercel.app"`

	// Neynar API access. The key is required for the /api/user endpoints;
	// the service still starts without it so the notification pathway keeps working.
	NeynarAPIKey string `env:"NEYNAR_API_KEY"`
	NeynarAPIURL string `env:"NEYNAR_API_URL" env-default:"https://api.neynar.com/v2/farcaster"`

	// Redis-backed notification store. When RedisAddr is empty the in-memory
	// store is used and registrations do not survive a restart.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Timeout for outbound push gateway and Neynar requests.
	HTTPClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" env-default:"10s"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`

	// Account association triple for the Farcaster manifest. Opaque, issued by
	// the hosting platform for this domain.
	FarcasterHeader    string `env:"FARCASTER_HEADER"`
	FarcasterPayload   string `env:"FARCASTER_PAYLOAD"`
	FarcasterSignature string `env:"FARCASTER_SIGNATURE"`
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from an optional .env file and the environment.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &cfg, nil
}
