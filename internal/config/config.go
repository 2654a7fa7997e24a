package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectID string
	Region    string
	LogLevel  string
	Port      string
	Timezone  string
}

// New reads the environment, after loading a .env file when one is present.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		ProjectID: os.Getenv("PROJECTID"),
		Region:    os.Getenv("REGION"),
		LogLevel:  os.Getenv("LOGLEVEL"),
		Port:      getEnv("PORT", "8080"),
		Timezone:  getEnv("TIMEZONE", "UTC"),
	}
}

// Location is the zone used for month names, day bounds and chart labels.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
