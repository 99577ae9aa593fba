package config

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TgToken     string
	HttpAddr    string
	PublicUrl   string
	UploadDir   string
	RegionsFile string
	SessionTTL  time.Duration
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration, loading .env on first use.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment variables")
		}

		config = &Config{
			TgToken:     os.Getenv("TELEGRAM_TOKEN"),
			HttpAddr:    getenv("HTTP_ADDR", ":8080"),
			PublicUrl:   getenv("PUBLIC_URL", "http://localhost:8080"),
			UploadDir:   getenv("UPLOAD_DIR", "uploads"),
			RegionsFile: os.Getenv("REGIONS_FILE"),
			SessionTTL:  getduration("SESSION_TTL", time.Hour),
		}
	})
	return config
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
