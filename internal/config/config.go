package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
}

type StoreConfig struct {
	// Mode selects the store implementation: "supabase" or "mock".
	Mode       string
	URL        string
	AnonKey    string
	Bucket     string
	GenerateFn string
	CacheTTL   time.Duration
}

// Load reads the environment into a Config. Missing store credentials do not
// fail startup: the resulting client simply fails every remote call.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("APP_PORT", "8080"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "postdeck.log"),
		},
		Store: StoreConfig{
			Mode:       getEnv("STORE_MODE", "supabase"),
			URL:        getEnv("SUPABASE_URL", ""),
			AnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
			Bucket:     getEnv("STORE_BUCKET", "posts"),
			GenerateFn: getEnv("GENERATE_FN", "generate-post"),
			CacheTTL:   getEnvAsDuration("ARTIFACT_CACHE_TTL", 5*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
