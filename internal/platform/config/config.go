package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	JWTSecret    string

	// Snapshot persistence. When SnapshotPgsqlURL is set the snapshot is
	// stored in Postgres, otherwise as a JSON file under SnapshotDir.
	SnapshotDir      string
	SnapshotPgsqlURL string
	SnapshotKey      string
	SnapshotDebounce time.Duration

	AllowNegativeStock bool
	RateLimit          string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SNAPSHOT_DIR", "./data")
	viper.SetDefault("SNAPSHOT_PGSQL_URL", "")
	viper.SetDefault("SNAPSHOT_KEY", "default")
	viper.SetDefault("SNAPSHOT_DEBOUNCE", "2s")
	viper.SetDefault("ALLOW_NEGATIVE_STOCK", false)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.SnapshotDir = viper.GetString("SNAPSHOT_DIR")
	cfg.SnapshotPgsqlURL = viper.GetString("SNAPSHOT_PGSQL_URL")
	cfg.SnapshotKey = viper.GetString("SNAPSHOT_KEY")

	debounceStr := viper.GetString("SNAPSHOT_DEBOUNCE")
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		debounce = 2 * time.Second
		log.Printf("Warning: Invalid value for SNAPSHOT_DEBOUNCE ('%s'). Defaulting to %s.\n", debounceStr, debounce.String())
	}
	cfg.SnapshotDebounce = debounce

	cfg.AllowNegativeStock = viper.GetBool("ALLOW_NEGATIVE_STOCK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
