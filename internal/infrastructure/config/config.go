package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Mongo holds MongoDB connection configuration.
type Mongo struct {
	URI      string `envconfig:"MONGO_URI" required:"true"`
	Database string `envconfig:"MONGO_DATABASE" default:"hermine"`
}

// Redis holds the optional snapshot cache configuration. An empty Addr
// disables the cache layer.
type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Server holds configuration for the web API and aggregation behavior.
type Server struct {
	Mongo       Mongo
	Redis       Redis
	Port        int `envconfig:"PORT" default:"8080"`
	SnapshotTTL int `envconfig:"SNAPSHOT_TTL_SECONDS" default:"60"`
}

// Load loads server configuration from the environment, preloading a
// .env file when one is present.
func Load() (*Server, error) {
	_ = godotenv.Load()

	var cfg Server
	if err := envconfig.Process("", &cfg.Mongo); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Redis); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
