package config

import (
	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddr   string `env:"SERVER_ADDRESS" envDefault:":8080"`
	MongoURI  string `env:"MONGODB_URI"`
	MongoName string `env:"MONGODB_NAME" envDefault:"feedboard"`
	JWTSecret string `env:"JWT_SECRET"`
	ImageDir  string `env:"IMAGE_DIR" envDefault:"images"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and then the process environment.
// An empty MongoURI means the in-memory store is used instead of MongoDB.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
