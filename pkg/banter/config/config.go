package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds server settings sourced from the environment.
type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	DBPath string `envconfig:"BANTER_DB_PATH" default:"banter.db"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
