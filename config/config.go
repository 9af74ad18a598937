// Package config reads server configuration from the environment.
package config

import (
	"github.com/joeshaw/envdecode"
)

type Config struct {
	// Addr is the listen address for the web server.
	Addr string `env:"FISHKA_ADDR,default=:8000"`
	// ResultsPath is the SQLite file holding finished-game history.
	ResultsPath string `env:"FISHKA_RESULTS_PATH,default=fishka.db"`
	// Seed, when non-zero, makes every deal reproducible.
	Seed int64 `env:"FISHKA_SEED,default=0"`
}

// Load decodes the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
