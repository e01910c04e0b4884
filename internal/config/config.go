package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr           string `env:"TILEQUEST_HTTP_ADDR" envDefault:":8080"`
	StreamAddr         string `env:"TILEQUEST_STREAM_ADDR" envDefault:":8081"`
	CORSOrigin         string `env:"TILEQUEST_CORS_ORIGIN"`
	DBDSN              string `env:"TILEQUEST_DB_DSN"`
	DefaultTerrain     string `env:"TILEQUEST_DEFAULT_TERRAIN" envDefault:"grass"`
	StartingEntityKind string `env:"TILEQUEST_STARTING_ENTITY_KIND" envDefault:"sapphire"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBDSN = strings.TrimSpace(cfg.DBDSN)
	return cfg, nil
}

// UsesPostgres reports whether events go to postgres instead of memory.
func (c Config) UsesPostgres() bool {
	return c.DBDSN != ""
}
