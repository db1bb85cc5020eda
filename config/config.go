// Package config loads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting of the soaplab server.
type Config struct {
	Addr          string        `env:"SOAPLAB_ADDR"           envDefault:"localhost:8080"`
	ReactionDelay time.Duration `env:"SOAPLAB_REACTION_DELAY" envDefault:"3s"`
	TraceDB       string        `env:"SOAPLAB_TRACE_DB"`
	Trace         bool          `env:"SOAPLAB_TRACE"          envDefault:"false"`
	ThemeDB       string        `env:"SOAPLAB_THEME_DB"`
	QuizBank      string        `env:"SOAPLAB_QUIZ_BANK"`
	LogLevel      string        `env:"SOAPLAB_LOG_LEVEL"      envDefault:"info"`
	OpenBrowser   bool          `env:"SOAPLAB_OPEN_BROWSER"   envDefault:"false"`
}

// ErrNegativeDelay is returned when the reaction delay is below zero.
var ErrNegativeDelay = errors.New("config: negative reaction delay")

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the dotenv files, if present, and then the environment.
// Variables already set in the environment win over the files.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ReactionDelay < 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrNegativeDelay, cfg.ReactionDelay)
	}
	return cfg, nil
}
