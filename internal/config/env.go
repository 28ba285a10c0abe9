package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from NUMHUNT_* environment variables.
// Command-line flags take precedence over these.
type Env struct {
	ConfigPath    string `env:"NUMHUNT_CONFIG"`
	NarrationPath string `env:"NUMHUNT_NARRATION"`
	DBPath        string `env:"NUMHUNT_DB" envDefault:"~/.numhunt/numhunt.db"`
	Lang          string `env:"NUMHUNT_LANG" envDefault:"en"`
	Pace          string `env:"NUMHUNT_PACE" envDefault:"normal"`
	LogLevel      string `env:"NUMHUNT_LOG_LEVEL" envDefault:"info"`
	Seed          int64  `env:"NUMHUNT_SEED"`
	SSHAddr       string `env:"NUMHUNT_SSH_ADDR" envDefault:":23234"`
}

// ParseEnv parses environment variables into target using env struct tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the NUMHUNT_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return e, fmt.Errorf("config: %w", err)
	}
	return e, nil
}
