package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// CorpusRootEnv overrides Config.CorpusRoot when set.
const CorpusRootEnv = "SENTITAG_CORPUS_ROOT"

// Loader resolves the effective configuration from an optional YAML file,
// an optional .env file and the process environment.
type Loader struct {
	ConfigPath string
	EnvPath    string
}

// Load reads the configuration sources in order (defaults, YAML, env) and
// validates the result.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg *Config
	if l.ConfigPath != "" {
		loaded, err := LoadConfig(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		def := Default()
		cfg = &def
	}

	if root := os.Getenv(CorpusRootEnv); root != "" {
		cfg.CorpusRoot = ExpandHome(root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv populates the environment from a .env file. A missing default file
// is not an error; a missing explicit file is.
func (l *Loader) loadEnv() error {
	if l.EnvPath != "" {
		return godotenv.Load(l.EnvPath)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
