package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/sentitag/pkg/sentitag/corpus"
	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
)

// DomainPlaceholder is expanded to the domain name inside file patterns.
const DomainPlaceholder = "{domain}"

// Default separators used in the tagged artifact.
const (
	DefaultPairSeparator  = corpus.DefaultPairSeparator
	DefaultTokenSeparator = corpus.DefaultTokenSeparator
)

// DefaultProgressEvery is how many reviews pass between progress log lines.
const DefaultProgressEvery = 1000

// Config describes which corpus files to tag and how to format the output.
type Config struct {
	CorpusRoot      string   `yaml:"corpus_root"`
	Domains         []string `yaml:"domains"`
	Files           []string `yaml:"files"`
	ContinueOnError bool     `yaml:"continue_on_error"`
	PairSeparator   string   `yaml:"pair_separator"`
	TokenSeparator  string   `yaml:"token_separator"`
	ProgressEvery   int      `yaml:"progress_every"`
	StorePath       string   `yaml:"store_path"`
}

// Default returns the compiled-in configuration for the multi-domain
// sentiment corpus.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		CorpusRoot:      filepath.Join(home, "Data", "Sentiment", "raw"),
		Domains:         []string{"books", "dvd", "electronics", "kitchen"},
		Files:           []string{DomainPlaceholder + "UN.txt", "negative.parsed", "positive.parsed"},
		ContinueOnError: true,
		PairSeparator:   DefaultPairSeparator,
		TokenSeparator:  DefaultTokenSeparator,
		ProgressEvery:   DefaultProgressEvery,
	}
}

// LoadConfig reads a YAML file on top of the defaults. Keys missing from the
// file keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.CorpusRoot = ExpandHome(cfg.CorpusRoot)

	return &cfg, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.CorpusRoot) == "" {
		return fmt.Errorf("%w: corpus_root is required", internalerr.ErrInvalidConfig)
	}
	if len(c.Domains) == 0 {
		return fmt.Errorf("%w: at least one domain is required", internalerr.ErrInvalidConfig)
	}
	for _, d := range c.Domains {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("%w: empty domain name", internalerr.ErrInvalidConfig)
		}
	}
	if len(c.Files) == 0 {
		return fmt.Errorf("%w: at least one file pattern is required", internalerr.ErrInvalidConfig)
	}
	if c.PairSeparator == "" || c.TokenSeparator == "" {
		return fmt.Errorf("%w: separators must not be empty", internalerr.ErrInvalidConfig)
	}
	if strings.Contains(c.PairSeparator, c.TokenSeparator) || strings.Contains(c.TokenSeparator, c.PairSeparator) {
		return fmt.Errorf("%w: pair separator %q collides with token separator %q",
			internalerr.ErrInvalidConfig, c.PairSeparator, c.TokenSeparator)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress_every must be >= 0", internalerr.ErrInvalidConfig)
	}
	return nil
}

// FilesFor expands the file patterns for one domain.
func (c *Config) FilesFor(domain string) []string {
	out := make([]string, len(c.Files))
	for i, pattern := range c.Files {
		out[i] = strings.ReplaceAll(pattern, DomainPlaceholder, domain)
	}
	return out
}

// Path returns the location of a corpus file: <root>/<domain>/<file>.
func (c *Config) Path(domain, file string) string {
	return filepath.Join(c.CorpusRoot, domain, file)
}
