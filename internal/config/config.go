package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Output styles.
const (
	StylePlain = "plain"
	StyleTable = "table"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	styles     = []string{StylePlain, StyleTable}
)

// Config is the decoded configuration file.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Scene   SceneConfig   `toml:"scene"`
	Output  OutputConfig  `toml:"output"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json
}

// SceneConfig points at the manifest files. Relative paths are resolved
// against the directory of the configuration file.
type SceneConfig struct {
	Manifests []string `toml:"manifests"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Style string `toml:"style"` // plain, table
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Output:  OutputConfig{Style: StylePlain},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
		}
		base := filepath.Dir(path)
		for i, m := range cfg.Scene.Manifests {
			if !filepath.IsAbs(m) {
				cfg.Scene.Manifests[i] = filepath.Join(base, m)
			}
		}
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("LOOKUPGO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOOKUPGO_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LOOKUPGO_OUTPUT_STYLE"); v != "" {
		cfg.Output.Style = v
	}
}

// Validate normalises case and checks every enumerated setting.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Output.Style = strings.ToLower(c.Output.Style)

	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("%w: log level must be one of %s, got %q", ErrInvalid, strings.Join(logLevels, ", "), c.Logging.Level)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("%w: log format must be one of %s, got %q", ErrInvalid, strings.Join(logFormats, ", "), c.Logging.Format)
	}
	if !slices.Contains(styles, c.Output.Style) {
		return fmt.Errorf("%w: output style must be one of %s, got %q", ErrInvalid, strings.Join(styles, ", "), c.Output.Style)
	}
	return nil
}
