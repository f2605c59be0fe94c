package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (FORMBIND_LOCALE, ...).
const EnvPrefix = "FORMBIND"

// Config holds CLI configuration.
type Config struct {
	Locale   string `mapstructure:"locale"`
	Renderer string `mapstructure:"renderer"`
	Output   string `mapstructure:"output"`
	Flow     string `mapstructure:"flow"`
	// Mode overrides the validation mode of rendered definitions; empty
	// keeps each definition's own mode.
	Mode       string      `mapstructure:"mode"`
	Catalog    string      `mapstructure:"catalog"`
	Definition string      `mapstructure:"definition"`
	Theme      ThemeConfig `mapstructure:"theme"`
	Log        LogConfig   `mapstructure:"log"`
}

// ThemeConfig selects a palette.
type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
	// File points to a YAML/JSON theme manifest replacing the built-in one.
	File string `mapstructure:"file"`
}

// LogConfig controls the slog handler built by the CLI.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"locale":        "locale",
	"renderer":      "renderer",
	"output":        "output",
	"flow":          "flow",
	"mode":          "mode",
	"catalog":       "catalog",
	"definition":    "definition",
	"theme":         "theme.name",
	"theme-variant": "theme.variant",
	"theme-file":    "theme.file",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// Load reads configuration from defaults, an optional YAML file, FORMBIND_*
// environment variables and flags, in increasing order of precedence. path
// selects the file; when empty FORMBIND_CONFIG is consulted, then
// formbind.yaml in the working directory and ~/.config/formbind.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("locale", "en")
	v.SetDefault("renderer", "tui")
	v.SetDefault("output", "json")
	v.SetDefault("flow", "menu")
	v.SetDefault("mode", "")
	v.SetDefault("catalog", "")
	v.SetDefault("definition", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.file", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetConfigType("yaml")
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formbind"))
		}
		v.SetConfigName("formbind")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, fmt.Errorf("config: bind flag %q: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Renderer {
	case "tui", "html":
	default:
		return fmt.Errorf("config: unknown renderer %q", c.Renderer)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", l.Level, err)
	}
	return level, nil
}
