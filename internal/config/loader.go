package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultConfigName is the config file looked up in the root directory when
// no explicit file is given. Any extension viper understands is accepted.
const DefaultConfigName = ".rsmeta"

// keys maps each config key to the command-line flag that overrides it.
var keys = map[string]string{
	"tier":           "tier",
	"heuristic_mode": "heuristic-mode",
	"format":         "format",
	"indent":         "indent",
	"verbose":        "verbose",
	"query":          "query",
	"sqlite":         "sqlite",
}

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load resolves configuration.
	// Priority: defaults → config file → environment → explicitly set flags
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
	flags      *pflag.FlagSet
}

// LoaderOption configures a Loader.
type LoaderOption func(*loader)

// WithConfigFile loads settings from path instead of searching rootDir. The
// file must exist.
func WithConfigFile(path string) LoaderOption {
	return func(l *loader) {
		l.configFile = path
	}
}

// WithFlags binds the flags of fs. Only flags set on the command line
// override the other sources.
func WithFlags(fs *pflag.FlagSet) LoaderOption {
	return func(l *loader) {
		l.flags = fs
	}
}

// NewLoader creates a configuration loader for the given root directory.
func NewLoader(rootDir string, opts ...LoaderOption) Loader {
	l := &loader{rootDir: rootDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	// RSMETA_TIER, RSMETA_HEURISTIC_MODE, ...
	v.SetEnvPrefix("RSMETA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	if l.flags != nil {
		for key, name := range keys {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; defaults and env still apply.
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("tier", d.Tier)
	v.SetDefault("heuristic_mode", d.HeuristicMode)
	v.SetDefault("format", d.Format)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("query", d.Query)
	v.SetDefault("sqlite", d.SQLite)
}

// Load is a convenience function that loads configuration rooted at the
// current working directory.
func Load(opts ...LoaderOption) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	return NewLoader(wd, opts...).Load()
}
