// Package config loads rsmeta settings from defaults, an optional YAML file,
// RSMETA_* environment variables and command-line flags.
package config

// Config holds the settings of one rsmeta invocation.
type Config struct {
	Tier          string `yaml:"tier" mapstructure:"tier"`                     // "auto", "exact" or "heuristic"
	HeuristicMode string `yaml:"heuristic_mode" mapstructure:"heuristic_mode"` // "pattern" or "lines"
	Format        string `yaml:"format" mapstructure:"format"`                 // "json", "yaml" or "text"
	Indent        bool   `yaml:"indent" mapstructure:"indent"`                 // indent JSON output
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`               // debug logging on stderr
	Query         string `yaml:"query" mapstructure:"query"`                   // Risor expression over the document
	SQLite        string `yaml:"sqlite" mapstructure:"sqlite"`                 // export database path
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Tier:          "auto",
		HeuristicMode: "pattern",
		Format:        "json",
	}
}
