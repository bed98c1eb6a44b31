package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the optional generator config file, lexgen.toml. The teacher
// repo carries BurntSushi/toml in its go.mod without ever exercising it
// (tqw's world-data format is the only TOML consumer); this gives the
// dependency a driver-level home.
type Config struct {
	// Package is the package name written into the emitted scanner file.
	Package string `toml:"package"`

	// Output is the path the emitted scanner source is written to.
	Output string `toml:"output"`

	// EmitMain controls whether the emitted file includes a func main
	// that reads stdin and dispatches actions.
	EmitMain bool `toml:"emit_main"`

	// CacheDir is where compiled DFAs are cached, keyed by rule-file
	// content hash. Empty disables caching.
	CacheDir string `toml:"cache_dir"`
}

// defaultConfig is used whenever no lexgen.toml is found.
func defaultConfig() Config {
	return Config{
		Package:  "lexer",
		Output:   "lexer_gen.go",
		EmitMain: false,
		CacheDir: ".lexgen-cache",
	}
}

// LoadConfig reads a lexgen.toml generator config from path. A missing file
// is not an error; it yields defaultConfig().
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
