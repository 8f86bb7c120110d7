// Package config loads engine-wide settings: the default optimization
// level, module search roots, and debug flags (spec.md §6), optionally
// from a TOML file, with environment variables taking precedence. Grounded
// on the teacher's internal/tqw world-config loading pattern (a TOML file
// read once at startup via github.com/BurntSushi/toml).
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// OptLevel mirrors internal/optimize.Level without importing it, so
// config stays a leaf package consumed by both the optimizer and the root
// thorn package.
type OptLevel int

const (
	O0 OptLevel = iota
	O1
	O2
	O3
)

func ParseOptLevel(s string) (OptLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "O0", "0":
		return O0, true
	case "O1", "1":
		return O1, true
	case "O2", "2":
		return O2, true
	case "O3", "3":
		return O3, true
	default:
		return O0, false
	}
}

// Config holds the engine's tunable settings.
type Config struct {
	OptimizationLevel OptLevel
	SearchPath        []string // resolution order: "." then "./stdlib" then THORN_PATH entries
	DebugTypes        bool     // thorn.debug.types: trace every Environment.Define
	CacheDir          string   // optional rezi-backed module AST cache directory; empty disables it
}

// fileConfig is the TOML-decoded shape of an optional thorn.toml file.
type fileConfig struct {
	OptimizationLevel string   `toml:"optimization_level"`
	SearchPath        []string `toml:"search_path"`
	CacheDir          string   `toml:"cache_dir"`
}

// Default returns the engine's baseline configuration before any file or
// environment overrides are applied.
func Default() Config {
	return Config{
		OptimizationLevel: O0,
		SearchPath:        []string{".", "./stdlib"},
	}
}

// Load builds a Config starting from Default, layering in tomlPath (if
// non-empty and present) and then environment variables, matching
// spec.md §6's precedence: THORN_PATH entries are appended after the
// built-in "." and "./stdlib" roots; thorn.debug.types enables tracing
// when set to any non-empty value.
func Load(tomlPath string) (Config, error) {
	cfg := Default()

	if tomlPath != "" {
		if _, err := os.Stat(tomlPath); err == nil {
			var fc fileConfig
			if _, err := toml.DecodeFile(tomlPath, &fc); err != nil {
				return cfg, err
			}
			if fc.OptimizationLevel != "" {
				if lvl, ok := ParseOptLevel(fc.OptimizationLevel); ok {
					cfg.OptimizationLevel = lvl
				}
			}
			if len(fc.SearchPath) > 0 {
				cfg.SearchPath = fc.SearchPath
			}
			cfg.CacheDir = fc.CacheDir
		}
	}

	if thornPath := os.Getenv("THORN_PATH"); thornPath != "" {
		cfg.SearchPath = append(cfg.SearchPath, strings.Split(thornPath, ":")...)
	}

	cfg.DebugTypes = os.Getenv("thorn.debug.types") != ""

	return cfg, nil
}
