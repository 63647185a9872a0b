package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the tool. Zero values mean
// "unspecified" and fall back to defaults in the CLI layer.
//
// The stack component patterns and cache admin tool names are deliberately
// absent: which processes make up the dev stack is fixed.
type Config struct {
	// Listen address for `stackctl serve`.
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// Log level: debug|info|warn|error.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// Per-external-command timeout in milliseconds. 0 disables the
	// timeout: shutdown waits as long as pgrep/pkill/redis-cli take.
	ExecTimeoutMS int `json:"exec_timeout_ms" yaml:"exec_timeout_ms" toml:"exec_timeout_ms"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
