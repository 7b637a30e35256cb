// Package config loads service configuration from an optional YAML file
// with environment-variable overrides on top.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to start.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	DataPath    string `yaml:"data_path"`
	AgentDBPath string `yaml:"agent_db_path"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
}

// Default returns the built-in configuration. The data path matches the
// processing pipeline's output location.
func Default() Config {
	return Config{
		ListenAddr:  ":8080",
		DataPath:    "data/secciones.geojson",
		AgentDBPath: "manzanillo_data.db",
	}
}

// Load reads path (if present) over the defaults and then applies
// environment overrides. A missing file is not an error; a malformed one
// is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VOTELENS_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("VOTELENS_DATA"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("VOTELENS_AGENT_DB"); v != "" {
		c.AgentDBPath = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("VOTELENS_GEMINI_MODEL"); v != "" {
		c.GeminiModel = v
	}
}
