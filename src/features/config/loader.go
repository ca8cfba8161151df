package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new ConfigManager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	// Check if config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		// Save default config to file
		if err := saveDefaultConfig(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		applyEnvOverrides(defaultCfg)

		slog.Info("Default configuration created successfully", "path", path)
		return NewManager(defaultCfg), nil
	}

	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	return NewManager(cfg), nil
}

// Read decodes and validates the configuration file at path. Fields missing from the
// file keep their default values.
func Read(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := createDefaultConfig()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	// Override with environment variables if set
	applyEnvOverrides(cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Reload re-reads path into the manager. An invalid file leaves the current configuration in place.
func Reload(m *Manager, path string) error {
	cfg, err := Read(path)
	if err != nil {
		slog.Error("Failed to reload configuration, keeping the current one", "path", path, "error", err)
		return err
	}
	m.Update(cfg)
	return nil
}

// applyEnvOverrides replaces file values with the DISCOGS_* environment variables when present
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCOGS_TOKEN"); token != "" {
		cfg.Discogs.Token = token
	}
	if raw := os.Getenv("DISCOGS_REPLACE_ARTIST_NAME"); raw != "" {
		replace, err := strconv.ParseBool(raw)
		if err != nil {
			slog.Warn("Ignoring invalid DISCOGS_REPLACE_ARTIST_NAME", "value", raw, "error", err)
			return
		}
		cfg.Discogs.ReplaceArtistName = replace
	}
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}
