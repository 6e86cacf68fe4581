package config

import (
	"encoding/json"
	"os"
)

func EnsureDir() error { return os.MkdirAll(Dir(), 0o755) }

// Load reads the settings file. Missing file, bad JSON, or any I/O error
// all fall back to the default configuration; the caller never sees a
// load failure.
func Load() Config {
	b, err := os.ReadFile(File())
	if err != nil {
		return Default()
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Default()
	}
	if cfg.SelectedModels == nil {
		cfg.SelectedModels = []string{}
	}
	cfg.Normalize()
	return cfg
}

// Save overwrites the settings file with the given configuration.
func Save(cfg Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := File() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, File())
}
