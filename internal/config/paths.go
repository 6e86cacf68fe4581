package config

import (
	"os"
	"path/filepath"
)

func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatlpu")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "chatlpu")
}
func File() string { return filepath.Join(Dir(), "config.json") }
