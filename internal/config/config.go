package config

import (
	"github.com/earlysvahn/chatlpu/internal/registry"
)

// Config is the persisted settings document: which models are enabled and
// the free-text system instruction sent to every model.
type Config struct {
	SelectedModels     []string `json:"selected_models"`
	CustomInstructions string   `json:"custom_instructions"`
}

// Default enables every registered model with no custom instructions.
func Default() Config {
	return Config{
		SelectedModels:     registry.Names(),
		CustomInstructions: "",
	}
}

// Normalize drops selected model names that are not in the registry.
// An empty selection is a legal state; it just blocks prompt submission.
func (c *Config) Normalize() {
	kept := c.SelectedModels[:0]
	for _, name := range c.SelectedModels {
		if registry.Contains(name) {
			kept = append(kept, name)
		}
	}
	c.SelectedModels = kept
	if c.SelectedModels == nil {
		c.SelectedModels = []string{}
	}
}

// Enabled reports whether the model display name is currently selected.
func (c Config) Enabled(displayName string) bool {
	for _, name := range c.SelectedModels {
		if name == displayName {
			return true
		}
	}
	return false
}

// Enable adds the model to the selection if it is registered and not
// already present. Returns false for unknown names.
func (c *Config) Enable(displayName string) bool {
	if !registry.Contains(displayName) {
		return false
	}
	if c.Enabled(displayName) {
		return true
	}
	c.SelectedModels = append(c.SelectedModels, displayName)
	return true
}

// Disable removes the model from the selection.
func (c *Config) Disable(displayName string) {
	kept := c.SelectedModels[:0]
	for _, name := range c.SelectedModels {
		if name != displayName {
			kept = append(kept, name)
		}
	}
	c.SelectedModels = kept
}
