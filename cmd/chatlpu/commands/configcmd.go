package commands

import (
	"fmt"
	"strings"

	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/registry"
)

// RunModelsCommand handles the 'models' subcommand: the registry with
// enabled markers.
func RunModelsCommand(args []string) error {
	cfg := config.Load()
	for _, m := range registry.All() {
		marker := "[ ]"
		if cfg.Enabled(m.DisplayName) {
			marker = "[x]"
		}
		fmt.Printf("%s %s (%s)\n", marker, m.DisplayName, m.ID)
	}
	return nil
}

// RunConfigCommand handles the 'config' subcommand:
//
//	config                     show the saved configuration
//	config enable <model>      enable a model by display name
//	config disable <model>     disable a model by display name
//	config instructions <text> set the custom instruction text
//	config reset               restore defaults (all models, no instructions)
func RunConfigCommand(args []string) error {
	if len(args) == 0 {
		return showConfig()
	}

	cfg := config.Load()
	switch args[0] {
	case "show":
		return showConfig()
	case "enable":
		if len(args) < 2 {
			return fmt.Errorf("usage: chatlpu config enable <model>")
		}
		name := strings.Join(args[1:], " ")
		if !cfg.Enable(name) {
			return fmt.Errorf("unknown model: %s\nRun 'chatlpu models' to list the registry", name)
		}
	case "disable":
		if len(args) < 2 {
			return fmt.Errorf("usage: chatlpu config disable <model>")
		}
		cfg.Disable(strings.Join(args[1:], " "))
	case "instructions":
		cfg.CustomInstructions = strings.Join(args[1:], " ")
	case "reset":
		cfg = config.Default()
	default:
		return fmt.Errorf("unknown config action: %s", args[0])
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}
	fmt.Printf("Configuration saved to %s\n", config.File())
	return nil
}

func showConfig() error {
	cfg := config.Load()
	fmt.Printf("Config file: %s\n\n", config.File())
	fmt.Println("Selected models:")
	if len(cfg.SelectedModels) == 0 {
		fmt.Println("  (none — prompt submission is blocked)")
	}
	for _, name := range cfg.SelectedModels {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()
	if strings.TrimSpace(cfg.CustomInstructions) == "" {
		fmt.Println("Custom instructions: (none)")
	} else {
		fmt.Printf("Custom instructions:\n  %s\n", cfg.CustomInstructions)
	}
	return nil
}
