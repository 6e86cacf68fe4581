package commands

import (
	"flag"
	"fmt"

	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/tui"
)

// RunTUICommand handles the 'tui' subcommand
func RunTUICommand(args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	var preset string
	fs.StringVar(&preset, "preset", "", "preset|p: named instruction preset for this session")
	fs.StringVar(&preset, "p", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Load()
	if preset != "" {
		instr, err := ResolveInstructions(cfg, preset)
		if err != nil {
			return err
		}
		cfg.CustomInstructions = instr
	}

	// A missing key is not fatal here: the TUI shows the
	// credential-missing state and withholds the chat surface.
	key := APIKey()

	if err := tui.Run(tui.Config{
		APIKey:   key,
		Runner:   NewRunner(key, nil),
		Settings: cfg,
	}); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
