package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/fanout"
	"github.com/earlysvahn/chatlpu/internal/groq"
	"github.com/earlysvahn/chatlpu/internal/instructions"
)

// APIKey reads the Groq credential from the environment. godotenv has
// already folded .env into the environment by the time commands run.
func APIKey() string {
	return strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
}

// NewLogf returns the stderr logger used across subcommands.
func NewLogf(quiet bool) func(string) {
	return func(msg string) {
		if quiet {
			return
		}
		fmt.Fprintf(os.Stderr, "[chatlpu] %s\n", msg)
	}
}

// NewRunner builds the fan-out runner over the Groq client.
func NewRunner(apiKey string, logf func(string)) *fanout.Runner {
	return &fanout.Runner{
		Fetcher: groq.NewClient(apiKey),
		Log:     logf,
	}
}

// ResolveInstructions picks the instruction text for a run: an explicit
// preset wins over the saved configuration.
func ResolveInstructions(cfg config.Config, preset string) (string, error) {
	if preset == "" {
		return cfg.CustomInstructions, nil
	}
	p := instructions.Get(preset)
	if p == nil {
		return "", fmt.Errorf("unknown preset: %s\nAvailable presets: %s", preset, strings.Join(instructions.List(), ", "))
	}
	return p.Text, nil
}

func missingKeyErr() error {
	return fmt.Errorf("GROQ_API_KEY not set; add it to your environment or a .env file (get a key from https://console.groq.com/keys)")
}
