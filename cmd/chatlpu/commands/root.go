package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/earlysvahn/chatlpu/internal/cli"
	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/fanout"
	"github.com/earlysvahn/chatlpu/internal/render"
)

// RunOneShot handles one-shot fan-out execution (default mode): the prompt
// goes to every enabled model sequentially and each answer is printed under
// its model header.
func RunOneShot(args []string) error {
	fs := flag.NewFlagSet("chatlpu", flag.ExitOnError)

	var preset string
	var instructionsOverride string
	var quiet bool
	fs.StringVar(&preset, "preset", "", "preset|p: named instruction preset for this run")
	fs.StringVar(&preset, "p", "", "")
	fs.StringVar(&instructionsOverride, "instructions", "", "instruction text for this run (overrides saved config)")
	fs.BoolVar(&quiet, "quiet", false, "suppress non-error logs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no prompt provided")
	}
	prompt := strings.Join(fs.Args(), " ")

	key := APIKey()
	if key == "" {
		return missingKeyErr()
	}

	cfg := config.Load()
	enabled := fanout.OrderEnabled(cfg.SelectedModels)
	if len(enabled) == 0 {
		return fmt.Errorf("no models enabled; run 'chatlpu config enable <model>' or pick models in the TUI")
	}

	instr, err := ResolveInstructions(cfg, preset)
	if err != nil {
		return err
	}
	if instructionsOverride != "" {
		instr = instructionsOverride
	}

	logf := NewLogf(quiet)
	runner := NewRunner(key, nil)

	results := make([]fanout.Result, 0, len(enabled))
	for _, name := range enabled {
		model := name
		res, err := cli.ExecuteWithSpinner(fmt.Sprintf("🔄 %s...", model), func() ([]fanout.Result, error) {
			return runner.Run(context.Background(), []string{model}, prompt, instr)
		})
		if err != nil {
			return err
		}
		results = append(results, res...)
	}

	logf(fmt.Sprintf("generated %d responses", len(results)))

	for _, res := range results {
		fmt.Printf("── %s ──\n", res.Model)
		if res.Err != nil {
			fmt.Printf("error: %v\n\n", res.Err)
			continue
		}
		fmt.Print(render.Markdown(res.Content))
		fmt.Println()
	}
	return nil
}
