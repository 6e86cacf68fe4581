package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/earlysvahn/chatlpu/internal/cli"
	"github.com/earlysvahn/chatlpu/internal/config"
	"github.com/earlysvahn/chatlpu/internal/fanout"
	"github.com/earlysvahn/chatlpu/internal/render"
	"github.com/earlysvahn/chatlpu/internal/session"
)

// RunChatCommand handles the 'chat' subcommand: a readline REPL where every
// line fans out to the enabled models.
func RunChatCommand(args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	var preset string
	fs.StringVar(&preset, "preset", "", "preset|p: named instruction preset for this session")
	fs.StringVar(&preset, "p", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key := APIKey()
	if key == "" {
		return missingKeyErr()
	}

	cfg := config.Load()
	instr, err := ResolveInstructions(cfg, preset)
	if err != nil {
		return err
	}

	runner := NewRunner(key, nil)
	transcript := session.New()

	fmt.Fprintf(os.Stderr, "Chat mode (%d models enabled)\n", len(cfg.SelectedModels))
	fmt.Fprintln(os.Stderr, "Commands: /models, /clear, /quit. Ctrl+C or Ctrl+D to exit.")
	fmt.Fprintln(os.Stderr)

	rl, err := readline.New("> ")
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Fprintln(os.Stderr, "\nExiting chat mode...")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch input {
		case "/quit":
			return nil
		case "/clear":
			transcript.Clear()
			fmt.Fprintln(os.Stderr, "Chat history cleared.")
			continue
		case "/models":
			for _, name := range fanout.OrderEnabled(cfg.SelectedModels) {
				fmt.Fprintf(os.Stderr, "  %s\n", name)
			}
			continue
		}

		enabled := fanout.OrderEnabled(cfg.SelectedModels)
		if len(enabled) == 0 {
			fmt.Fprintln(os.Stderr, "No models enabled; run 'chatlpu config enable <model>' first.")
			continue
		}

		transcript.AppendUser(input)

		results := make([]fanout.Result, 0, len(enabled))
		for _, name := range enabled {
			model := name
			res, err := cli.ExecuteWithSpinner(fmt.Sprintf("🔄 %s...", model), func() ([]fanout.Result, error) {
				return runner.Run(context.Background(), []string{model}, input, instr)
			})
			if err != nil {
				return err
			}
			results = append(results, res...)
		}
		transcript.AppendAssistant(results)

		for _, res := range results {
			fmt.Printf("── %s ──\n", res.Model)
			if res.Err != nil {
				fmt.Printf("error: %v\n\n", res.Err)
				continue
			}
			fmt.Print(render.Markdown(res.Content))
			fmt.Println()
		}
	}
}
