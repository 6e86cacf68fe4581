package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/earlysvahn/chatlpu/cmd/chatlpu/commands"
)

const usage = `Usage: chatlpu [command] [flags] "your prompt"

Commands:
  (default)  fan the prompt out to every enabled model and print the answers
  tui        full-screen chat session
  chat       line-based chat REPL
  serve      HTTP API exposing the fan-out
  models     list the model registry with enabled markers
  config     show or edit the saved configuration
`

func main() {
	// Optional .env in the working directory, same as the hosted key
	// workflow the Groq console documents. Absence is fine.
	_ = godotenv.Load()

	args := os.Args[1:]
	var err error
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(1)
	}

	switch args[0] {
	case "tui":
		err = commands.RunTUICommand(args[1:])
	case "chat":
		err = commands.RunChatCommand(args[1:])
	case "serve":
		err = commands.RunServeCommand(args[1:])
	case "models":
		err = commands.RunModelsCommand(args[1:])
	case "config":
		err = commands.RunConfigCommand(args[1:])
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		err = commands.RunOneShot(args)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "[chatlpu error]", err)
		os.Exit(1)
	}
}
