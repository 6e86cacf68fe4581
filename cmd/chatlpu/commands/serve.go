package commands

import (
	"flag"

	"github.com/earlysvahn/chatlpu/internal/server"
)

// RunServeCommand handles the 'serve' subcommand
func RunServeCommand(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var addr string
	var quiet bool
	fs.StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	fs.BoolVar(&quiet, "quiet", false, "suppress non-error logs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key := APIKey()
	if key == "" {
		return missingKeyErr()
	}

	logf := NewLogf(quiet)
	srv := server.New(NewRunner(key, logf), addr)
	if quiet {
		srv.Log = nil
	}
	return srv.Run()
}
