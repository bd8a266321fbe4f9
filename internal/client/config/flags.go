package config

import (
	"flag"
	"os"

	"github.com/drivenpass/drivenpass/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API
//	-t string   session token file path
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with positional command arguments.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerAddr, "a", config.ServerAddr, "base URL of the backend server")
	fs.StringVar(&config.TokenFile, "t", config.TokenFile, "session token file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
