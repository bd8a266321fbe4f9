// Package cli implements the DrivenPass command-line client: account
// registration and login plus credential and network management over the
// backend HTTP API. The session token is kept in a local file between runs.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drivenpass/drivenpass/internal/client/api"
	"github.com/drivenpass/drivenpass/internal/client/config"
	"github.com/drivenpass/drivenpass/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type App struct {
	config *config.Config
	api    *api.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	a := &App{
		config: c,
		api:    api.New(c.ServerAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if token, err := a.loadToken(); err == nil && token != "" {
		a.api.SetToken(token)
	}

	return a
}

// Positionals strips flags (and their values) from args, leaving the command
// words. Flag values are recognized as the argument following a dash-prefixed
// one.
func Positionals(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "-") {
			if !strings.Contains(args[i], "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, args[i])
	}
	return out
}

// Run dispatches a single command and returns its error.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return nil
	}

	switch args[0] {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "credentials":
		return a.runCredentials(ctx, args[1:])
	case "networks":
		return a.runNetworks(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], common.ErrValidation)
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, `Usage:
  drivenpass register
  drivenpass login
  drivenpass credentials list
  drivenpass credentials get <id>
  drivenpass credentials add
  drivenpass credentials delete <id>
  drivenpass networks list
  drivenpass networks get <id>
  drivenpass networks add
  drivenpass networks delete <id>

Flags:
  -a <url>    base URL of the backend server
  -t <path>   session token file
  -c <path>   JSON config file`)
}
