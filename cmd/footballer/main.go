// Command footballer replays driver scripts against the player core and
// records the match to the configured storage backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// BuildVersion can be set at build time via ldflags.
var BuildVersion = "dev"

var errUsage = errors.New("usage: footballer <replay|show|dumps|version> [flags] [args]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "footballer:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch strings.ToLower(args[0]) {
	case "replay":
		return runReplay(ctx, args[1:], stdin, stdout, stderr)
	case "show":
		return runShow(args[1:], stdout)
	case "dumps":
		return runDumps(args[1:], stdout)
	case "version":
		_, err := fmt.Fprintln(stdout, BuildVersion)
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}
