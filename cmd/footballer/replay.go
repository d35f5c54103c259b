package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/dispatcher"
	"github.com/touchline/footballer/pkg/core"
)

const shutdownTimeout = 10 * time.Second

// errReplayFailed is returned when at least one command failed and the
// replay was not strict.
var errReplayFailed = errors.New("replay finished with errors")

func runReplay(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("replay", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.StringP("config", "c", ".", "directory containing "+config.FileName)
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("storage", "", "storage backend (memory, sqlite, postgres)")
	strict := fs.Bool("strict", false, "stop at the first failing command")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("replay needs one script path or -: %w", errUsage)
	}

	if err := loadConfig(*configDir, fs, stderr); err != nil {
		return err
	}

	script, closeScript, err := openScript(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	defer closeScript()

	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	replayErr := replay(ctx, a, script, stdout, *strict)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Join(replayErr, a.shutdown(shutdownCtx))
}

// loadConfig reads the config file, falling back to defaults, and binds
// the command line overrides.
func loadConfig(dir string, fs *pflag.FlagSet, stderr io.Writer) error {
	if err := config.Load(dir); err != nil {
		fmt.Fprintf(stderr, "using default config: %v\n", err)
	}
	if err := viper.BindPFlag("logLevel", fs.Lookup("log-level")); err != nil {
		return err
	}
	return viper.BindPFlag("storage.type", fs.Lookup("storage"))
}

func openScript(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening script: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// replay dispatches every command line in script. A match left open at
// the end of the script is closed.
func replay(ctx context.Context, a *app, script io.Reader, out io.Writer, strict bool) error {
	scanner := bufio.NewScanner(script)
	failures := 0
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		command, args, ok, err := a.parser.ParseLine(scanner.Text())
		if err == nil && !ok {
			continue
		}
		var result any
		if err == nil {
			result, err = a.disp.Dispatch(dispatcher.Event{
				Command:   command,
				Args:      args,
				Line:      lineNo,
				Timestamp: time.Now(),
			})
		}
		if err != nil {
			failures++
			fmt.Fprintf(out, "%4d %-14s error: %v\n", lineNo, command, err)
			if strict {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		fmt.Fprintf(out, "%4d %-14s %s\n", lineNo, command, formatResult(result))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	if _, open := a.service.MatchContext().Current(); open {
		a.logger.Warn("Script ended with a match in progress, closing it")
		path, err := a.service.EndMatch()
		if err != nil {
			return fmt.Errorf("closing match: %w", err)
		}
		fmt.Fprintf(out, "%4s %-14s %s\n", "-", ":MATCH:END:", formatResult(path))
	}

	if failures > 0 {
		return fmt.Errorf("%d failed commands: %w", failures, errReplayFailed)
	}
	return nil
}

func formatResult(result any) string {
	switch r := result.(type) {
	case nil:
		return "ok"
	case core.Snapshot:
		return fmt.Sprintf("player=%d team=%d pos=(%d,%d) facing=%g speed=%d movement=%s action=%s",
			r.Player, r.Team, r.Position.X, r.Position.Y, r.AngleFacing, r.Speed, r.Movement, r.Action)
	case string:
		if r == "" {
			return "ok"
		}
		return r
	default:
		return fmt.Sprint(r)
	}
}
