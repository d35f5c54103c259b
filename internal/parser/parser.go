// Package parser turns driver script lines into typed requests.
// It does not touch players, storage or the roster.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/touchline/footballer/internal/util"
	"github.com/touchline/footballer/pkg/core"
)

var (
	ErrArgCount   = errors.New("wrong number of arguments")
	ErrBadNumber  = errors.New("malformed number")
	ErrNotCommand = errors.New("line does not start with a :COMMAND:")
)

// parseUintFromFloat parses a string that may be an integer ("32") or float ("32.00") into uint64.
func parseUintFromFloat(s string) (uint64, error) {
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadNumber)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxUint64 {
		return 0, fmt.Errorf("%q is not a whole non-negative number: %w", s, ErrBadNumber)
	}
	return uint64(f), nil
}

// parseIntFromFloat parses a string that may be an integer or float into int64.
func parseIntFromFloat(s string) (int64, error) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrBadNumber)
	}
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%q is not a whole number: %w", s, ErrBadNumber)
	}
	return int64(f), nil
}

func parseInt(field, s string) (int, error) {
	v, err := parseIntFromFloat(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%s: %q out of range: %w", field, s, ErrBadNumber)
	}
	return int(v), nil
}

func parsePlayerID(s string) (core.PlayerID, error) {
	v, err := parseUintFromFloat(s)
	if err != nil {
		return 0, fmt.Errorf("player id: %w", err)
	}
	if v > math.MaxUint16 {
		return 0, fmt.Errorf("player id: %q out of range: %w", s, ErrBadNumber)
	}
	return core.PlayerID(v), nil
}

func parseAngle(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("angle: %q: %w", s, ErrBadNumber)
	}
	return f, nil
}

func wantArgs(command string, args []string, counts ...int) error {
	for _, n := range counts {
		if len(args) == n {
			return nil
		}
	}
	return fmt.Errorf("%s got %d args, want %v: %w", command, len(args), counts, ErrArgCount)
}

// Parser provides pure []string -> request conversion.
type Parser struct {
	logger       *slog.Logger
	defaultSpeed int
}

// NewParser creates a parser; defaultSpeed is used for spawns that omit it.
func NewParser(logger *slog.Logger, defaultSpeed int) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger:       logger,
		defaultSpeed: defaultSpeed,
	}
}

// ParseLine splits one script line into its command and arguments.
// ok is false for blank and comment lines.
func (p *Parser) ParseLine(line string) (command string, args []string, ok bool, err error) {
	if util.IsComment(line) {
		return "", nil, false, nil
	}

	fields, err := util.Fields(line)
	if err != nil {
		return "", nil, false, fmt.Errorf("tokenizing line: %w", err)
	}

	command = strings.ToUpper(fields[0])
	if len(command) < 3 || !strings.HasPrefix(command, ":") || !strings.HasSuffix(command, ":") {
		return "", nil, false, fmt.Errorf("%q: %w", fields[0], ErrNotCommand)
	}
	return command, fields[1:], true, nil
}
