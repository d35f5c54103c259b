// Package util provides small string helpers for reading driver scripts.
package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned by Fields when a quoted token never closes.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// IsComment reports whether a script line carries no command.
func IsComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

// Fields splits a line on whitespace, keeping double-quoted runs together.
// Quotes are stripped from the returned tokens and a doubled quote inside a
// quoted run stands for a literal quote.
func Fields(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		started bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '"':
			if i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuote = false
		case r == '"':
			inQuote = true
			started = true
		case !inQuote && unicode.IsSpace(r):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
