// Package quotes holds the configured quote pool and the optional
// balance command whose output gets rendered under the quote.
package quotes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os/exec"
	"strings"
)

// Quote is one entry of the configured pool.
type Quote struct {
	Text   string
	Author string
}

// ErrNoQuotes means the configuration has an empty pool; generating a
// wallpaper without a quote is a configuration error, not a fallback.
var ErrNoQuotes = errors.New("no quotes configured")

// Decode converts the raw config value of the `quotes` key into a
// pool. Each entry is either a plain string or a table with `text` and
// an optional `author`.
func Decode(raw []any) ([]Quote, error) {
	pool := make([]Quote, 0, len(raw))
	for i, entry := range raw {
		switch v := entry.(type) {
		case string:
			pool = append(pool, Quote{Text: v})
		case map[string]any:
			text, ok := v["text"].(string)
			if !ok || text == "" {
				return nil, fmt.Errorf("quote %d: missing text", i)
			}
			q := Quote{Text: text}
			if author, ok := v["author"].(string); ok {
				q.Author = author
			}
			pool = append(pool, q)
		default:
			return nil, fmt.Errorf("quote %d: expected string or table, got %T", i, entry)
		}
	}
	return pool, nil
}

// Pick selects a quote uniformly at random.
func Pick(pool []Quote) (Quote, error) {
	if len(pool) == 0 {
		return Quote{}, ErrNoQuotes
	}
	return pool[rand.IntN(len(pool))], nil
}

// Balance runs a shell command and renders its output as extra text on
// the wallpaper. It is a configured feature: once present, a failing
// command fails the whole generation run.
type Balance struct {
	Command string
	Label   string
}

// Value executes the command and returns the text to render, with the
// label (when set) as its own leading line.
func (b Balance) Value() (string, error) {
	out, err := exec.Command("sh", "-c", b.Command).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("balance command failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("executing balance command: %w", err)
	}

	value := strings.TrimSpace(string(out))
	if b.Label != "" {
		return b.Label + "\n" + value, nil
	}
	return value, nil
}
