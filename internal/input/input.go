// Package input loads puzzle inputs from disk and splits raw text into the
// shapes daily solutions consume.
package input

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMissingInput indicates no input file exists for the requested day.
var ErrMissingInput = errors.New("input: missing puzzle input")

// Path returns the conventional location of a day's input inside dir.
func Path(dir string, day int) string {
	return filepath.Join(dir, fmt.Sprintf("day%02d.txt", day))
}

// Load reads the input for day from dir.
func Load(dir string, day int) (string, error) {
	return LoadFile(Path(dir, day))
}

// LoadFile reads an input from an explicit path.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return "", fmt.Errorf("input: read %s: %w", path, err)
	}
	return string(data), nil
}

// Normalize converts CRLF line endings and strips trailing newlines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimRight(text, "\n")
}

// Lines splits text into lines. Empty input yields no lines.
func Lines(text string) []string {
	text = Normalize(text)
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Blocks splits text into sections separated by blank lines.
func Blocks(text string) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	for _, line := range Lines(text) {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// Ints parses every whitespace separated field of text as a base-10 int64.
func Ints(text string) ([]int64, error) {
	fields := strings.Fields(text)
	out := make([]int64, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("input: parse %q: %w", field, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Range parses an inclusive "lo-hi" pair.
func Range(text string) (lo, hi int64, err error) {
	left, right, ok := strings.Cut(strings.TrimSpace(text), "-")
	if !ok {
		return 0, 0, fmt.Errorf("input: range %q missing '-'", text)
	}
	if lo, err = strconv.ParseInt(left, 10, 64); err != nil {
		return 0, 0, fmt.Errorf("input: range %q: %w", text, err)
	}
	if hi, err = strconv.ParseInt(right, 10, 64); err != nil {
		return 0, 0, fmt.Errorf("input: range %q: %w", text, err)
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("input: range %q is reversed", text)
	}
	return lo, hi, nil
}
