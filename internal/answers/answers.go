// Package answers keeps the expected value of every solved puzzle half so
// refactors can be checked against known-good results.
package answers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/advent/internal/puzzle"
)

// DayAnswers holds the expected values for one day. Unsolved halves are nil.
type DayAnswers struct {
	Part1 *int64 `yaml:"part1,omitempty"`
	Part2 *int64 `yaml:"part2,omitempty"`
}

// Manifest models answers.yaml.
type Manifest struct {
	Days map[int]DayAnswers `yaml:"days"`
}

// Load reads the manifest at path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	m := &Manifest{Days: map[int]DayAnswers{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("answers: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("answers: parse %s: %w", path, err)
	}
	if m.Days == nil {
		m.Days = map[int]DayAnswers{}
	}
	for day := range m.Days {
		if day < 1 || day > puzzle.MaxDay {
			return nil, fmt.Errorf("answers: %s: day %d out of range", path, day)
		}
	}
	return m, nil
}

// Save writes the manifest to path, creating parent directories.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("answers: ensure dir: %w", err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("answers: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("answers: write %s: %w", path, err)
	}
	return nil
}

// Expected returns the recorded answer for one half.
func (m *Manifest) Expected(day int, part puzzle.Part) (int64, bool) {
	if m == nil {
		return 0, false
	}
	entry, ok := m.Days[day]
	if !ok {
		return 0, false
	}
	var v *int64
	switch part {
	case puzzle.Part1:
		v = entry.Part1
	case puzzle.Part2:
		v = entry.Part2
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Set records value as the expected answer for one half.
func (m *Manifest) Set(day int, part puzzle.Part, value int64) error {
	if day < 1 || day > puzzle.MaxDay {
		return fmt.Errorf("answers: day %d out of range", day)
	}
	if m.Days == nil {
		m.Days = map[int]DayAnswers{}
	}
	entry := m.Days[day]
	v := value
	switch part {
	case puzzle.Part1:
		entry.Part1 = &v
	case puzzle.Part2:
		entry.Part2 = &v
	default:
		return fmt.Errorf("answers: unknown part %d", int(part))
	}
	m.Days[day] = entry
	return nil
}

// Verdict classifies a result against the manifest.
type Verdict string

const (
	VerdictMatch    Verdict = "match"
	VerdictMismatch Verdict = "mismatch"
	VerdictUnknown  Verdict = "unknown"
	VerdictError    Verdict = "error"
)

// Check compares res with the recorded answer.
func (m *Manifest) Check(res puzzle.Result) Verdict {
	if res.Err != nil {
		return VerdictError
	}
	want, ok := m.Expected(res.Day, res.Part)
	if !ok {
		return VerdictUnknown
	}
	if want != res.Value {
		return VerdictMismatch
	}
	return VerdictMatch
}
