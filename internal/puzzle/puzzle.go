package puzzle

import (
	"fmt"
	"strings"
)

// MaxDay is the last day of an event calendar.
const MaxDay = 25

// Info describes a puzzle solution's identity.
type Info struct {
	Day     int
	Title   string
	Version string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.Day < 1 || i.Day > MaxDay {
		return fmt.Errorf("puzzle: day must be within 1..%d, got %d", MaxDay, i.Day)
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("puzzle: title is required for day %d", i.Day)
	}
	if strings.TrimSpace(i.Version) == "" {
		return fmt.Errorf("puzzle: version is required for day %d", i.Day)
	}
	return nil
}

// Label renders a short human readable identifier such as "Day 07: Laboratories".
func (i Info) Label() string {
	return fmt.Sprintf("Day %02d: %s", i.Day, i.Title)
}

// Part selects one half of a day's puzzle.
type Part int

const (
	Part1 Part = 1
	Part2 Part = 2
)

// Parts lists both halves in execution order.
var Parts = []Part{Part1, Part2}

func (p Part) String() string {
	return fmt.Sprintf("part %d", int(p))
}

// Valid reports whether p names an existing half.
func (p Part) Valid() bool {
	return p == Part1 || p == Part2
}

// Solver is implemented by every day's solution. Both halves take the raw
// puzzle input and return the integer answer.
type Solver interface {
	Info() Info
	Part1(input string) (int64, error)
	Part2(input string) (int64, error)
}

// Base provides the identity plumbing for solvers.
type Base struct {
	info Info
}

// NewBase seeds the helper with puzzle info.
func NewBase(info Info) Base {
	return Base{info: info}
}

// Info implements Solver.Info.
func (b Base) Info() Info {
	return b.info
}
