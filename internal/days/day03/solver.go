// Package day03 picks the largest joltage from banks of batteries.
package day03

import (
	"fmt"
	"strings"

	"github.com/kingrea/advent/internal/input"
	"github.com/kingrea/advent/internal/puzzle"
)

const (
	Day     = 3
	title   = "Lobby"
	version = "1.0.0"
)

// Solver implements puzzle.Solver for day 3.
type Solver struct {
	puzzle.Base
}

// New returns the day 3 solver.
func New() *Solver {
	return &Solver{Base: puzzle.NewBase(puzzle.Info{Day: Day, Title: title, Version: version})}
}

// Register installs the solver factory.
func Register(reg *puzzle.Registry) {
	reg.MustRegister(Day, func() (puzzle.Solver, error) {
		return New(), nil
	})
}

// Part1 turns on two batteries per bank.
func (s *Solver) Part1(text string) (int64, error) {
	return totalJoltage(text, 2)
}

// Part2 turns on twelve batteries per bank.
func (s *Solver) Part2(text string) (int64, error) {
	return totalJoltage(text, 12)
}

func totalJoltage(text string, count int) (int64, error) {
	var total int64
	for i, line := range input.Lines(text) {
		bank := strings.TrimSpace(line)
		if bank == "" {
			continue
		}
		j, err := maxJoltage(bank, count)
		if err != nil {
			return 0, fmt.Errorf("day03: line %d: %w", i+1, err)
		}
		total += j
	}
	return total, nil
}

// maxJoltage greedily takes, for each output position, the largest digit
// that still leaves enough batteries for the remaining positions.
func maxJoltage(bank string, count int) (int64, error) {
	if len(bank) < count {
		return 0, fmt.Errorf("bank %q has fewer than %d batteries", bank, count)
	}
	var value int64
	next := 0
	for remaining := count; remaining > 0; remaining-- {
		best := next
		for i := next; i <= len(bank)-remaining; i++ {
			if bank[i] < '0' || bank[i] > '9' {
				return 0, fmt.Errorf("bank %q has non-digit %q", bank, bank[i])
			}
			if bank[i] > bank[best] {
				best = i
			}
		}
		value = value*10 + int64(bank[best]-'0')
		next = best + 1
	}
	return value, nil
}
