// Package day07 traces a tachyon beam through a manifold of splitters.
//
// Input is a rectangular grid: `S` marks where the beam enters (first row),
// `^` marks a splitter, every other character is empty space. Part 1 counts
// splitters the beam reaches; part 2 counts distinct routes out of the grid.
package day07

import "github.com/kingrea/advent/internal/puzzle"

const (
	Day     = 7
	title   = "Laboratories"
	version = "1.0.0"
)

// Solver implements puzzle.Solver for day 7.
type Solver struct {
	puzzle.Base
}

// New returns the day 7 solver.
func New() *Solver {
	return &Solver{Base: puzzle.NewBase(puzzle.Info{Day: Day, Title: title, Version: version})}
}

// Register installs the solver factory.
func Register(reg *puzzle.Registry) {
	reg.MustRegister(Day, func() (puzzle.Solver, error) {
		return New(), nil
	})
}

// Part1 counts branch events.
func (s *Solver) Part1(input string) (int64, error) {
	t, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return t.CountBranchEvents(), nil
}

// Part2 counts distinct beam paths.
func (s *Solver) Part2(input string) (int64, error) {
	t, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return t.CountDistinctPaths()
}
