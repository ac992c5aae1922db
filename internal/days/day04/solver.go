// Package day04 finds paper rolls a forklift can reach.
package day04

import (
	"fmt"

	"github.com/kingrea/advent/internal/grid"
	"github.com/kingrea/advent/internal/puzzle"
)

const (
	Day     = 4
	title   = "Printing Department"
	version = "1.0.0"

	roll  = '@'
	empty = '.'

	// A roll is reachable when fewer than this many neighbours hold rolls.
	crowdLimit = 4
)

// Solver implements puzzle.Solver for day 4.
type Solver struct {
	puzzle.Base
}

// New returns the day 4 solver.
func New() *Solver {
	return &Solver{Base: puzzle.NewBase(puzzle.Info{Day: Day, Title: title, Version: version})}
}

// Register installs the solver factory.
func Register(reg *puzzle.Registry) {
	reg.MustRegister(Day, func() (puzzle.Solver, error) {
		return New(), nil
	})
}

func parse(text string) (*grid.Grid, error) {
	g, err := grid.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("day04: %w", err)
	}
	return g, nil
}

// Part1 counts rolls reachable in the initial layout.
func (s *Solver) Part1(text string) (int64, error) {
	g, err := parse(text)
	if err != nil {
		return 0, err
	}
	return int64(len(accessible(g))), nil
}

// Part2 keeps removing reachable rolls until none are left and counts them.
func (s *Solver) Part2(text string) (int64, error) {
	g, err := parse(text)
	if err != nil {
		return 0, err
	}
	work := g.Clone()
	for {
		batch := accessible(work)
		if len(batch) == 0 {
			return int64(g.Count(roll) - work.Count(roll)), nil
		}
		for _, p := range batch {
			if err := work.Set(p, empty); err != nil {
				return 0, fmt.Errorf("day04: %w", err)
			}
		}
	}
}

func accessible(g *grid.Grid) []grid.Pos {
	var out []grid.Pos
	for _, p := range g.Find(roll) {
		if g.CountNeighbors(p, roll) < crowdLimit {
			out = append(out, p)
		}
	}
	return out
}
