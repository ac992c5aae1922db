// Package day01 turns a safe dial through a list of rotations.
package day01

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kingrea/advent/internal/input"
	"github.com/kingrea/advent/internal/puzzle"
)

const (
	Day     = 1
	title   = "Secret Entrance"
	version = "1.0.0"

	dialSize  = 100
	dialStart = 50
)

// Solver implements puzzle.Solver for day 1.
type Solver struct {
	puzzle.Base
}

// New returns the day 1 solver.
func New() *Solver {
	return &Solver{Base: puzzle.NewBase(puzzle.Info{Day: Day, Title: title, Version: version})}
}

// Register installs the solver factory.
func Register(reg *puzzle.Registry) {
	reg.MustRegister(Day, func() (puzzle.Solver, error) {
		return New(), nil
	})
}

type rotation struct {
	left   bool
	clicks int64
}

func parse(text string) ([]rotation, error) {
	lines := input.Lines(text)
	out := make([]rotation, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rot rotation
		switch line[0] {
		case 'L':
			rot.left = true
		case 'R':
		default:
			return nil, fmt.Errorf("day01: line %d: unknown direction %q", i+1, line[0])
		}
		n, err := strconv.ParseInt(line[1:], 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("day01: line %d: bad click count %q", i+1, line[1:])
		}
		rot.clicks = n
		out = append(out, rot)
	}
	return out, nil
}

// Part1 counts rotations that leave the dial pointing at zero.
func (s *Solver) Part1(text string) (int64, error) {
	rots, err := parse(text)
	if err != nil {
		return 0, err
	}
	pos := int64(dialStart)
	var zeros int64
	for _, r := range rots {
		pos = turn(pos, r)
		if pos == 0 {
			zeros++
		}
	}
	return zeros, nil
}

// Part2 counts every click that lands on zero, mid-rotation included.
func (s *Solver) Part2(text string) (int64, error) {
	rots, err := parse(text)
	if err != nil {
		return 0, err
	}
	pos := int64(dialStart)
	var zeros int64
	for _, r := range rots {
		zeros += passes(pos, r)
		pos = turn(pos, r)
	}
	return zeros, nil
}

func turn(pos int64, r rotation) int64 {
	if r.left {
		return ((pos-r.clicks)%dialSize + dialSize) % dialSize
	}
	return (pos + r.clicks) % dialSize
}

func passes(pos int64, r rotation) int64 {
	if !r.left {
		return (pos + r.clicks) / dialSize
	}
	switch {
	case pos == 0:
		return r.clicks / dialSize
	case r.clicks >= pos:
		return (r.clicks-pos)/dialSize + 1
	default:
		return 0
	}
}
