// Package day02 finds invalid product IDs: numbers made of one digit block
// repeated end to end.
package day02

import (
	"fmt"
	"strings"

	"github.com/kingrea/advent/internal/input"
	"github.com/kingrea/advent/internal/puzzle"
)

const (
	Day     = 2
	title   = "Gift Shop"
	version = "1.0.0"

	maxDigits = 18
)

// Solver implements puzzle.Solver for day 2.
type Solver struct {
	puzzle.Base
}

// New returns the day 2 solver.
func New() *Solver {
	return &Solver{Base: puzzle.NewBase(puzzle.Info{Day: Day, Title: title, Version: version})}
}

// Register installs the solver factory.
func Register(reg *puzzle.Registry) {
	reg.MustRegister(Day, func() (puzzle.Solver, error) {
		return New(), nil
	})
}

type idRange struct {
	lo, hi int64
}

func parse(text string) ([]idRange, error) {
	joined := strings.Join(input.Lines(text), "")
	var out []idRange
	for _, field := range strings.Split(joined, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		lo, hi, err := input.Range(field)
		if err != nil {
			return nil, fmt.Errorf("day02: %w", err)
		}
		if hi >= pow10(maxDigits) {
			return nil, fmt.Errorf("day02: range %q exceeds %d digits", field, maxDigits)
		}
		out = append(out, idRange{lo: lo, hi: hi})
	}
	return out, nil
}

// Part1 sums IDs whose digits are a block repeated exactly twice.
func (s *Solver) Part1(text string) (int64, error) {
	return sumInvalid(text, func(repeats int) bool { return repeats == 2 })
}

// Part2 sums IDs whose digits are a block repeated at least twice.
func (s *Solver) Part2(text string) (int64, error) {
	return sumInvalid(text, func(repeats int) bool { return repeats >= 2 })
}

func sumInvalid(text string, allow func(repeats int) bool) (int64, error) {
	ranges, err := parse(text)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, r := range ranges {
		for id := range invalidIDs(r, allow) {
			total += id
		}
	}
	return total, nil
}

// invalidIDs builds every repeated-block number inside r instead of testing
// each ID. A set removes numbers reachable through several block sizes,
// such as 222222.
func invalidIDs(r idRange, allow func(repeats int) bool) map[int64]struct{} {
	found := make(map[int64]struct{})
	for length := digits(r.lo); length <= digits(r.hi); length++ {
		for block := 1; block <= length/2; block++ {
			if length%block != 0 || !allow(length/block) {
				continue
			}
			rep := repunit(block, length/block)
			lo := max(pow10(block-1), ceilDiv(r.lo, rep))
			hi := min(pow10(block)-1, r.hi/rep)
			for b := lo; b <= hi; b++ {
				found[b*rep] = struct{}{}
			}
		}
	}
	return found
}

// repunit returns the multiplier that repeats a block of the given width
// count times, e.g. repunit(2, 3) = 10101.
func repunit(block, count int) int64 {
	var n int64
	step := pow10(block)
	for i := 0; i < count; i++ {
		n = n*step + 1
	}
	return n
}

func digits(n int64) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
