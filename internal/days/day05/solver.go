// Package day05 checks ingredient IDs against fresh ranges.
package day05

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kingrea/advent/internal/input"
	"github.com/kingrea/advent/internal/puzzle"
)

const (
	Day     = 5
	title   = "Cafeteria"
	version = "1.0.0"
)

// Solver implements puzzle.Solver for day 5.
type Solver struct {
	puzzle.Base
}

// New returns the day 5 solver.
func New() *Solver {
	return &Solver{Base: puzzle.NewBase(puzzle.Info{Day: Day, Title: title, Version: version})}
}

// Register installs the solver factory.
func Register(reg *puzzle.Registry) {
	reg.MustRegister(Day, func() (puzzle.Solver, error) {
		return New(), nil
	})
}

type span struct {
	lo, hi int64
}

type database struct {
	fresh []span
	ids   []int64
}

func parse(text string) (database, error) {
	blocks := input.Blocks(text)
	if len(blocks) == 0 || len(blocks) > 2 {
		return database{}, fmt.Errorf("day05: expected ranges and ids sections, got %d", len(blocks))
	}
	var db database
	for _, line := range blocks[0] {
		lo, hi, err := input.Range(line)
		if err != nil {
			return database{}, fmt.Errorf("day05: %w", err)
		}
		db.fresh = append(db.fresh, span{lo: lo, hi: hi})
	}
	if len(blocks) == 2 {
		ids, err := input.Ints(strings.Join(blocks[1], "\n"))
		if err != nil {
			return database{}, fmt.Errorf("day05: ingredient ids: %w", err)
		}
		db.ids = ids
	}
	db.fresh = merge(db.fresh)
	return db, nil
}

// merge sorts spans and joins any that overlap or touch.
func merge(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sorted := append([]span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].lo < sorted[j].lo })
	out := []span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &out[len(out)-1]
		if s.lo <= last.hi+1 {
			last.hi = max(last.hi, s.hi)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (db database) isFresh(id int64) bool {
	i := sort.Search(len(db.fresh), func(i int) bool { return db.fresh[i].hi >= id })
	return i < len(db.fresh) && db.fresh[i].lo <= id
}

// Part1 counts available ingredient IDs that fall in a fresh range.
func (s *Solver) Part1(text string) (int64, error) {
	db, err := parse(text)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, id := range db.ids {
		if db.isFresh(id) {
			n++
		}
	}
	return n, nil
}

// Part2 counts every ID the fresh ranges cover.
func (s *Solver) Part2(text string) (int64, error) {
	db, err := parse(text)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, r := range db.fresh {
		n += r.hi - r.lo + 1
	}
	return n, nil
}
