package day07

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/advent/internal/grid"
)

const (
	startCell    = 'S'
	splitterCell = '^'
)

var (
	// ErrMissingStart indicates the grid has no start cell.
	ErrMissingStart = errors.New("day07: grid has no start cell")
	// ErrMultipleStart indicates the grid has more than one start cell.
	ErrMultipleStart = errors.New("day07: grid has more than one start cell")
	// ErrMisplacedStart indicates the start cell is not in the first row.
	ErrMisplacedStart = errors.New("day07: start cell must be in the first row")
	// ErrSplitterLoop indicates the beam reached two side by side splitters
	// that keep handing it back to each other, so the path count is unbounded.
	ErrSplitterLoop = errors.New("day07: beam loops between adjacent splitters")
)

// Tracer follows a beam that enters below the start cell and falls through
// the grid, forking left and right at every splitter. The grid is never
// modified, so a Tracer may be shared between goroutines.
type Tracer struct {
	grid  *grid.Grid
	entry grid.Pos
}

// NewTracer validates g and returns a tracer for it.
func NewTracer(g *grid.Grid) (*Tracer, error) {
	if g == nil {
		return nil, grid.ErrEmpty
	}
	starts := g.Find(startCell)
	switch {
	case len(starts) == 0:
		return nil, ErrMissingStart
	case len(starts) > 1:
		return nil, fmt.Errorf("%w: found %d at %s", ErrMultipleStart, len(starts), joinPositions(starts))
	case starts[0].Row != 0:
		return nil, fmt.Errorf("%w: found at %s", ErrMisplacedStart, starts[0])
	}
	return &Tracer{grid: g, entry: starts[0].Down()}, nil
}

// Parse builds a tracer from raw puzzle text.
func Parse(text string) (*Tracer, error) {
	g, err := grid.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("day07: %w", err)
	}
	return NewTracer(g)
}

// CountBranchEvents returns how many distinct splitters the beam reaches.
// Beams that merge onto an already lit cell add nothing.
func (t *Tracer) CountBranchEvents() int64 {
	w := branchWalk{grid: t.grid, visited: make(map[grid.Pos]struct{})}
	return w.trace(t.entry)
}

// CountDistinctPaths returns the number of left/right choice sequences that
// carry the beam from the start out of the grid. It fails with
// ErrSplitterLoop only when the beam actually reaches a pair of side by side
// splitters; pairs it never reaches do not matter.
func (t *Tracer) CountDistinctPaths() (int64, error) {
	w := pathWalk{
		grid:   t.grid,
		memo:   make(map[grid.Pos]int64),
		active: make(map[grid.Pos]struct{}),
	}
	return w.count(t.entry)
}

type branchWalk struct {
	grid    *grid.Grid
	visited map[grid.Pos]struct{}
}

func (w *branchWalk) trace(p grid.Pos) int64 {
	if !w.grid.In(p) {
		return 0
	}
	if _, seen := w.visited[p]; seen {
		return 0
	}
	w.visited[p] = struct{}{}
	if w.grid.At(p) == splitterCell {
		return w.trace(p.Left()) + w.trace(p.Right()) + 1
	}
	return w.trace(p.Down())
}

type pathWalk struct {
	grid *grid.Grid
	memo map[grid.Pos]int64
	// active holds the cells on the current recursion stack.
	active map[grid.Pos]struct{}
}

// count treats leaving the grid as one finished path, unlike branchWalk
// where leaving contributes no event.
func (w *pathWalk) count(p grid.Pos) (int64, error) {
	if !w.grid.In(p) {
		return 1, nil
	}
	if n, ok := w.memo[p]; ok {
		return n, nil
	}
	if _, ok := w.active[p]; ok {
		return 0, fmt.Errorf("%w: revisited %s", ErrSplitterLoop, p)
	}
	w.active[p] = struct{}{}
	defer delete(w.active, p)

	var n int64
	if w.grid.At(p) == splitterCell {
		left, err := w.count(p.Left())
		if err != nil {
			return 0, err
		}
		right, err := w.count(p.Right())
		if err != nil {
			return 0, err
		}
		n = left + right
	} else {
		down, err := w.count(p.Down())
		if err != nil {
			return 0, err
		}
		n = down
	}
	w.memo[p] = n
	return n, nil
}

func joinPositions(ps []grid.Pos) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
