package grid

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

var (
	// ErrEmpty indicates the text contained no rows.
	ErrEmpty = errors.New("grid: empty input")
	// ErrJagged indicates rows of unequal length.
	ErrJagged = errors.New("grid: rows have unequal length")
	// ErrReadOnly indicates a write to a parsed grid rather than a clone.
	ErrReadOnly = errors.New("grid: parsed grids are read-only, mutate a clone")
)

// ShapeError reports the first row whose width differs from row 0.
type ShapeError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("grid: row %d has %d columns, want %d", e.Row, e.Got, e.Want)
}

// Unwrap lets callers match ErrJagged with errors.Is.
func (e *ShapeError) Unwrap() error {
	return ErrJagged
}

// Point is a (row, col) coordinate.
type Point[T constraints.Signed] struct {
	Row, Col T
}

// Pos is the coordinate type puzzles index grids with.
type Pos = Point[int]

// Add returns p translated by d.
func (p Point[T]) Add(d Point[T]) Point[T] {
	return Point[T]{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Down returns the point one row below p.
func (p Point[T]) Down() Point[T] {
	return p.Add(Point[T]{Row: 1})
}

// Left returns the point one column to the left of p.
func (p Point[T]) Left() Point[T] {
	return p.Add(Point[T]{Col: -1})
}

// Right returns the point one column to the right of p.
func (p Point[T]) Right() Point[T] {
	return p.Add(Point[T]{Col: 1})
}

// Neighbors8 returns the eight surrounding points, unchecked against any bounds.
func (p Point[T]) Neighbors8() []Point[T] {
	out := make([]Point[T], 0, 8)
	for dr := T(-1); dr <= 1; dr++ {
		for dc := T(-1); dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out = append(out, p.Add(Point[T]{Row: dr, Col: dc}))
		}
	}
	return out
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is a rectangular block of single-byte cells. Grids returned by Parse
// are read-only; Clone returns a writable copy.
type Grid struct {
	cells    [][]byte
	cols     int
	readOnly bool
}

// Parse builds a grid from newline separated rows. Trailing blank lines are
// ignored; every remaining row must have the width of the first.
func Parse(text string) (*Grid, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil, ErrEmpty
	}
	lines := strings.Split(text, "\n")
	cells := make([][]byte, len(lines))
	cols := len(lines[0])
	if cols == 0 {
		return nil, ErrEmpty
	}
	for i, line := range lines {
		if len(line) != cols {
			return nil, &ShapeError{Row: i, Want: cols, Got: len(line)}
		}
		cells[i] = []byte(line)
	}
	return &Grid{cells: cells, cols: cols, readOnly: true}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// In reports whether p lies inside the grid.
func (g *Grid) In(p Pos) bool {
	return p.Row >= 0 && p.Row < len(g.cells) && p.Col >= 0 && p.Col < g.cols
}

// At returns the cell at p. Callers check In first.
func (g *Grid) At(p Pos) byte {
	return g.cells[p.Row][p.Col]
}

// Set overwrites the cell at p. It fails with ErrReadOnly on a parsed grid
// so puzzle input is never changed in place.
func (g *Grid) Set(p Pos, b byte) error {
	if g.readOnly {
		return ErrReadOnly
	}
	if !g.In(p) {
		return fmt.Errorf("grid: set %s outside %dx%d", p, g.Rows(), g.cols)
	}
	g.cells[p.Row][p.Col] = b
	return nil
}

// Find returns every position holding b in row-major order.
func (g *Grid) Find(b byte) []Pos {
	var out []Pos
	for r, row := range g.cells {
		for c, cell := range row {
			if cell == b {
				out = append(out, Pos{Row: r, Col: c})
			}
		}
	}
	return out
}

// Count returns how many cells hold b.
func (g *Grid) Count(b byte) int {
	n := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if cell == b {
				n++
			}
		}
	}
	return n
}

// CountNeighbors returns how many of the eight cells around p hold b.
func (g *Grid) CountNeighbors(p Pos, b byte) int {
	n := 0
	for _, q := range p.Neighbors8() {
		if g.In(q) && g.At(q) == b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that can be mutated without touching g.
func (g *Grid) Clone() *Grid {
	cells := make([][]byte, len(g.cells))
	for i, row := range g.cells {
		cells[i] = append([]byte(nil), row...)
	}
	return &Grid{cells: cells, cols: g.cols}
}

func (g *Grid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(row)
	}
	return b.String()
}
