package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRectangular(t *testing.T) {
	g, err := Parse("ab.\r\n.b.\n..a\n\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("shape = %dx%d, want 3x3", g.Rows(), g.Cols())
	}
	if got := g.At(Pos{Row: 1, Col: 1}); got != 'b' {
		t.Fatalf("At(1,1) = %q, want 'b'", got)
	}
	want := []Pos{{Row: 0, Col: 0}, {Row: 2, Col: 2}}
	if diff := cmp.Diff(want, g.Find('a')); diff != "" {
		t.Fatalf("Find mismatch (-want +got):\n%s", diff)
	}
	if g.String() != "ab.\n.b.\n..a" {
		t.Fatalf("String() = %q", g.String())
	}
}

func TestParseRejectsJaggedRows(t *testing.T) {
	_, err := Parse("...\n..\n...")
	if !errors.Is(err, ErrJagged) {
		t.Fatalf("expected ErrJagged, got %v", err)
	}
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
	if shape.Row != 1 || shape.Want != 3 || shape.Got != 2 {
		t.Fatalf("shape error = %+v", shape)
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "\r\n"} {
		if _, err := Parse(text); !errors.Is(err, ErrEmpty) {
			t.Fatalf("Parse(%q) err = %v, want ErrEmpty", text, err)
		}
	}
}

func TestBoundsAndNeighbors(t *testing.T) {
	g, err := Parse("@@.\n@.@\n...")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []Pos{{Row: -1, Col: 0}, {Row: 0, Col: 3}, {Row: 3, Col: 0}} {
		if g.In(p) {
			t.Fatalf("In(%v) = true, want false", p)
		}
	}
	if n := g.CountNeighbors(Pos{Row: 1, Col: 1}, '@'); n != 4 {
		t.Fatalf("CountNeighbors centre = %d, want 4", n)
	}
	if n := g.CountNeighbors(Pos{Row: 0, Col: 0}, '@'); n != 2 {
		t.Fatalf("CountNeighbors corner = %d, want 2", n)
	}
	if n := len(Pos{}.Neighbors8()); n != 8 {
		t.Fatalf("Neighbors8 len = %d, want 8", n)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := Parse("ab\ncd")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Set(Pos{}, 'z'); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Set on parsed grid err = %v, want %v", err, ErrReadOnly)
	}
	c := g.Clone()
	if err := c.Set(Pos{Row: 0, Col: 0}, 'z'); err != nil {
		t.Fatalf("Set on clone: %v", err)
	}
	if err := c.Set(Pos{Row: 2, Col: 0}, 'z'); err == nil {
		t.Fatalf("Set outside the grid should fail")
	}
	if err := c.Clone().Set(Pos{Row: 1, Col: 1}, 'y'); err != nil {
		t.Fatalf("clone of a clone should be writable: %v", err)
	}
	if g.At(Pos{}) != 'a' {
		t.Fatalf("clone mutation leaked into original")
	}
	if c.Count('z') != 1 {
		t.Fatalf("clone missing mutation")
	}
}

func TestPointSteps(t *testing.T) {
	p := Point[int8]{Row: 3, Col: 4}
	if got := p.Add(Point[int8]{Row: -1, Col: 2}); got != (Point[int8]{Row: 2, Col: 6}) {
		t.Fatalf("Add = %v", got)
	}
	if p.Down() != (Point[int8]{Row: 4, Col: 4}) || p.Left() != (Point[int8]{Row: 3, Col: 3}) || p.Right() != (Point[int8]{Row: 3, Col: 5}) {
		t.Fatalf("steps from %v = %v %v %v", p, p.Down(), p.Left(), p.Right())
	}
}
