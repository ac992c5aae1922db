package puzzle

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubSolver struct {
	Base
	p1, p2 int64
	err    error
}

func (s stubSolver) Part1(string) (int64, error) { return s.p1, s.err }
func (s stubSolver) Part2(string) (int64, error) { return s.p2, s.err }

func stubFactory(info Info) Factory {
	return func() (Solver, error) {
		return stubSolver{Base: NewBase(info), p1: 1, p2: 2}, nil
	}
}

func TestRegistryResolveAndOrder(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(7, stubFactory(Info{Day: 7, Title: "Seven", Version: "1"}))
	reg.MustRegister(2, stubFactory(Info{Day: 2, Title: "Two", Version: "1"}))
	if diff := cmp.Diff([]int{2, 7}, reg.Days()); diff != "" {
		t.Fatalf("Days mismatch (-want +got):\n%s", diff)
	}
	latest, ok := reg.Latest()
	if !ok || latest != 7 {
		t.Fatalf("Latest = %d,%v want 7,true", latest, ok)
	}
	s, err := reg.Resolve(2)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Info().Label() != "Day 02: Two" {
		t.Fatalf("label = %q", s.Info().Label())
	}
}

func TestRegistryRejectsDuplicatesAndBadDays(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(1, stubFactory(Info{Day: 1, Title: "One", Version: "1"})); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(1, stubFactory(Info{Day: 1, Title: "One", Version: "1"})); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(0, stubFactory(Info{})); err == nil {
		t.Fatalf("expected day range error")
	}
	if err := reg.Register(3, nil); err == nil {
		t.Fatalf("expected nil factory error")
	}
	if _, err := reg.Resolve(9); err == nil {
		t.Fatalf("expected unknown day error")
	}
	if _, ok := NewRegistry().Latest(); ok {
		t.Fatalf("empty registry reported a latest day")
	}
}

func TestRegistryValidatesSolverInfo(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(4, stubFactory(Info{Day: 5, Title: "Five", Version: "1"}))
	reg.MustRegister(6, stubFactory(Info{Day: 6, Title: "", Version: "1"}))
	if _, err := reg.Resolve(4); err == nil || !strings.Contains(err.Error(), "reports day 5") {
		t.Fatalf("expected day mismatch error, got %v", err)
	}
	if _, err := reg.Resolve(6); err == nil || !strings.Contains(err.Error(), "title is required") {
		t.Fatalf("expected title validation error, got %v", err)
	}
}

func TestRunAll(t *testing.T) {
	s := stubSolver{Base: NewBase(Info{Day: 3, Title: "Three", Version: "1"}), p1: 10, p2: 20}
	results := RunAll(s, 0, "")
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Part != Part1 || results[0].Value != 10 || !results[0].OK() {
		t.Fatalf("part 1 result = %+v", results[0])
	}
	if results[1].Part != Part2 || results[1].Value != 20 {
		t.Fatalf("part 2 result = %+v", results[1])
	}
	if only := RunAll(s, Part2, ""); len(only) != 1 || only[0].Value != 20 {
		t.Fatalf("RunAll(Part2) = %+v", only)
	}
	if bad := Run(s, Part(3), ""); bad.OK() {
		t.Fatalf("expected error for unknown part")
	}
}

func TestRunPropagatesSolverError(t *testing.T) {
	boom := errors.New("boom")
	s := stubSolver{Base: NewBase(Info{Day: 3, Title: "Three", Version: "1"}), err: boom}
	res := Run(s, Part1, "")
	if !errors.Is(res.Err, boom) {
		t.Fatalf("err = %v, want boom", res.Err)
	}
	if !strings.Contains(res.String(), "error: boom") {
		t.Fatalf("String() = %q", res.String())
	}
}
