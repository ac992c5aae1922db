package day06

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = "123 328  51 64 \n" +
	" 45 64  387 23 \n" +
	"  6 98  215 314\n" +
	"*   +   *   +  \n"

func TestSample(t *testing.T) {
	s := New()
	if got, err := s.Part1(sample); err != nil || got != 4277556 {
		t.Fatalf("part 1 = %d, %v; want 4277556", got, err)
	}
	if got, err := s.Part2(sample); err != nil || got != 3263827 {
		t.Fatalf("part 2 = %d, %v; want 3263827", got, err)
	}
}

func TestTrimmedTrailingSpaces(t *testing.T) {
	trimmed := "123 328  51 64\n 45 64  387 23\n  6 98  215 314\n*   +   *   +\n"
	if got, err := New().Part2(trimmed); err != nil || got != 3263827 {
		t.Fatalf("part 2 = %d, %v; want 3263827", got, err)
	}
}

func TestOperandsForOneProblem(t *testing.T) {
	problems, err := parse(sample)
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 4 {
		t.Fatalf("len(problems) = %d, want 4", len(problems))
	}
	rows, err := problems[3].rowOperands()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{64, 23, 314}, rows); diff != "" {
		t.Fatalf("row operands (-want +got):\n%s", diff)
	}
	cols, err := problems[3].columnOperands()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{4, 431, 623}, cols); diff != "" {
		t.Fatalf("column operands (-want +got):\n%s", diff)
	}
}

func TestRejectsBadWorksheets(t *testing.T) {
	for _, in := range []string{"", "1 2", "1 2\n- +", "1x 2\n*  +"} {
		if _, err := New().Part1(in); err == nil {
			t.Fatalf("Part1(%q) expected error", in)
		}
	}
}
