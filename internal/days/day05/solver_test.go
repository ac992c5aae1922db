package day05

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `3-5
10-14
16-20
12-18

1
5
8
11
17
32
`

func TestSample(t *testing.T) {
	s := New()
	if got, err := s.Part1(sample); err != nil || got != 3 {
		t.Fatalf("part 1 = %d, %v; want 3", got, err)
	}
	if got, err := s.Part2(sample); err != nil || got != 14 {
		t.Fatalf("part 2 = %d, %v; want 14", got, err)
	}
}

func TestMergeJoinsTouchingSpans(t *testing.T) {
	got := merge([]span{{lo: 10, hi: 12}, {lo: 1, hi: 3}, {lo: 4, hi: 5}, {lo: 11, hi: 20}, {lo: 30, hi: 30}})
	want := []span{{lo: 1, hi: 5}, {lo: 10, hi: 20}, {lo: 30, hi: 30}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(span{})); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestRangesOnly(t *testing.T) {
	got, err := New().Part2("1-1\n1-3\n")
	if err != nil || got != 3 {
		t.Fatalf("part 2 = %d, %v; want 3", got, err)
	}
}

func TestRejectsMalformedSections(t *testing.T) {
	for _, in := range []string{"", "1-2\n\nx", "1-2\n\n3\n\n4", "2-1\n\n3"} {
		if _, err := New().Part1(in); err == nil {
			t.Fatalf("Part1(%q) expected error", in)
		}
	}
}
