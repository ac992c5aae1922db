package day01

import "testing"

const sample = `L68
L30
R48
L5
R60
L55
L1
L99
R14
L82
`

func TestSample(t *testing.T) {
	s := New()
	if got, err := s.Part1(sample); err != nil || got != 3 {
		t.Fatalf("part 1 = %d, %v; want 3", got, err)
	}
	if got, err := s.Part2(sample); err != nil || got != 6 {
		t.Fatalf("part 2 = %d, %v; want 6", got, err)
	}
}

func TestFullTurnsCountEachPass(t *testing.T) {
	s := New()
	cases := []struct {
		in   string
		want int64
	}{
		{in: "R1000", want: 10},
		{in: "L1000", want: 10},
		{in: "L50", want: 1},
		{in: "L50\nL100", want: 2},
		{in: "R49", want: 0},
	}
	for _, tc := range cases {
		got, err := s.Part2(tc.in)
		if err != nil {
			t.Fatalf("Part2(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Part2(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRejectsBadLines(t *testing.T) {
	for _, in := range []string{"X10", "Lx", "R-3"} {
		if _, err := New().Part1(in); err == nil {
			t.Fatalf("Part1(%q) expected error", in)
		}
	}
}
