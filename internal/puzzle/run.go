package puzzle

import (
	"fmt"
	"time"
)

// Result captures the outcome of running one half of a puzzle.
type Result struct {
	Day     int
	Part    Part
	Value   int64
	Elapsed time.Duration
	Err     error
}

// OK reports whether the run produced a value.
func (r Result) OK() bool {
	return r.Err == nil
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("day %d %s: error: %v", r.Day, r.Part, r.Err)
	}
	return fmt.Sprintf("day %d %s: %d (%s)", r.Day, r.Part, r.Value, r.Elapsed.Round(time.Microsecond))
}

// Run executes one half of s against input and times it.
func Run(s Solver, part Part, input string) Result {
	res := Result{Day: s.Info().Day, Part: part}
	var fn func(string) (int64, error)
	switch part {
	case Part1:
		fn = s.Part1
	case Part2:
		fn = s.Part2
	default:
		res.Err = fmt.Errorf("puzzle: unknown part %d", int(part))
		return res
	}
	start := time.Now()
	res.Value, res.Err = fn(input)
	res.Elapsed = time.Since(start)
	return res
}

// RunAll executes the requested parts in order. A zero part means both.
func RunAll(s Solver, part Part, input string) []Result {
	if part != 0 {
		return []Result{Run(s, part, input)}
	}
	results := make([]Result, 0, len(Parts))
	for _, p := range Parts {
		results = append(results, Run(s, p, input))
	}
	return results
}
