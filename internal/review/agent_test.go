package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kingrea/advent/internal/logbook"
)

const cleanSource = `package day01

// Answer sums the readings.
func Answer(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
`

const messySource = `package day02

import "strconv"

var memo = map[string]int{}

func Solve(s string) int {
	n, _ := strconv.Atoi(s)
	if n < 0 {
		panic("negative")
	}
	memo[s] = n
	return n
}
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupSolutions(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	solutions := filepath.Join(root, "internal", "days")
	writeFile(t, filepath.Join(solutions, "day01", "solver.go"), cleanSource)
	writeFile(t, filepath.Join(solutions, "day01", "solver_test.go"), "package day01\n")
	writeFile(t, filepath.Join(solutions, "day02", "solver.go"), messySource)
	writeFile(t, filepath.Join(solutions, "day1", "solver.go"), "package day1\n")
	writeFile(t, filepath.Join(solutions, "day03", "README.md"), "notes\n")
	writeFile(t, filepath.Join(solutions, "days.go"), "package days\n")
	return solutions, filepath.Join(root, "feedback")
}

func newTestAgent(t *testing.T, solutions, feedback string, opts ...AgentOption) *Agent {
	t.Helper()
	ids := 0
	base := []AgentOption{
		WithClock(func() time.Time { return time.Date(2025, 12, 7, 6, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			ids++
			return "review-" + string(rune('a'+ids-1))
		}),
	}
	agent, err := NewAgent(Options{
		SolutionsDir:     solutions,
		FeedbackDir:      feedback,
		MaxFunctionLines: 60,
		MaxNesting:       4,
		Debounce:         20 * time.Millisecond,
	}, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	return agent
}

func TestDiscoverFindsDayPackages(t *testing.T) {
	solutions, _ := setupSolutions(t)
	targets, err := Discover(solutions)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	var got []int
	for _, target := range targets {
		got = append(got, target.Day)
		for _, f := range target.Files {
			if strings.HasSuffix(f, "_test.go") {
				t.Fatalf("test file %s should be skipped", f)
			}
		}
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Fatalf("days (-want +got):\n%s", diff)
	}
	if _, err := DiscoverDay(solutions, 3); err == nil {
		t.Fatalf("expected no sources error for day 3")
	}
	missing, err := Discover(filepath.Join(solutions, "nope"))
	if err != nil || missing != nil {
		t.Fatalf("Discover(missing) = %v, %v", missing, err)
	}
}

func TestReviewAllWritesFeedback(t *testing.T) {
	solutions, feedback := setupSolutions(t)
	journalPath := filepath.Join(t.TempDir(), "runs.log")
	journal, err := logbook.New(journalPath)
	if err != nil {
		t.Fatal(err)
	}
	agent := newTestAgent(t, solutions, feedback, WithJournal(journal))
	reports, err := agent.ReviewAll(false)
	if err != nil {
		t.Fatalf("review all: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}
	if len(reports[0].Findings) != 0 || !reports[0].Written {
		t.Fatalf("day 1 report = %+v", reports[0])
	}
	counts := ruleCounts(reports[1].Findings)
	want := map[string]int{"global-state": 1, "doc-exported": 1, "discarded-error": 1, "panic-call": 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("day 2 rule counts (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(feedback, "day02.md"))
	if err != nil {
		t.Fatalf("read feedback: %v", err)
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("parse feedback: %v", err)
	}
	if meta.Day != 2 || meta.Findings != 4 || meta.ReviewID != "review-b" {
		t.Fatalf("metadata = %+v", meta)
	}
	if diff := cmp.Diff([]string{"day02/solver.go"}, meta.Files); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	if meta.Checksum != reports[1].Checksum {
		t.Fatalf("checksum = %s, want %s", meta.Checksum, reports[1].Checksum)
	}
	if !meta.CreatedAt.Equal(time.Date(2025, 12, 7, 6, 0, 0, 0, time.UTC)) {
		t.Fatalf("created = %s", meta.CreatedAt)
	}
	if !strings.Contains(string(body), "`panic-call` day02/solver.go:10") {
		t.Fatalf("body missing panic finding:\n%s", body)
	}
	clean, err := os.ReadFile(filepath.Join(feedback, "day01.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(clean), "No findings.") {
		t.Fatalf("clean feedback body:\n%s", clean)
	}
	if _, total := journal.Tail(10); total != 2 {
		t.Fatalf("journal entries = %d, want 2", total)
	}
}

func TestReviewSkipsUnchangedSources(t *testing.T) {
	solutions, feedback := setupSolutions(t)
	agent := newTestAgent(t, solutions, feedback)
	first, err := agent.ReviewDay(2, false)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Written {
		t.Fatalf("first review should write")
	}
	again, err := agent.ReviewDay(2, false)
	if err != nil {
		t.Fatal(err)
	}
	if again.Written {
		t.Fatalf("unchanged sources should not be rewritten")
	}
	if again.Checksum != first.Checksum || len(again.Findings) != len(first.Findings) {
		t.Fatalf("second review drifted: %+v vs %+v", again, first)
	}
	forced, err := agent.ReviewDay(2, true)
	if err != nil || !forced.Written {
		t.Fatalf("forced review = %+v, %v", forced, err)
	}
	writeFile(t, filepath.Join(solutions, "day02", "solver.go"), strings.Replace(messySource, "panic(\"negative\")", "return 0", 1))
	changed, err := agent.ReviewDay(2, false)
	if err != nil {
		t.Fatal(err)
	}
	if !changed.Written || changed.Checksum == first.Checksum {
		t.Fatalf("changed sources should be rewritten: %+v", changed)
	}
	if ruleCounts(changed.Findings)["panic-call"] != 0 {
		t.Fatalf("panic finding should be gone")
	}
}

func TestReviewRewritesWhenRulesChange(t *testing.T) {
	solutions, feedback := setupSolutions(t)
	first, err := newTestAgent(t, solutions, feedback).ReviewDay(2, false)
	if err != nil || !first.Written {
		t.Fatalf("first review = %+v, %v", first, err)
	}

	strict, err := NewAgent(Options{
		SolutionsDir:     solutions,
		FeedbackDir:      feedback,
		MaxFunctionLines: 60,
		MaxNesting:       4,
		Disabled:         []string{"panic-call"},
	}, WithIDGenerator(func() string { return "review-strict" }))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := strict.ReviewDay(2, false)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Written || rep.Checksum == first.Checksum {
		t.Fatalf("disabling a rule should rewrite feedback: %+v", rep)
	}
	data, err := os.ReadFile(rep.Path)
	if err != nil {
		t.Fatal(err)
	}
	meta, _, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Findings != len(rep.Findings) || meta.Findings != len(first.Findings)-1 {
		t.Fatalf("feedback findings = %d, report = %d, first = %d", meta.Findings, len(rep.Findings), len(first.Findings))
	}
	if meta.Rules["panic-call"] != 0 {
		t.Fatalf("disabled rule still recorded: %v", meta.Rules)
	}

	again, err := strict.ReviewDay(2, false)
	if err != nil || again.Written {
		t.Fatalf("same options should keep feedback: %+v, %v", again, err)
	}
}

func TestReviewReportsParseErrors(t *testing.T) {
	solutions, feedback := setupSolutions(t)
	writeFile(t, filepath.Join(solutions, "day04", "solver.go"), "package day04\nfunc {\n")
	agent := newTestAgent(t, solutions, feedback)
	if _, err := agent.ReviewDay(4, false); err == nil || !strings.Contains(err.Error(), "day04/solver.go") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestNewAgentRequiresDirs(t *testing.T) {
	if _, err := NewAgent(Options{FeedbackDir: "x"}); err == nil {
		t.Fatalf("expected solutions dir error")
	}
	if _, err := NewAgent(Options{SolutionsDir: "x"}); err == nil {
		t.Fatalf("expected feedback dir error")
	}
}

func TestFrontMatterErrors(t *testing.T) {
	if _, _, err := ParseFrontMatter(nil); !errors.Is(err, ErrMissingFrontMatter) {
		t.Fatalf("err = %v", err)
	}
	if _, _, err := ParseFrontMatter([]byte("# title\n")); !errors.Is(err, ErrMissingFrontMatter) {
		t.Fatalf("err = %v", err)
	}
	if _, _, err := ParseFrontMatter([]byte("---\nreview:\n  id: x\n")); !errors.Is(err, ErrMalformedFrontMatter) {
		t.Fatalf("err = %v", err)
	}
	if _, _, err := ParseFrontMatter([]byte("---\nreview:\n  id: x\n---\nbody")); !errors.Is(err, ErrMalformedFrontMatter) {
		t.Fatalf("err = %v", err)
	}
	if _, err := WriteFrontMatter(Metadata{}, nil); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestWatchReviewsChangedDay(t *testing.T) {
	solutions, feedback := setupSolutions(t)
	agent := newTestAgent(t, solutions, feedback)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan Report, 16)
	done := make(chan error, 1)
	go func() {
		done <- agent.Watch(ctx, func(rep Report, err error) {
			if err == nil {
				reports <- rep
			}
		})
	}()

	path := filepath.Join(solutions, "day01", "solver.go")
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case rep := <-reports:
			if rep.Day != 1 {
				t.Fatalf("watch reviewed day %d, want 1", rep.Day)
			}
			if _, err := os.Stat(filepath.Join(feedback, "day01.md")); err != nil {
				t.Fatalf("feedback not written: %v", err)
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("watch returned %v", err)
			}
			return
		case <-tick.C:
			writeFile(t, path, cleanSource+strings.Repeat("\n", i%3))
		case <-deadline:
			t.Fatalf("no review triggered by source changes")
		}
	}
}

func TestDebouncerStopReleasesPendingDeliveries(t *testing.T) {
	d := newDebouncer(time.Millisecond)
	d.schedule(1)
	d.schedule(2)
	d.schedule(2)
	d.schedule(3)
	// Nobody reads due: let the timers fire and block on delivery.
	time.Sleep(50 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		d.stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatalf("stop left timer callbacks blocked on delivery")
	}
	if len(d.timers) != 0 {
		t.Fatalf("timers after stop = %d", len(d.timers))
	}
}

func TestDebouncerDeliversLatestSchedule(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()
	d.schedule(5)
	d.schedule(5)
	select {
	case day := <-d.due:
		d.fired(day)
		if day != 5 {
			t.Fatalf("due day = %d, want 5", day)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no delivery")
	}
	select {
	case day := <-d.due:
		t.Fatalf("rescheduled day delivered twice (%d)", day)
	case <-time.After(100 * time.Millisecond):
	}
	if len(d.timers) != 0 {
		t.Fatalf("timers = %d after delivery", len(d.timers))
	}
}
