// Package review is a style reviewer for daily solutions. It discovers
// dayNN packages, runs a fixed set of go/ast checks over their sources and
// writes one feedback document per day with YAML frontmatter recording what
// was reviewed.
package review

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/advent/internal/config"
	"github.com/kingrea/advent/internal/logbook"
	"github.com/kingrea/advent/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// Options controls where the agent reads and writes and how strict it is.
type Options struct {
	SolutionsDir     string
	FeedbackDir      string
	MaxFunctionLines int
	MaxNesting       int
	Disabled         []string
	// Debounce delays a watch-triggered review until edits settle.
	Debounce time.Duration
}

// OptionsFromConfig maps project configuration onto agent options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SolutionsDir:     cfg.SolutionsDir(),
		FeedbackDir:      cfg.FeedbackDir(),
		MaxFunctionLines: cfg.Project.Review.MaxFunctionLines,
		MaxNesting:       cfg.Project.Review.MaxNesting,
		Disabled:         append([]string{}, cfg.Project.Review.DisabledRules...),
	}
}

func (o Options) enabled(id string) bool {
	for _, d := range o.Disabled {
		if strings.EqualFold(strings.TrimSpace(d), id) {
			return false
		}
	}
	return true
}

// fingerprint renders the settings that change findings, so feedback is
// rewritten when the rule set or thresholds change.
func (o Options) fingerprint() string {
	var enabled []string
	for _, rule := range Rules() {
		if o.enabled(rule.ID) {
			enabled = append(enabled, rule.ID)
		}
	}
	return fmt.Sprintf("rules=%s;max_function_lines=%d;max_nesting=%d",
		strings.Join(enabled, ","), o.MaxFunctionLines, o.MaxNesting)
}

// Report summarizes one day's review.
type Report struct {
	Day      int
	Path     string
	Checksum string
	Findings []Finding
	// Written is false when an up to date feedback document already existed.
	Written bool
}

// Agent reviews solutions and authors feedback documents.
type Agent struct {
	opts    Options
	now     func() time.Time
	newID   func() string
	journal *logbook.Logbook
	log     *logging.Logger
}

// AgentOption customizes an Agent during construction.
type AgentOption func(*Agent)

// WithClock overrides the clock used for feedback timestamps.
func WithClock(clock func() time.Time) AgentOption {
	return func(a *Agent) {
		a.now = clock
	}
}

// WithIDGenerator overrides how review ids are minted.
func WithIDGenerator(gen func() string) AgentOption {
	return func(a *Agent) {
		a.newID = gen
	}
}

// WithJournal records every review in the run journal.
func WithJournal(book *logbook.Logbook) AgentOption {
	return func(a *Agent) {
		a.journal = book
	}
}

// WithLogger sends diagnostics to logger.
func WithLogger(logger *logging.Logger) AgentOption {
	return func(a *Agent) {
		a.log = logger
	}
}

// NewAgent builds an agent.
func NewAgent(opts Options, options ...AgentOption) (*Agent, error) {
	if strings.TrimSpace(opts.SolutionsDir) == "" {
		return nil, fmt.Errorf("review: solutions dir is required")
	}
	if strings.TrimSpace(opts.FeedbackDir) == "" {
		return nil, fmt.Errorf("review: feedback dir is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	a := &Agent{
		opts:  opts,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

// FeedbackPath returns the feedback document location for day.
func (a *Agent) FeedbackPath(day int) string {
	return filepath.Join(a.opts.FeedbackDir, fmt.Sprintf("day%02d.md", day))
}

// ReviewDay reviews a single day. Unless force is set, an existing document
// whose checksum matches the current sources is left untouched.
func (a *Agent) ReviewDay(day int, force bool) (Report, error) {
	target, err := DiscoverDay(a.opts.SolutionsDir, day)
	if err != nil {
		return Report{}, err
	}
	return a.review(target, force)
}

// ReviewAll reviews every discovered day.
func (a *Agent) ReviewAll(force bool) ([]Report, error) {
	targets, err := Discover(a.opts.SolutionsDir)
	if err != nil {
		return nil, err
	}
	reports := make([]Report, 0, len(targets))
	for _, target := range targets {
		rep, err := a.review(target, force)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (a *Agent) review(target Target, force bool) (Report, error) {
	names, findings, checksum, err := a.analyze(target)
	if err != nil {
		a.journal.Error("review day %d failed: %v", target.Day, err)
		return Report{}, err
	}
	rep := Report{Day: target.Day, Path: a.FeedbackPath(target.Day), Checksum: checksum, Findings: findings}
	if !force && a.upToDate(rep.Path, checksum) {
		a.log.Printf("review: day %d unchanged, keeping %s", target.Day, rep.Path)
		return rep, nil
	}
	if err := a.write(rep, names); err != nil {
		a.journal.Error("review day %d failed: %v", target.Day, err)
		return Report{}, err
	}
	rep.Written = true
	a.log.Printf("review: day %d: %d findings written to %s", target.Day, len(findings), rep.Path)
	a.journal.Info("reviewed day %d: %d findings", target.Day, len(findings))
	return rep, nil
}

func (a *Agent) analyze(target Target) ([]string, []Finding, string, error) {
	fset := token.NewFileSet()
	hash := sha256.New()
	var (
		names    []string
		findings []Finding
	)
	for _, path := range target.Files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, "", fmt.Errorf("review: read %s: %w", path, err)
		}
		name := a.relative(path)
		names = append(names, name)
		hash.Write([]byte(name))
		hash.Write([]byte{0})
		hash.Write(src)
		hash.Write([]byte{0})
		file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
		if err != nil {
			return nil, nil, "", fmt.Errorf("review: parse %s: %w", name, err)
		}
		findings = append(findings, analyzeFile(fset, file, name, a.opts)...)
	}
	hash.Write([]byte(a.opts.fingerprint()))
	return names, findings, hex.EncodeToString(hash.Sum(nil)), nil
}

func (a *Agent) relative(path string) string {
	rel, err := filepath.Rel(a.opts.SolutionsDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (a *Agent) upToDate(path, checksum string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.log.Printf("review: read %s: %v", path, err)
		}
		return false
	}
	meta, _, err := ParseFrontMatter(data)
	if err != nil {
		a.log.Printf("review: ignoring unreadable feedback %s: %v", path, err)
		return false
	}
	return meta.Checksum == checksum
}

func (a *Agent) write(rep Report, files []string) error {
	meta := Metadata{
		ReviewID:  a.newID(),
		Day:       rep.Day,
		Files:     files,
		CreatedAt: a.now(),
		Checksum:  rep.Checksum,
		Findings:  len(rep.Findings),
		Rules:     countRules(rep.Findings),
	}
	doc, err := WriteFrontMatter(meta, renderBody(rep.Day, files, rep.Findings))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(rep.Path), 0o755); err != nil {
		return fmt.Errorf("review: ensure feedback dir: %w", err)
	}
	tmp := rep.Path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return fmt.Errorf("review: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, rep.Path); err != nil {
		return fmt.Errorf("review: replace %s: %w", rep.Path, err)
	}
	return nil
}
