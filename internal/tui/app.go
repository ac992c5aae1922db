// internal/tui/app.go
//
// This is the interactive front end for the daily solutions.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the App struct below
// 2. Update: turns key presses and finished runs into new state
// 3. View: renders the day list, the selected day's results and the journal
//
// Solving and reviewing happen inside tea.Cmds so the screen stays
// responsive while a slow day runs.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/advent/internal/answers"
	"github.com/kingrea/advent/internal/config"
	"github.com/kingrea/advent/internal/days"
	"github.com/kingrea/advent/internal/input"
	"github.com/kingrea/advent/internal/logbook"
	"github.com/kingrea/advent/internal/logging"
	"github.com/kingrea/advent/internal/puzzle"
	"github.com/kingrea/advent/internal/review"
)

const journalLines = 6

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC47F"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithRegistry replaces the built-in day registry.
func WithRegistry(reg *puzzle.Registry) AppOption {
	return func(a *App) {
		if reg != nil {
			a.registry = reg
		}
	}
}

// WithLogger sends diagnostics to logger.
func WithLogger(logger *logging.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

type runFinishedMsg struct {
	day     int
	results []puzzle.Result
	err     error
}

type reviewFinishedMsg struct {
	day    int
	report review.Report
	err    error
}

// dayItem implements list.Item for one registered day.
type dayItem struct {
	day   int
	title string
	desc  string
}

func (i dayItem) Title() string       { return i.title }
func (i dayItem) Description() string { return i.desc }
func (i dayItem) FilterValue() string { return i.title }

// dayState is what the app remembers about a day between key presses.
type dayState struct {
	results  []puzzle.Result
	verdicts []answers.Verdict
	runErr   error
	review   *review.Report
	revErr   error
	running  bool
}

// App is the main application model.
type App struct {
	config   *config.Config
	registry *puzzle.Registry
	logbook  *logbook.Logbook
	logger   *logging.Logger

	dayMenu   list.Model
	days      map[int]*dayState
	statusMsg string

	width  int
	height int
}

// NewApp creates a new App for the project rooted at projectDir.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.JournalPath())
	if err != nil {
		return nil, fmt.Errorf("tui: open journal: %w", err)
	}
	app := &App{
		config:   cfg,
		registry: days.NewRegistry(),
		logbook:  lb,
		days:     map[int]*dayState{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	menu := list.New(app.buildDayItems(), list.NewDefaultDelegate(), 40, 20)
	menu.Title = fmt.Sprintf("ADVENT %d", cfg.Project.Year)
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	if n := len(menu.Items()); n > 0 {
		menu.Select(n - 1)
	}
	app.dayMenu = menu
	lb.Info("Session opened · %d days registered", len(app.registry.Days()))
	return app, nil
}

func (a *App) buildDayItems() []list.Item {
	var items []list.Item
	for _, day := range a.registry.Days() {
		solver, err := a.registry.Resolve(day)
		if err != nil {
			items = append(items, dayItem{day: day, title: fmt.Sprintf("Day %02d", day), desc: err.Error()})
			continue
		}
		items = append(items, dayItem{day: day, title: solver.Info().Label(), desc: a.describeDay(day)})
	}
	return items
}

func (a *App) describeDay(day int) string {
	st, ok := a.days[day]
	if !ok {
		return "not run yet"
	}
	if st.running {
		return "running..."
	}
	if st.runErr != nil {
		return "error"
	}
	var parts []string
	for i, res := range st.results {
		parts = append(parts, fmt.Sprintf("%s=%d %s", strings.ReplaceAll(res.Part.String(), "part ", "p"), res.Value, st.verdicts[i]))
	}
	if st.review != nil {
		parts = append(parts, fmt.Sprintf("%d findings", len(st.review.Findings)))
	}
	return strings.Join(parts, " · ")
}

func (a *App) refreshItems() {
	idx := a.dayMenu.Index()
	a.dayMenu.SetItems(a.buildDayItems())
	a.dayMenu.Select(idx)
}

func (a *App) state(day int) *dayState {
	st, ok := a.days[day]
	if !ok {
		st = &dayState{}
		a.days[day] = st
	}
	return st
}

func (a *App) selectedDay() (int, bool) {
	item, ok := a.dayMenu.SelectedItem().(dayItem)
	if !ok {
		return 0, false
	}
	return item.day, true
}

func (a *App) selectDay(day int) bool {
	for i, item := range a.dayMenu.Items() {
		if d, ok := item.(dayItem); ok && d.day == day {
			a.dayMenu.Select(i)
			return true
		}
	}
	return false
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dayMenu.SetSize(max(0, msg.Width/2-4), max(0, msg.Height-journalLines-8))
		return a, nil

	case runFinishedMsg:
		a.handleRunFinished(msg)
		return a, nil

	case reviewFinishedMsg:
		a.handleReviewFinished(msg)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "enter":
			day, ok := a.selectedDay()
			if !ok {
				return a, nil
			}
			return a, a.startRun(day)
		case "r":
			day, ok := a.selectedDay()
			if !ok {
				return a, nil
			}
			return a, a.startReview(day)
		}
	}

	var cmd tea.Cmd
	a.dayMenu, cmd = a.dayMenu.Update(msg)
	return a, cmd
}

func (a *App) startRun(day int) tea.Cmd {
	st := a.state(day)
	if st.running {
		return nil
	}
	st.running = true
	a.statusMsg = fmt.Sprintf("Solving day %d...", day)
	a.refreshItems()
	reg := a.registry
	dir := a.config.InputsDir()
	return func() tea.Msg {
		solver, err := reg.Resolve(day)
		if err != nil {
			return runFinishedMsg{day: day, err: err}
		}
		text, err := input.Load(dir, day)
		if err != nil {
			return runFinishedMsg{day: day, err: err}
		}
		return runFinishedMsg{day: day, results: puzzle.RunAll(solver, 0, text)}
	}
}

func (a *App) handleRunFinished(msg runFinishedMsg) {
	st := a.state(msg.day)
	st.running = false
	st.runErr = msg.err
	st.results = nil
	st.verdicts = nil
	if msg.err != nil {
		a.statusMsg = fmt.Sprintf("Day %d failed: %v", msg.day, msg.err)
		a.logbook.Error("day %d: %v", msg.day, msg.err)
		a.logger.Printf("tui: day %d: %v", msg.day, msg.err)
		a.refreshItems()
		return
	}
	manifest, err := answers.Load(a.config.AnswersPath())
	if err != nil {
		a.logger.Printf("tui: %v", err)
		manifest = &answers.Manifest{}
	}
	st.results = msg.results
	for _, res := range msg.results {
		verdict := manifest.Check(res)
		st.verdicts = append(st.verdicts, verdict)
		a.logbook.RecordRun(res, verdict)
	}
	a.statusMsg = fmt.Sprintf("Solved day %d", msg.day)
	a.refreshItems()
}

func (a *App) startReview(day int) tea.Cmd {
	agent, err := review.NewAgent(review.OptionsFromConfig(a.config),
		review.WithJournal(a.logbook),
		review.WithLogger(a.logger),
	)
	if err != nil {
		a.statusMsg = err.Error()
		return nil
	}
	a.statusMsg = fmt.Sprintf("Reviewing day %d...", day)
	return func() tea.Msg {
		rep, err := agent.ReviewDay(day, false)
		return reviewFinishedMsg{day: day, report: rep, err: err}
	}
}

func (a *App) handleReviewFinished(msg reviewFinishedMsg) {
	st := a.state(msg.day)
	st.revErr = msg.err
	if msg.err != nil {
		st.review = nil
		a.statusMsg = fmt.Sprintf("Review of day %d failed: %v", msg.day, msg.err)
		a.refreshItems()
		return
	}
	rep := msg.report
	st.review = &rep
	a.statusMsg = fmt.Sprintf("Day %d review: %d findings in %s", msg.day, len(rep.Findings), filepath.Base(rep.Path))
	a.refreshItems()
}

// View renders the whole screen.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	leftWidth := max(30, width/2-2)
	rightWidth := max(30, width-leftWidth-6)

	left := boxStyle.Width(leftWidth).Render(a.dayMenu.View())
	right := boxStyle.Width(rightWidth).Render(a.renderDetail())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	sections := []string{titleStyle.Render("⬡ ADVENT"), body}
	if a.statusMsg != "" {
		sections = append(sections, mutedStyle.Render(a.statusMsg))
	}
	if panel := a.renderLogPanel(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, mutedStyle.Render("enter: solve · r: review · q: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderDetail() string {
	day, ok := a.selectedDay()
	if !ok {
		return mutedStyle.Render("No days registered.")
	}
	lines := []string{headStyle.Render(fmt.Sprintf("DAY %02d", day))}
	st, ok := a.days[day]
	if !ok {
		lines = append(lines, mutedStyle.Render("Press enter to solve."))
		return strings.Join(lines, "\n")
	}
	switch {
	case st.running:
		lines = append(lines, mutedStyle.Render("Solving..."))
	case st.runErr != nil:
		lines = append(lines, badStyle.Render(st.runErr.Error()))
	default:
		for i, res := range st.results {
			lines = append(lines, renderResult(res, st.verdicts[i]))
		}
	}
	if st.review != nil {
		lines = append(lines, "", headStyle.Render("REVIEW"))
		if len(st.review.Findings) == 0 {
			lines = append(lines, okStyle.Render("No findings."))
		}
		for _, f := range st.review.Findings {
			lines = append(lines, fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Rule))
		}
	} else if st.revErr != nil {
		lines = append(lines, "", badStyle.Render(st.revErr.Error()))
	}
	return strings.Join(lines, "\n")
}

func renderResult(res puzzle.Result, verdict answers.Verdict) string {
	if !res.OK() {
		return badStyle.Render(fmt.Sprintf("%s: %v", res.Part, res.Err))
	}
	line := fmt.Sprintf("%s: %d  %s", res.Part, res.Value, mutedStyle.Render(humanizeDuration(res.Elapsed)))
	switch verdict {
	case answers.VerdictMatch:
		return line + " " + okStyle.Render("✓")
	case answers.VerdictMismatch:
		return line + " " + badStyle.Render("✗ mismatch")
	}
	return line
}

func (a *App) renderLogPanel() string {
	lines, total := a.logbook.Tail(journalLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := headStyle.Render(fmt.Sprintf("LOG · %s (%d entries)", fileName, total))
	body := mutedStyle.Render(strings.Join(lines, "\n"))
	return boxStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	return d.Round(10 * time.Millisecond).String()
}
