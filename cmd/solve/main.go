package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/advent/internal/answers"
	"github.com/kingrea/advent/internal/config"
	"github.com/kingrea/advent/internal/days"
	"github.com/kingrea/advent/internal/input"
	"github.com/kingrea/advent/internal/logbook"
	"github.com/kingrea/advent/internal/logging"
	"github.com/kingrea/advent/internal/puzzle"
)

func main() {
	day := flag.Int("day", 0, "day to solve (defaults to the latest registered day)")
	part := flag.Int("part", 0, "part to solve (1 or 2, 0 runs both)")
	inputPath := flag.String("input", "", "path to the puzzle input (defaults to <inputs_dir>/dayNN.txt)")
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	check := flag.Bool("check", false, "compare results with the answers manifest")
	record := flag.Bool("record", false, "write results into the answers manifest")
	flag.Parse()

	if *part != 0 && !puzzle.Part(*part).Valid() {
		die("--part must be 0, 1 or 2")
	}
	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitAdventDir(absoluteProject); err != nil {
		die("init .advent: %v", err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		die("load config: %v", err)
	}
	logger, err := logging.New(absoluteProject)
	if err != nil {
		die("open log: %v", err)
	}
	defer logger.Close()
	journal, err := logbook.New(cfg.JournalPath())
	if err != nil {
		die("open journal: %v", err)
	}

	reg := days.NewRegistry()
	if *day == 0 {
		latest, ok := reg.Latest()
		if !ok {
			die("no days registered")
		}
		*day = latest
	}
	solver, err := reg.Resolve(*day)
	if err != nil {
		die("resolve day: %v", err)
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		path = input.Path(cfg.InputsDir(), *day)
	}
	text, err := input.LoadFile(path)
	if err != nil {
		die("%v", err)
	}
	logger.Printf("solve: %s from %s", solver.Info().Label(), path)

	manifest, err := answers.Load(cfg.AnswersPath())
	if err != nil {
		die("%v", err)
	}
	failed := false
	fmt.Println(solver.Info().Label())
	for _, res := range puzzle.RunAll(solver, puzzle.Part(*part), text) {
		var verdict answers.Verdict
		if *check {
			verdict = manifest.Check(res)
		}
		journal.RecordRun(res, verdict)
		line := res.String()
		if !res.OK() {
			failed = true
			logger.Printf("solve: %s", line)
			fmt.Fprintln(os.Stderr, line)
			continue
		}
		switch verdict {
		case "":
		case answers.VerdictMismatch:
			want, _ := manifest.Expected(res.Day, res.Part)
			line = fmt.Sprintf("%s [mismatch, want %d]", line, want)
			failed = true
		default:
			line = fmt.Sprintf("%s [%s]", line, verdict)
		}
		if *record {
			if err := manifest.Set(res.Day, res.Part, res.Value); err != nil {
				die("%v", err)
			}
		}
		fmt.Println(line)
	}
	if *record {
		if err := manifest.Save(cfg.AnswersPath()); err != nil {
			die("%v", err)
		}
		fmt.Printf("Recorded answers in %s\n", cfg.AnswersPath())
	}
	if failed {
		os.Exit(1)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
