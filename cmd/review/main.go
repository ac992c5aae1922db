package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kingrea/advent/internal/config"
	"github.com/kingrea/advent/internal/logbook"
	"github.com/kingrea/advent/internal/logging"
	"github.com/kingrea/advent/internal/review"
)

func main() {
	day := flag.Int("day", 0, "day to review (0 reviews every discovered day)")
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	force := flag.Bool("force", false, "rewrite feedback even when sources are unchanged")
	watch := flag.Bool("watch", false, "keep running and re-review days as their sources change")
	listRules := flag.Bool("rules", false, "list the review rules and exit")
	flag.Parse()

	if *listRules {
		for _, rule := range review.Rules() {
			fmt.Printf("%-16s %-5s %s\n", rule.ID, rule.Severity, rule.Summary)
		}
		return
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
	agent, err := review.NewAgent(review.OptionsFromConfig(cfg),
		review.WithJournal(journal),
		review.WithLogger(logger),
	)
	if err != nil {
		die("%v", err)
	}

	var reports []review.Report
	if *day != 0 {
		rep, err := agent.ReviewDay(*day, *force)
		if err != nil {
			die("%v", err)
		}
		reports = append(reports, rep)
	} else {
		reports, err = agent.ReviewAll(*force)
		if err != nil {
			die("%v", err)
		}
	}
	for _, rep := range reports {
		printReport(rep)
	}
	if !*watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Printf("Watching %s for changes (ctrl+c to stop)...\n", cfg.SolutionsDir())
	err = agent.Watch(ctx, func(rep review.Report, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "review: %v\n", err)
			return
		}
		printReport(rep)
	})
	if err != nil {
		die("%v", err)
	}
}

func printReport(rep review.Report) {
	status := "unchanged"
	if rep.Written {
		status = "written"
	}
	fmt.Printf("Day %02d: %d findings, %s %s\n", rep.Day, len(rep.Findings), status, rep.Path)
	for _, f := range rep.Findings {
		fmt.Printf("  %s:%d %s (%s)\n", f.File, f.Line, f.Message, f.Rule)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
