// cmd/advent/main.go
//
// This is the entry point for the interactive advent board.
// When you run `advent` from a checkout, this is what executes.
//
// Flow:
// 1. Make sure the .advent folder exists in the working directory
// 2. Open the diagnostic log
// 3. Launch the TUI and block until the user quits

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/advent/internal/config"
	"github.com/kingrea/advent/internal/logging"
	"github.com/kingrea/advent/internal/tui"
)

func main() {
	// The working directory is the project we solve in
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitAdventDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .advent directory: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	app, err := tui.NewApp(cwd, tui.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project: %v\n", err)
		os.Exit(1)
	}

	// Run blocks until the user quits
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Printf("tui: %v", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
