// internal/config/config.go
//
// This package handles configuration and the .advent directory structure.
// Every checkout that runs the solvers gets a .advent/ folder in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AdventDir is the name of the directory we create in each project
	AdventDir = ".advent"

	// InputsEnv overrides the configured inputs directory when set.
	InputsEnv = "ADVENT_INPUTS"

	defaultYear             = 2025
	defaultInputsDir        = "inputs"
	defaultAnswersFile      = "answers.yaml"
	defaultSolutionsDir     = "internal/days"
	defaultFeedbackDir      = "feedback"
	defaultMaxFunctionLines = 60
	defaultMaxNesting       = 4
	firstEventYear          = 2015
)

const defaultProjectConfigYAML = `# advent project configuration
version: 1
year: 2025

# Puzzle inputs live in <inputs_dir>/dayNN.txt. They are personal, keep them
# out of version control. ADVENT_INPUTS overrides this path.
inputs_dir: inputs

# Expected answers, checked by 'solve -check' and recorded by 'solve -record'.
answers_file: answers.yaml

review:
  solutions_dir: internal/days
  feedback_dir: feedback
  max_function_lines: 60
  max_nesting: 4
  # disabled_rules:
  #   - doc-exported
`

// ReviewConfig tunes the style review agent.
type ReviewConfig struct {
	SolutionsDir     string   `yaml:"solutions_dir"`
	FeedbackDir      string   `yaml:"feedback_dir"`
	MaxFunctionLines int      `yaml:"max_function_lines"`
	MaxNesting       int      `yaml:"max_nesting"`
	DisabledRules    []string `yaml:"disabled_rules,omitempty"`
}

// ProjectConfig models .advent/config.yaml.
type ProjectConfig struct {
	Version     int          `yaml:"version"`
	Year        int          `yaml:"year"`
	InputsDir   string       `yaml:"inputs_dir"`
	AnswersFile string       `yaml:"answers_file"`
	Review      ReviewConfig `yaml:"review"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the tools were started from
	ProjectDir string

	// AdventProjectDir is ProjectDir/.advent
	AdventProjectDir string

	Project ProjectConfig

	inputsOverride string
}

// InitAdventDir creates the .advent directory structure in the given project
// directory and writes a default config.yaml when none exists.
//
// Structure created:
// .advent/
// ├── config.yaml
// └── logs/       <- diagnostic log and run journal
func InitAdventDir(projectDir string) error {
	adventDir := filepath.Join(projectDir, AdventDir)
	if err := os.MkdirAll(filepath.Join(adventDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(adventDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		AdventProjectDir: filepath.Join(projectDir, AdventDir),
		Project:          defaultProjectConfig(),
		inputsOverride:   strings.TrimSpace(os.Getenv(InputsEnv)),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.AdventProjectDir, "config.yaml")
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.AdventProjectDir, "logs")
}

// JournalPath returns the run journal location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "runs.log")
}

// InputsDir returns where dayNN.txt inputs are read from.
func (c *Config) InputsDir() string {
	if c.inputsOverride != "" {
		return resolvePath(c.ProjectDir, c.inputsOverride)
	}
	return resolvePath(c.ProjectDir, c.Project.InputsDir)
}

// AnswersPath returns the expected answers manifest location.
func (c *Config) AnswersPath() string {
	return resolvePath(c.ProjectDir, c.Project.AnswersFile)
}

// SolutionsDir returns the directory holding dayNN solution packages.
func (c *Config) SolutionsDir() string {
	return resolvePath(c.ProjectDir, c.Project.Review.SolutionsDir)
}

// FeedbackDir returns where review feedback documents are written.
func (c *Config) FeedbackDir() string {
	return resolvePath(c.ProjectDir, c.Project.Review.FeedbackDir)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:     1,
		Year:        defaultYear,
		InputsDir:   defaultInputsDir,
		AnswersFile: defaultAnswersFile,
		Review: ReviewConfig{
			SolutionsDir:     defaultSolutionsDir,
			FeedbackDir:      defaultFeedbackDir,
			MaxFunctionLines: defaultMaxFunctionLines,
			MaxNesting:       defaultMaxNesting,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Year == 0 {
		pc.Year = defaultYear
	}
	if strings.TrimSpace(pc.InputsDir) == "" {
		pc.InputsDir = defaultInputsDir
	}
	if strings.TrimSpace(pc.AnswersFile) == "" {
		pc.AnswersFile = defaultAnswersFile
	}
	if strings.TrimSpace(pc.Review.SolutionsDir) == "" {
		pc.Review.SolutionsDir = defaultSolutionsDir
	}
	if strings.TrimSpace(pc.Review.FeedbackDir) == "" {
		pc.Review.FeedbackDir = defaultFeedbackDir
	}
	if pc.Review.MaxFunctionLines == 0 {
		pc.Review.MaxFunctionLines = defaultMaxFunctionLines
	}
	if pc.Review.MaxNesting == 0 {
		pc.Review.MaxNesting = defaultMaxNesting
	}
}

func (pc *ProjectConfig) normalize() {
	pc.InputsDir = strings.TrimSpace(pc.InputsDir)
	pc.AnswersFile = strings.TrimSpace(pc.AnswersFile)
	pc.Review.SolutionsDir = strings.TrimSpace(pc.Review.SolutionsDir)
	pc.Review.FeedbackDir = strings.TrimSpace(pc.Review.FeedbackDir)
	rules := pc.Review.DisabledRules[:0]
	for _, rule := range pc.Review.DisabledRules {
		if rule = strings.ToLower(strings.TrimSpace(rule)); rule != "" {
			rules = append(rules, rule)
		}
	}
	pc.Review.DisabledRules = rules
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Year < firstEventYear {
		return fmt.Errorf("year must be >= %d", firstEventYear)
	}
	if pc.Review.MaxFunctionLines < 0 {
		return fmt.Errorf("review.max_function_lines must be > 0")
	}
	if pc.Review.MaxNesting < 0 {
		return fmt.Errorf("review.max_nesting must be > 0")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
