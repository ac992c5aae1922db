package review

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var dayDirPattern = regexp.MustCompile(`^day(\d{2})$`)

// Target is one day's solution package.
type Target struct {
	Day   int
	Dir   string
	Files []string
}

// Discover walks root for dayNN directories and collects their non-test Go
// sources. Directories without sources are skipped.
func Discover(root string) ([]Target, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("review: read %s: %w", root, err)
	}
	var targets []Target
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		day, ok := dayFromDir(entry.Name())
		if !ok {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		files, err := sourceFiles(dir)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		targets = append(targets, Target{Day: day, Dir: dir, Files: files})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Day < targets[j].Day })
	return targets, nil
}

// DiscoverDay returns the target for a single day.
func DiscoverDay(root string, day int) (Target, error) {
	targets, err := Discover(root)
	if err != nil {
		return Target{}, err
	}
	for _, t := range targets {
		if t.Day == day {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("review: no sources for day %d under %s", day, root)
}

func dayFromDir(name string) (int, bool) {
	m := dayDirPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 {
		return 0, false
	}
	return day, true
}

func isSourceFile(name string) bool {
	return filepath.Ext(name) == ".go" && !strings.HasSuffix(name, "_test.go")
}

func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("review: read %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isSourceFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
