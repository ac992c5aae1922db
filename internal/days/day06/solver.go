// Package day06 evaluates a cephalopod math worksheet laid out in columns.
package day06

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kingrea/advent/internal/input"
	"github.com/kingrea/advent/internal/puzzle"
)

const (
	Day     = 6
	title   = "Trash Compactor"
	version = "1.0.0"
)

// Solver implements puzzle.Solver for day 6.
type Solver struct {
	puzzle.Base
}

// New returns the day 6 solver.
func New() *Solver {
	return &Solver{Base: puzzle.NewBase(puzzle.Info{Day: Day, Title: title, Version: version})}
}

// Register installs the solver factory.
func Register(reg *puzzle.Registry) {
	reg.MustRegister(Day, func() (puzzle.Solver, error) {
		return New(), nil
	})
}

// problem is one column block of the worksheet: its number rows cut to the
// block's width and the operator found beneath them.
type problem struct {
	rows []string
	op   byte
}

func parse(text string) ([]problem, error) {
	lines := input.Lines(text)
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("day06: worksheet needs number rows and an operator row")
	}
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	for i, line := range lines {
		lines[i] = line + strings.Repeat(" ", width-len(line))
	}
	numbers, ops := lines[:len(lines)-1], lines[len(lines)-1]

	var problems []problem
	start := -1
	for col := 0; col <= width; col++ {
		if col < width && !blankColumn(lines, col) {
			if start < 0 {
				start = col
			}
			continue
		}
		if start < 0 {
			continue
		}
		p, err := cut(numbers, ops, start, col)
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
		start = -1
	}
	return problems, nil
}

func blankColumn(lines []string, col int) bool {
	for _, line := range lines {
		if line[col] != ' ' {
			return false
		}
	}
	return true
}

func cut(numbers []string, ops string, from, to int) (problem, error) {
	op := strings.TrimSpace(ops[from:to])
	if op != "+" && op != "*" {
		return problem{}, fmt.Errorf("day06: columns %d-%d: unknown operator %q", from, to-1, op)
	}
	p := problem{op: op[0]}
	for _, line := range numbers {
		p.rows = append(p.rows, line[from:to])
	}
	return p, nil
}

// rowOperands reads each number row left to right.
func (p problem) rowOperands() ([]int64, error) {
	var out []int64
	for _, row := range p.rows {
		field := strings.TrimSpace(row)
		if field == "" {
			continue
		}
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("day06: operand %q: %w", field, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// columnOperands reads each character column top to bottom, rightmost first.
func (p problem) columnOperands() ([]int64, error) {
	var out []int64
	width := len(p.rows[0])
	for col := width - 1; col >= 0; col-- {
		var digits strings.Builder
		for _, row := range p.rows {
			if row[col] != ' ' {
				digits.WriteByte(row[col])
			}
		}
		if digits.Len() == 0 {
			continue
		}
		n, err := strconv.ParseInt(digits.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("day06: operand %q: %w", digits.String(), err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (p problem) apply(operands []int64) int64 {
	if p.op == '+' {
		var sum int64
		for _, n := range operands {
			sum += n
		}
		return sum
	}
	product := int64(1)
	for _, n := range operands {
		product *= n
	}
	return product
}

func grandTotal(text string, operands func(problem) ([]int64, error)) (int64, error) {
	problems, err := parse(text)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, p := range problems {
		ns, err := operands(p)
		if err != nil {
			return 0, err
		}
		total += p.apply(ns)
	}
	return total, nil
}

// Part1 reads operands row by row.
func (s *Solver) Part1(text string) (int64, error) {
	return grandTotal(text, problem.rowOperands)
}

// Part2 reads operands column by column, right to left.
func (s *Solver) Part2(text string) (int64, error) {
	return grandTotal(text, problem.columnOperands)
}
