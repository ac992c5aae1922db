package days

import (
	"github.com/kingrea/advent/internal/days/day01"
	"github.com/kingrea/advent/internal/days/day02"
	"github.com/kingrea/advent/internal/days/day03"
	"github.com/kingrea/advent/internal/days/day04"
	"github.com/kingrea/advent/internal/days/day05"
	"github.com/kingrea/advent/internal/days/day06"
	"github.com/kingrea/advent/internal/days/day07"
	"github.com/kingrea/advent/internal/puzzle"
)

// RegisterBuiltins installs every solved day into the provided registry.
func RegisterBuiltins(reg *puzzle.Registry) {
	if reg == nil {
		return
	}
	day01.Register(reg)
	day02.Register(reg)
	day03.Register(reg)
	day04.Register(reg)
	day05.Register(reg)
	day06.Register(reg)
	day07.Register(reg)
}

// NewRegistry returns a registry preloaded with the built-in days.
func NewRegistry() *puzzle.Registry {
	reg := puzzle.NewRegistry()
	RegisterBuiltins(reg)
	return reg
}
