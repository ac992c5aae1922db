package puzzle

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a solver.
type Factory func() (Solver, error)

// Registry maintains known solver factories keyed by day.
type Registry struct {
	mu        sync.RWMutex
	factories map[int]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[int]Factory{}}
}

// Register installs a solver factory. Returns an error if the day already exists.
func (r *Registry) Register(day int, factory Factory) error {
	if day < 1 || day > MaxDay {
		return fmt.Errorf("puzzle: day must be within 1..%d, got %d", MaxDay, day)
	}
	if factory == nil {
		return fmt.Errorf("puzzle: factory is required for day %d", day)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[day]; exists {
		return fmt.Errorf("puzzle: day %d already registered", day)
	}
	r.factories[day] = factory
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(day int, factory Factory) {
	if err := r.Register(day, factory); err != nil {
		panic(err)
	}
}

// Resolve constructs the solver for day.
func (r *Registry) Resolve(day int) (Solver, error) {
	r.mu.RLock()
	factory, ok := r.factories[day]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("puzzle: no solver registered for day %d", day)
	}
	solver, err := factory()
	if err != nil {
		return nil, err
	}
	info := solver.Info()
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if info.Day != day {
		return nil, fmt.Errorf("puzzle: solver registered for day %d reports day %d", day, info.Day)
	}
	return solver, nil
}

// Days returns the registered days in ascending order.
func (r *Registry) Days() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	days := make([]int, 0, len(r.factories))
	for day := range r.factories {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Latest returns the highest registered day, or false when the registry is empty.
func (r *Registry) Latest() (int, bool) {
	days := r.Days()
	if len(days) == 0 {
		return 0, false
	}
	return days[len(days)-1], true
}
