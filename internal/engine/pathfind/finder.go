// Package pathfind computes shortest king-move paths on the battlefield grid
package pathfind

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Algorithm selects the search strategy. Both return paths of the same
// length; each is deterministic on its own.
type Algorithm string

const (
	// AlgorithmBFS expands a single frontier from the start
	AlgorithmBFS Algorithm = "bfs"
	// AlgorithmBidirectional alternates layers from the start and the goal
	AlgorithmBidirectional Algorithm = "bidirectional"
)

// Unreachable describes a query that produced no path
type Unreachable struct {
	FromID string
	ToID   string
	From   grid.Cell
	To     grid.Cell
}

// Notifier receives unreachable-path notifications
type Notifier interface {
	PathUnreachable(u Unreachable)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(u Unreachable)

// PathUnreachable calls f(u)
func (f NotifierFunc) PathUnreachable(u Unreachable) {
	f(u)
}

// Occupant is anything standing on the grid that may block movement
type Occupant interface {
	GetID() string
	IsAlive() bool
	Position() grid.Cell
}

// Config holds the dependencies for a Finder
type Config struct {
	Grid      grid.Grid
	Notifier  Notifier
	Algorithm Algorithm
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("grid.width", c.Grid.Width, 1, grid.MaxSide, vb)
	errors.ValidateRange("grid.height", c.Grid.Height, 1, grid.MaxSide, vb)
	if c.Algorithm != "" {
		errors.ValidateEnum("algorithm", string(c.Algorithm),
			[]string{string(AlgorithmBFS), string(AlgorithmBidirectional)}, vb)
	}
	return vb.Build()
}

// Finder answers path queries. It keeps no state between calls, so one
// Finder may serve many battles as long as the Notifier is safe to share.
type Finder struct {
	grid      grid.Grid
	notifier  Notifier
	algorithm Algorithm
}

// NewFinder creates a Finder
func NewFinder(cfg *Config) (*Finder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmBFS
	}

	return &Finder{
		grid:      cfg.Grid,
		notifier:  cfg.Notifier,
		algorithm: algorithm,
	}, nil
}

// Grid returns the grid the finder searches
func (f *Finder) Grid() grid.Grid {
	return f.grid
}

// FindPath returns the shortest path from start to goal, both included.
// Cells in blocked are impassable except start and goal. An empty result
// means out-of-bounds endpoints or no path; the latter is also reported to
// the Notifier.
func (f *Finder) FindPath(start, goal grid.Cell, blocked []grid.Cell) []grid.Cell {
	return f.find(start, goal, f.maskFromCells(blocked), "", "")
}

// FindTargetPath finds a path between two occupants. Living occupants other
// than the attacker and target block movement.
func (f *Finder) FindTargetPath(attacker, target Occupant, occupants []Occupant) []grid.Cell {
	if attacker == nil || target == nil {
		return nil
	}

	mask := make([]bool, f.grid.Cells())
	for _, o := range occupants {
		if o == nil || !o.IsAlive() || o == attacker || o == target {
			continue
		}
		if pos := o.Position(); f.grid.InBounds(pos) {
			mask[f.grid.Index(pos)] = true
		}
	}

	return f.find(attacker.Position(), target.Position(), mask, attacker.GetID(), target.GetID())
}

func (f *Finder) find(start, goal grid.Cell, blocked []bool, fromID, toID string) []grid.Cell {
	if !f.grid.InBounds(start) || !f.grid.InBounds(goal) {
		return nil
	}
	if start == goal {
		return []grid.Cell{start}
	}

	s := &search{
		grid:    f.grid,
		blocked: blocked,
		start:   start,
		goal:    goal,
	}

	var path []grid.Cell
	switch f.algorithm {
	case AlgorithmBidirectional:
		path = s.bidirectional()
	default:
		path = s.bfs()
	}

	if len(path) == 0 {
		f.notify(Unreachable{FromID: fromID, ToID: toID, From: start, To: goal})
		return nil
	}
	return path
}

func (f *Finder) maskFromCells(cells []grid.Cell) []bool {
	mask := make([]bool, f.grid.Cells())
	for _, c := range cells {
		if f.grid.InBounds(c) {
			mask[f.grid.Index(c)] = true
		}
	}
	return mask
}

func (f *Finder) notify(u Unreachable) {
	if f.notifier != nil {
		f.notifier.PathUnreachable(u)
	}
}
