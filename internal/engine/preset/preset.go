// Package preset builds armies from unit templates under a point budget.
//
// Templates are ranked by attack per point, then health per point, and the
// best affordable template is bought until the budget, the per-type cap or
// the formation runs out. Units are placed in a narrow strip (three columns
// by default) starting at x=0; PlaceOffset moves the strip.
package preset

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/entities/army"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
)

const (
	// DefaultMaxPerType caps how many units of one type an army may hold
	DefaultMaxPerType = 11
	// DefaultWidth is the number of formation columns
	DefaultWidth = 3

	randomAttempts   = 300
	avoidFirstRowFor = 120
)

// Config configures a Generator
type Config struct {
	MaxPerType int
	Width      int
	Height     int
	// IDGen names the generated units; defaults to UUIDs
	IDGen idgen.Generator
}

// Validate validates the config
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMin("max_per_type", c.MaxPerType, 1, vb)
	errors.ValidateMin("width", c.Width, 1, vb)
	errors.ValidateMin("height", c.Height, 1, vb)
	return vb.Build()
}

// DefaultConfig is the standard 3x21 strip with 11 units per type
func DefaultConfig() *Config {
	return &Config{
		MaxPerType: DefaultMaxPerType,
		Width:      DefaultWidth,
		Height:     grid.DefaultHeight,
	}
}

// Generator builds armies
type Generator struct {
	maxPerType int
	width      int
	height     int
	idGen      idgen.Generator
}

// NewGenerator creates a generator from the config
func NewGenerator(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	g := &Generator{
		maxPerType: cfg.MaxPerType,
		width:      cfg.Width,
		height:     cfg.Height,
		idGen:      cfg.IDGen,
	}
	if g.idGen == nil {
		g.idGen = idgen.NewUUID("unit")
	}
	return g, nil
}

type candidate struct {
	template army.Template
	seq      int
}

// Generate spends at most maxPoints on units. Templates with a non-positive
// cost are ignored. Units are named "<type> <n>" with n counting per type.
// The same rng state always yields the same army.
func (g *Generator) Generate(name string, templates []army.Template, maxPoints int, rng *rand.Rand) *army.Army {
	out := army.New(name)
	if maxPoints <= 0 {
		return out
	}

	candidates := make([]candidate, 0, len(templates))
	for i, t := range templates {
		if t.Cost <= 0 || t.Cost > maxPoints {
			continue
		}
		candidates = append(candidates, candidate{template: t, seq: i})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return better(candidates[i], candidates[j])
	})

	var (
		used     int
		counts   = make(map[string]int)
		occupied = make([]bool, g.width*g.height)
		firstRow = -1
		capacity = g.width * g.height
	)

	for len(out.Units()) < capacity {
		best, ok := g.pick(candidates, counts, maxPoints-used)
		if !ok {
			break
		}

		cell, ok := g.freeCell(occupied, rng, firstRow)
		if !ok {
			break
		}
		occupied[cell.Y*g.width+cell.X] = true
		if firstRow < 0 {
			firstRow = cell.Y
		}

		counts[best.Type]++
		unitName := fmt.Sprintf("%s %d", best.Type, counts[best.Type])
		out.Add(best.NewUnit(g.idGen.Generate(), unitName, cell.X, cell.Y))
		used += best.Cost
	}

	out.SetPoints(used)

	slog.Debug("Preset generated",
		"army", name,
		"units", len(out.Units()),
		"points", used,
		"budget", maxPoints)

	return out
}

// pick returns the best template that is affordable and under its type cap
func (g *Generator) pick(candidates []candidate, counts map[string]int, remaining int) (army.Template, bool) {
	for _, c := range candidates {
		if c.template.Cost > remaining || counts[c.template.Type] >= g.maxPerType {
			continue
		}
		return c.template, true
	}
	return army.Template{}, false
}

// freeCell samples random cells first, keeping away from the first unit's
// row for a while so the formation spreads out, then scans in order.
func (g *Generator) freeCell(occupied []bool, rng *rand.Rand, firstRow int) (grid.Cell, bool) {
	for attempt := 0; attempt < randomAttempts; attempt++ {
		c := grid.Cell{X: rng.Intn(g.width), Y: rng.Intn(g.height)}
		if firstRow >= 0 && attempt < avoidFirstRowFor && c.Y == firstRow {
			continue
		}
		if !occupied[c.Y*g.width+c.X] {
			return c, true
		}
	}

	for _, skipFirst := range []bool{true, false} {
		for x := 0; x < g.width; x++ {
			for y := 0; y < g.height; y++ {
				if skipFirst && y == firstRow {
					continue
				}
				if !occupied[y*g.width+x] {
					return grid.Cell{X: x, Y: y}, true
				}
			}
		}
	}
	return grid.Cell{}, false
}

// better orders templates by attack per cost, health per cost, attack,
// health, then cheaper, then type name, then input order. Ratios are
// compared by cross multiplication.
func better(a, b candidate) bool {
	ta, tb := a.template, b.template

	if l, r := int64(ta.BaseAttack)*int64(tb.Cost), int64(tb.BaseAttack)*int64(ta.Cost); l != r {
		return l > r
	}
	if l, r := int64(ta.Health)*int64(tb.Cost), int64(tb.Health)*int64(ta.Cost); l != r {
		return l > r
	}
	if ta.BaseAttack != tb.BaseAttack {
		return ta.BaseAttack > tb.BaseAttack
	}
	if ta.Health != tb.Health {
		return ta.Health > tb.Health
	}
	if ta.Cost != tb.Cost {
		return ta.Cost < tb.Cost
	}
	if ta.Type != tb.Type {
		return ta.Type < tb.Type
	}
	return a.seq < b.seq
}

// PlaceOffset shifts every unit of the army dx columns to the right
func PlaceOffset(a *army.Army, dx int) {
	for _, u := range a.Units() {
		if u != nil {
			u.X += dx
		}
	}
}
