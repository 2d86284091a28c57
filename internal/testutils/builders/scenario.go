// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
	"github.com/KirkDiggler/rpg-battle/internal/entities/army"
)

// ScenarioBuilder provides a fluent interface for building test scenarios
type ScenarioBuilder struct {
	scenario *config.Scenario
}

// NewScenarioBuilder starts from the stock templates, an empty field and
// no units on either side
func NewScenarioBuilder() *ScenarioBuilder {
	return &ScenarioBuilder{
		scenario: &config.Scenario{
			Name:      "test",
			Seed:      1,
			Templates: config.DefaultTemplates(),
		},
	}
}

// WithName sets the scenario name
func (b *ScenarioBuilder) WithName(name string) *ScenarioBuilder {
	b.scenario.Name = name
	return b
}

// WithSeed sets the seed
func (b *ScenarioBuilder) WithSeed(seed int64) *ScenarioBuilder {
	b.scenario.Seed = seed
	return b
}

// WithGrid sets the field size
func (b *ScenarioBuilder) WithGrid(width, height int) *ScenarioBuilder {
	b.scenario.Grid = config.GridSize{Width: width, Height: height}
	return b
}

// WithStalemate sets the stalemate rule
func (b *ScenarioBuilder) WithStalemate(rule battle.StalemateRule) *ScenarioBuilder {
	b.scenario.Stalemate = rule
	return b
}

// WithAlgorithm sets the path search algorithm
func (b *ScenarioBuilder) WithAlgorithm(alg pathfind.Algorithm) *ScenarioBuilder {
	b.scenario.Algorithm = alg
	return b
}

// WithPacing sets the per-turn delay
func (b *ScenarioBuilder) WithPacing(d time.Duration) *ScenarioBuilder {
	b.scenario.Pacing = d
	return b
}

// WithTemplate adds or replaces a unit template
func (b *ScenarioBuilder) WithTemplate(t army.Template) *ScenarioBuilder {
	for i := range b.scenario.Templates {
		if b.scenario.Templates[i].Type == t.Type {
			b.scenario.Templates[i] = t
			return b
		}
	}
	b.scenario.Templates = append(b.scenario.Templates, t)
	return b
}

// WithFirstBudget makes the first side a preset army
func (b *ScenarioBuilder) WithFirstBudget(name string, budget int) *ScenarioBuilder {
	b.scenario.First.Name = name
	b.scenario.First.Budget = budget
	return b
}

// WithSecondBudget makes the second side a preset army
func (b *ScenarioBuilder) WithSecondBudget(name string, budget int) *ScenarioBuilder {
	b.scenario.Second.Name = name
	b.scenario.Second.Budget = budget
	return b
}

// WithFirstUnit places a unit on the first side
func (b *ScenarioBuilder) WithFirstUnit(unitType string, x, y int) *ScenarioBuilder {
	b.scenario.First.Units = append(b.scenario.First.Units, config.Placement{Type: unitType, X: x, Y: y})
	return b
}

// WithSecondUnit places a unit on the second side
func (b *ScenarioBuilder) WithSecondUnit(unitType string, x, y int) *ScenarioBuilder {
	b.scenario.Second.Units = append(b.scenario.Second.Units, config.Placement{Type: unitType, X: x, Y: y})
	return b
}

// Build fills defaults and returns the scenario. It does not validate, so
// tests can build invalid scenarios on purpose.
func (b *ScenarioBuilder) Build() *config.Scenario {
	s := *b.scenario
	s.Templates = append([]army.Template(nil), b.scenario.Templates...)
	s.First.Units = append([]config.Placement(nil), b.scenario.First.Units...)
	s.Second.Units = append([]config.Placement(nil), b.scenario.Second.Units...)
	s.ApplyDefaults()
	return &s
}
