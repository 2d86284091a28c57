// Package config loads battle scenarios from YAML
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
	"github.com/KirkDiggler/rpg-battle/internal/engine/preset"
	"github.com/KirkDiggler/rpg-battle/internal/entities/army"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Scenario describes one battle setup
type Scenario struct {
	Name      string               `yaml:"name" json:"name"`
	Seed      int64                `yaml:"seed" json:"seed"`
	Grid      GridSize             `yaml:"grid" json:"grid"`
	Stalemate battle.StalemateRule `yaml:"stalemate" json:"stalemate"`
	Algorithm pathfind.Algorithm   `yaml:"algorithm" json:"algorithm"`
	Pacing    time.Duration        `yaml:"pacing" json:"pacing"`
	Templates []army.Template      `yaml:"templates" json:"templates"`
	First     Side                 `yaml:"first" json:"first"`
	Second    Side                 `yaml:"second" json:"second"`
}

// GridSize is the battlefield size
type GridSize struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Side is one army. Units, when given, are placed as listed; otherwise the
// army is generated from the templates within Budget.
type Side struct {
	Name   string      `yaml:"name" json:"name"`
	Budget int         `yaml:"budget" json:"budget"`
	Units  []Placement `yaml:"units" json:"units"`
}

// Placement puts one unit of a template type on a cell
type Placement struct {
	Type string `yaml:"type" json:"type"`
	Name string `yaml:"name" json:"name"`
	X    int    `yaml:"x" json:"x"`
	Y    int    `yaml:"y" json:"y"`
}

// Load reads and validates a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("scenario file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read scenario %s", path)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid scenario %s", path)
	}
	return s, nil
}

// Parse decodes YAML, fills defaults and validates
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode scenario")
	}

	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default is a balanced skirmish on the standard field
func Default() *Scenario {
	s := &Scenario{
		Name:      "skirmish",
		Seed:      1,
		Templates: DefaultTemplates(),
		First:     Side{Name: "Player", Budget: 1500},
		Second:    Side{Name: "Computer", Budget: 1500},
	}
	s.ApplyDefaults()
	return s
}

// DefaultTemplates are the stock unit types
func DefaultTemplates() []army.Template {
	return []army.Template{
		{Type: "Swordsman", Health: 50, BaseAttack: 20, Cost: 60, AttackType: army.AttackMelee, DiceCount: 1, DiceSize: 6},
		{Type: "Pikeman", Health: 35, BaseAttack: 18, Cost: 45, AttackType: army.AttackMelee, DiceCount: 1, DiceSize: 4},
		{Type: "Archer", Health: 30, BaseAttack: 14, Cost: 50, AttackType: army.AttackRanged, DiceCount: 1, DiceSize: 6},
		{Type: "Knight", Health: 90, BaseAttack: 30, Cost: 150, AttackType: army.AttackMelee, DiceCount: 2, DiceSize: 6},
	}
}

// ApplyDefaults fills zero values
func (s *Scenario) ApplyDefaults() {
	if s.Grid.Width == 0 {
		s.Grid.Width = grid.DefaultWidth
	}
	if s.Grid.Height == 0 {
		s.Grid.Height = grid.DefaultHeight
	}
	if s.Stalemate == "" {
		s.Stalemate = battle.StalemateEither
	}
	if s.Algorithm == "" {
		s.Algorithm = pathfind.AlgorithmBFS
	}
	if s.First.Name == "" {
		s.First.Name = "Player"
	}
	if s.Second.Name == "" {
		s.Second.Name = "Computer"
	}
}

// Validate validates the scenario
func (s *Scenario) Validate() error {
	vb := errors.NewValidationBuilder()

	// two formation strips must fit side by side
	errors.ValidateRange("grid.width", s.Grid.Width, 2*preset.DefaultWidth, grid.MaxSide, vb)
	errors.ValidateRange("grid.height", s.Grid.Height, 1, grid.MaxSide, vb)
	errors.ValidateEnum("stalemate", string(s.Stalemate),
		[]string{string(battle.StalemateEither), string(battle.StalemateBoth)}, vb)
	errors.ValidateEnum("algorithm", string(s.Algorithm),
		[]string{string(pathfind.AlgorithmBFS), string(pathfind.AlgorithmBidirectional)}, vb)
	if s.Pacing < 0 {
		vb.Field("pacing", "must not be negative")
	}

	types := make(map[string]bool, len(s.Templates))
	for i, t := range s.Templates {
		if err := t.Validate(); err != nil {
			vb.Fieldf(fmt.Sprintf("templates[%d]", i), "%s", errors.GetMessage(err))
		}
		if types[t.Type] {
			vb.Fieldf(fmt.Sprintf("templates[%d].type", i), "duplicate type %q", t.Type)
		}
		types[t.Type] = true
	}
	if len(s.Templates) == 0 {
		vb.RequiredField("templates")
	}

	occupied := make(map[grid.Cell]string)
	s.validateSide("first", &s.First, 0, types, occupied, vb)
	s.validateSide("second", &s.Second, s.Grid.Width-preset.DefaultWidth, types, occupied, vb)

	return vb.Build()
}

func (s *Scenario) validateSide(field string, side *Side, firstX int, types map[string]bool,
	occupied map[grid.Cell]string, vb *errors.ValidationBuilder) {
	errors.ValidateRequired(field+".name", side.Name, vb)

	if len(side.Units) == 0 {
		if side.Budget <= 0 {
			vb.Field(field, "needs units or a positive budget")
		}
		return
	}

	for i, p := range side.Units {
		name := fmt.Sprintf("%s.units[%d]", field, i)
		if !types[p.Type] {
			vb.Fieldf(name+".type", "unknown type %q", p.Type)
		}
		if p.X < firstX || p.X >= firstX+preset.DefaultWidth || p.Y < 0 || p.Y >= s.Grid.Height {
			vb.Fieldf(name, "cell (%d,%d) is outside the %s formation", p.X, p.Y, field)
			continue
		}
		c := grid.Cell{X: p.X, Y: p.Y}
		if other, taken := occupied[c]; taken {
			vb.Fieldf(name, "cell %s already used by %s", c, other)
			continue
		}
		occupied[c] = name
	}
}

// Template returns the template for a unit type
func (s *Scenario) Template(unitType string) (army.Template, bool) {
	for _, t := range s.Templates {
		if t.Type == unitType {
			return t, true
		}
	}
	return army.Template{}, false
}
