package army

import (
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Template describes a unit type that armies are built from
type Template struct {
	Type       string     `json:"type" yaml:"type"`
	Health     int        `json:"health" yaml:"health"`
	BaseAttack int        `json:"base_attack" yaml:"base_attack"`
	Cost       int        `json:"cost" yaml:"cost"`
	AttackType AttackType `json:"attack_type" yaml:"attack_type"`
	DiceCount  int        `json:"dice_count,omitempty" yaml:"dice_count,omitempty"`
	DiceSize   int        `json:"dice_size,omitempty" yaml:"dice_size,omitempty"`
}

// Validate validates the template
func (t *Template) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("type", t.Type, vb)
	errors.ValidateMin("health", t.Health, 1, vb)
	errors.ValidateMin("base_attack", t.BaseAttack, 0, vb)
	errors.ValidateMin("cost", t.Cost, 1, vb)
	if t.AttackType != "" {
		errors.ValidateEnum("attack_type", string(t.AttackType),
			[]string{string(AttackMelee), string(AttackRanged)}, vb)
	}
	if t.DiceCount < 0 || t.DiceSize < 0 {
		vb.Field("dice", "must not be negative")
	}
	if (t.DiceCount == 0) != (t.DiceSize == 0) {
		vb.Field("dice", "count and size must be set together")
	}

	return vb.Build()
}

// NewUnit stamps out a living unit of this template
func (t *Template) NewUnit(id, name string, x, y int) *Unit {
	attackType := t.AttackType
	if attackType == "" {
		attackType = AttackMelee
	}
	return &Unit{
		ID:         id,
		Name:       name,
		Type:       t.Type,
		Health:     t.Health,
		BaseAttack: t.BaseAttack,
		Cost:       t.Cost,
		AttackType: attackType,
		DiceCount:  t.DiceCount,
		DiceSize:   t.DiceSize,
		X:          x,
		Y:          y,
		Alive:      true,
	}
}
