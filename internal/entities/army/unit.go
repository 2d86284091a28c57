// Package army holds the units and armies that fight battles
package army

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
	"github.com/KirkDiggler/rpg-battle/internal/engine/targeting"
)

var (
	_ battle.Combatant  = (*Unit)(nil)
	_ pathfind.Occupant = (*Unit)(nil)
	_ targeting.Target  = (*Unit)(nil)
	_ battle.Army       = (*Army)(nil)
)

// AttackType decides how a unit reaches its target
type AttackType string

const (
	// AttackMelee units must walk next to their target
	AttackMelee AttackType = "melee"
	// AttackRanged units shoot any visible target from where they stand
	AttackRanged AttackType = "ranged"
)

// Unit is a single fighter on the battlefield
type Unit struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Type       string     `json:"type" yaml:"type"`
	Health     int        `json:"health" yaml:"health"`
	BaseAttack int        `json:"base_attack" yaml:"base_attack"`
	Cost       int        `json:"cost" yaml:"cost"`
	AttackType AttackType `json:"attack_type" yaml:"attack_type"`
	DiceCount  int        `json:"dice_count,omitempty" yaml:"dice_count,omitempty"`
	DiceSize   int        `json:"dice_size,omitempty" yaml:"dice_size,omitempty"`
	X          int        `json:"x" yaml:"x"`
	Y          int        `json:"y" yaml:"y"`
	Alive      bool       `json:"alive" yaml:"alive"`

	// Program runs the unit's turn; nil means the unit never attacks
	Program battle.Action `json:"-" yaml:"-"`
}

// GetID implements core.Entity
func (u *Unit) GetID() string {
	return u.ID
}

// GetType implements core.Entity
func (u *Unit) GetType() string {
	return u.Type
}

// GetName returns the display name
func (u *Unit) GetName() string {
	return u.Name
}

// IsAlive is false for a nil unit
func (u *Unit) IsAlive() bool {
	return u != nil && u.Alive
}

// Power orders turns: harder hitters act first
func (u *Unit) Power() int {
	return u.BaseAttack
}

// Action implements battle.Combatant
func (u *Unit) Action() battle.Action {
	return u.Program
}

// Position implements pathfind.Occupant and targeting.Target
func (u *Unit) Position() grid.Cell {
	return grid.Cell{X: u.X, Y: u.Y}
}

// TakeDamage lowers health and kills the unit at zero. It returns the damage
// actually applied; dead units take none.
func (u *Unit) TakeDamage(amount int) int {
	if !u.IsAlive() || amount <= 0 {
		return 0
	}
	if amount > u.Health {
		amount = u.Health
	}
	u.Health -= amount
	if u.Health <= 0 {
		u.Alive = false
	}
	return amount
}
