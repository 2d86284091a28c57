// Package program holds the default unit behavior used in simulations
package program

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
	"github.com/KirkDiggler/rpg-battle/internal/engine/targeting"
	"github.com/KirkDiggler/rpg-battle/internal/entities/army"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Config configures an Attack
type Config struct {
	Self    *army.Unit
	Allies  *army.Army
	Enemies *army.Army
	Finder  *pathfind.Finder
	// LeftSide is true when Self's army stands on the left edge
	LeftSide bool
	// Roller rolls damage dice; defaults to dice.DefaultRoller
	Roller dice.Roller
	// Pacing is waited before every turn
	Pacing time.Duration
}

// Validate validates the config
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Self == nil {
		vb.RequiredField("self")
	}
	if c.Allies == nil {
		vb.RequiredField("allies")
	}
	if c.Enemies == nil {
		vb.RequiredField("enemies")
	}
	if c.Finder == nil {
		vb.RequiredField("finder")
	}
	if c.Pacing < 0 {
		vb.Field("pacing", "must not be negative")
	}
	return vb.Build()
}

// Attack picks the nearest visible enemy and hits it. Melee units need a
// walkable path to the target; ranged units do not. It returns the unit
// itself when the chosen target cannot be reached, and nil when no enemy is
// visible.
type Attack struct {
	self     *army.Unit
	allies   *army.Army
	enemies  *army.Army
	finder   *pathfind.Finder
	leftSide bool
	roller   dice.Roller
	pacing   time.Duration
}

var _ battle.Action = (*Attack)(nil)

// NewAttack creates the program for one unit
func NewAttack(cfg *Config) (*Attack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	a := &Attack{
		self:     cfg.Self,
		allies:   cfg.Allies,
		enemies:  cfg.Enemies,
		finder:   cfg.Finder,
		leftSide: cfg.LeftSide,
		roller:   cfg.Roller,
		pacing:   cfg.Pacing,
	}
	if a.roller == nil {
		a.roller = dice.DefaultRoller
	}
	return a, nil
}

// Act implements battle.Action
func (a *Attack) Act(ctx context.Context) (battle.Combatant, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if !a.self.IsAlive() {
		return nil, nil
	}

	targets := a.VisibleTargets()
	if len(targets) == 0 {
		slog.Debug("Unit can not find target for attack", "unit_id", a.self.ID)
		return nil, nil
	}
	target := a.nearest(targets)

	if a.self.AttackType != army.AttackRanged {
		path := a.finder.FindTargetPath(a.self, target, a.occupants())
		if len(path) == 0 {
			return a.self, nil
		}
	}

	target.TakeDamage(a.damage())
	return target, nil
}

// VisibleTargets lists the enemies the unit may attack right now
func (a *Attack) VisibleTargets() []*army.Unit {
	g := a.finder.Grid()

	// the enemy strip sits on the opposite edge
	firstX := g.Width - targeting.ColumnCount
	if !a.leftSide {
		firstX = 0
	}
	columns := targeting.Columns(a.enemies.Units(), firstX)
	return targeting.Suitable(columns, !a.leftSide, g.Height)
}

func (a *Attack) wait(ctx context.Context) error {
	if a.pacing <= 0 {
		return nil
	}

	t := time.NewTimer(a.pacing)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// nearest returns the target closest by king moves; earlier targets win ties
func (a *Attack) nearest(targets []*army.Unit) *army.Unit {
	from := a.self.Position()
	best, bestDist := targets[0], distance(from, targets[0].Position())
	for _, t := range targets[1:] {
		if d := distance(from, t.Position()); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

func (a *Attack) occupants() []pathfind.Occupant {
	out := make([]pathfind.Occupant, 0, len(a.allies.Units())+len(a.enemies.Units()))
	for _, side := range []*army.Army{a.allies, a.enemies} {
		for _, u := range side.Units() {
			if u != nil {
				out = append(out, u)
			}
		}
	}
	return out
}

func (a *Attack) damage() int {
	dmg := a.self.BaseAttack
	if a.self.DiceCount <= 0 || a.self.DiceSize <= 0 {
		return dmg
	}

	rolls, err := a.roller.RollN(a.self.DiceCount, a.self.DiceSize)
	if err != nil {
		slog.Warn("Failed to roll damage dice",
			"unit_id", a.self.ID,
			"dice_count", a.self.DiceCount,
			"dice_size", a.self.DiceSize,
			"error", err)
		return dmg
	}
	for _, r := range rolls {
		dmg += r
	}
	return dmg
}

func distance(a, b grid.Cell) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
