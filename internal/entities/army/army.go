package army

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
)

// Army is one side of a battle
type Army struct {
	name   string
	units  []*Unit
	points int
}

// New creates an army from the given units
func New(name string, units ...*Unit) *Army {
	return &Army{name: name, units: units}
}

// Name implements battle.Army
func (a *Army) Name() string {
	return a.name
}

// Units returns the army's units in insertion order
func (a *Army) Units() []*Unit {
	return a.units
}

// Combatants implements battle.Army
func (a *Army) Combatants() []battle.Combatant {
	out := make([]battle.Combatant, 0, len(a.units))
	for _, u := range a.units {
		if u != nil {
			out = append(out, u)
		}
	}
	return out
}

// Add appends a unit
func (a *Army) Add(u *Unit) {
	a.units = append(a.units, u)
}

// Points is the budget spent building the army
func (a *Army) Points() int {
	return a.points
}

// SetPoints records the spent budget
func (a *Army) SetPoints(points int) {
	a.points = points
}
