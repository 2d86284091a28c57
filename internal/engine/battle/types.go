// Package battle runs round-based combat between two armies.
//
// Each round every living combatant acts at most once. Sides alternate,
// strongest first within a side. A combatant killed before its turn never
// acts that round, and its side's queue is rebuilt as soon as the kill is
// observed. The battle ends when a side is wiped out or when a round passes
// in which a side (or both, depending on StalemateRule) produced no target.
package battle

//go:generate mockgen -destination=mock/mock_sink.go -package=battlemock github.com/KirkDiggler/rpg-battle/internal/engine/battle LogSink

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Action is the externally supplied behavior of a combatant for one turn.
// It returns the attacked combatant, or nil when it did not attack. Returning
// the acting combatant itself also means "no target". A non-nil error aborts
// the battle; actions should only return one when ctx is done.
type Action interface {
	Act(ctx context.Context) (Combatant, error)
}

// ActionFunc adapts a function to Action
type ActionFunc func(ctx context.Context) (Combatant, error)

// Act calls f(ctx)
func (f ActionFunc) Act(ctx context.Context) (Combatant, error) {
	return f(ctx)
}

// Combatant is a participant the scheduler can order and invoke. The
// scheduler only reads it. Implementations must be comparable by identity
// (pointer receivers) because acted-this-round tracking is keyed on the
// interface value.
type Combatant interface {
	core.Entity
	IsAlive() bool
	Power() int
	// Action may return nil, which counts as "no target" for the turn
	Action() Action
}

// Army is one side of the battle. The scheduler never adds or removes
// combatants; death is tracked through IsAlive only.
type Army interface {
	Name() string
	Combatants() []Combatant
}

// SideIndex identifies the first or second army passed to Simulate
type SideIndex int

const (
	// First is the army that moves first in every round
	First SideIndex = 0
	// Second is the other army
	Second SideIndex = 1
)

// Other returns the opposing side
func (s SideIndex) Other() SideIndex {
	return 1 - s
}

// TurnRecord describes one processed turn
type TurnRecord struct {
	Round    int
	Turn     int
	Side     SideIndex
	Attacker Combatant
	// Target is nil when the combatant produced no target
	Target Combatant
	// Killed is true when the action took Target from alive to dead
	Killed bool
}

// RoundSummary is emitted at the end of every completed round
type RoundSummary struct {
	Round       int
	FirstName   string
	SecondName  string
	FirstAlive  int
	SecondAlive int
}

// LogSink receives battle notifications in order: Turn for every processed
// action, RoundOver after every completed round, BattleOver once at the end.
// An aborted battle gets no further RoundOver or BattleOver calls.
type LogSink interface {
	Turn(rec TurnRecord)
	RoundOver(summary RoundSummary)
	BattleOver(result Result)
}

// NopSink discards everything
type NopSink struct{}

// Turn implements LogSink
func (NopSink) Turn(TurnRecord) {}

// RoundOver implements LogSink
func (NopSink) RoundOver(RoundSummary) {}

// BattleOver implements LogSink
func (NopSink) BattleOver(Result) {}
