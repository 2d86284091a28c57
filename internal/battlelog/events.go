package battlelog

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
)

// Event types published by Events
const (
	EventAttack          = "battle.attack"
	EventRoundOver       = "battle.round_over"
	EventBattleOver      = "battle.over"
	EventPathUnreachable = "path.unreachable"
)

// Context keys set on published events
const (
	KeyRound       = "round"
	KeyTurn        = "turn"
	KeySide        = "side"
	KeyKilled      = "killed"
	KeyFirstAlive  = "first_alive"
	KeySecondAlive = "second_alive"
	KeyOutcome     = "outcome"
	KeyWinner      = "winner"
	KeyRounds      = "rounds"
	KeyTurns       = "turns"
	KeyRebuilds    = "rebuilds"
	KeyFrom        = "from"
	KeyTo          = "to"
)

// Events publishes battle notifications as game events on a toolkit bus
type Events struct {
	ctx context.Context
	bus events.EventBus
}

// NewEvents creates a sink publishing on bus. ctx is handed to every
// subscriber; nil means context.Background.
func NewEvents(ctx context.Context, bus events.EventBus) *Events {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Events{ctx: ctx, bus: bus}
}

// Turn implements battle.LogSink
func (e *Events) Turn(rec battle.TurnRecord) {
	var target core.Entity
	if rec.Target != nil {
		target = rec.Target
	}
	ev := events.NewGameEvent(EventAttack, rec.Attacker, target)
	ev.Context().Set(KeyRound, rec.Round)
	ev.Context().Set(KeyTurn, rec.Turn)
	ev.Context().Set(KeySide, int(rec.Side))
	ev.Context().Set(KeyKilled, rec.Killed)
	e.publish(ev)
}

// RoundOver implements battle.LogSink
func (e *Events) RoundOver(sum battle.RoundSummary) {
	ev := events.NewGameEvent(EventRoundOver, side(sum.FirstName), side(sum.SecondName))
	ev.Context().Set(KeyRound, sum.Round)
	ev.Context().Set(KeyFirstAlive, sum.FirstAlive)
	ev.Context().Set(KeySecondAlive, sum.SecondAlive)
	e.publish(ev)
}

// BattleOver implements battle.LogSink
func (e *Events) BattleOver(res battle.Result) {
	ev := events.NewGameEvent(EventBattleOver, side(res.FirstName), side(res.SecondName))
	ev.Context().Set(KeyOutcome, string(res.Outcome))
	ev.Context().Set(KeyWinner, res.Winner())
	ev.Context().Set(KeyRounds, res.Rounds)
	ev.Context().Set(KeyTurns, res.Turns)
	ev.Context().Set(KeyRebuilds, res.Rebuilds)
	e.publish(ev)
}

// PathUnreachable implements pathfind.Notifier
func (e *Events) PathUnreachable(u pathfind.Unreachable) {
	ev := events.NewGameEvent(EventPathUnreachable, unitRef(u.FromID), unitRef(u.ToID))
	ev.Context().Set(KeyFrom, u.From)
	ev.Context().Set(KeyTo, u.To)
	e.publish(ev)
}

// publish never fails the battle; a failing subscriber is only logged
func (e *Events) publish(ev events.Event) {
	if err := e.bus.Publish(e.ctx, ev); err != nil {
		slog.WarnContext(e.ctx, "Event subscriber failed",
			"event_type", ev.Type(),
			"error", err)
	}
}

// entityRef names an entity known only by id
type entityRef struct {
	id  string
	typ string
}

func (r entityRef) GetID() string   { return r.id }
func (r entityRef) GetType() string { return r.typ }

func side(name string) core.Entity  { return entityRef{id: name, typ: "army"} }
func unitRef(id string) core.Entity { return entityRef{id: id, typ: "unit"} }
