package battlelog

import (
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
)

// Multi forwards every notification to each sink in order. Unreachable
// notices go to the sinks that also implement pathfind.Notifier.
type Multi struct {
	sinks []battle.LogSink
}

// NewMulti creates a fan-out sink. Nil sinks are dropped.
func NewMulti(sinks ...battle.LogSink) *Multi {
	m := &Multi{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Turn implements battle.LogSink
func (m *Multi) Turn(rec battle.TurnRecord) {
	for _, s := range m.sinks {
		s.Turn(rec)
	}
}

// RoundOver implements battle.LogSink
func (m *Multi) RoundOver(sum battle.RoundSummary) {
	for _, s := range m.sinks {
		s.RoundOver(sum)
	}
}

// BattleOver implements battle.LogSink
func (m *Multi) BattleOver(res battle.Result) {
	for _, s := range m.sinks {
		s.BattleOver(res)
	}
}

// PathUnreachable implements pathfind.Notifier
func (m *Multi) PathUnreachable(u pathfind.Unreachable) {
	for _, s := range m.sinks {
		if n, ok := s.(pathfind.Notifier); ok {
			n.PathUnreachable(u)
		}
	}
}
