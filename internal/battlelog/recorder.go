package battlelog

import (
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
)

// TurnEntry is a turn flattened to identifiers
type TurnEntry struct {
	Round      int              `json:"round"`
	Turn       int              `json:"turn"`
	Side       battle.SideIndex `json:"side"`
	AttackerID string           `json:"attacker_id"`
	TargetID   string           `json:"target_id,omitempty"`
	Killed     bool             `json:"killed,omitempty"`
}

// Recorder keeps everything it is told in memory
type Recorder struct {
	mu          sync.Mutex
	turns       []TurnEntry
	rounds      []battle.RoundSummary
	unreachable []pathfind.Unreachable
	result      *battle.Result
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Turn implements battle.LogSink
func (r *Recorder) Turn(rec battle.TurnRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.turns = append(r.turns, TurnEntry{
		Round:      rec.Round,
		Turn:       rec.Turn,
		Side:       rec.Side,
		AttackerID: id(rec.Attacker),
		TargetID:   id(rec.Target),
		Killed:     rec.Killed,
	})
}

// RoundOver implements battle.LogSink
func (r *Recorder) RoundOver(sum battle.RoundSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, sum)
}

// BattleOver implements battle.LogSink
func (r *Recorder) BattleOver(res battle.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = &res
}

// PathUnreachable implements pathfind.Notifier
func (r *Recorder) PathUnreachable(u pathfind.Unreachable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unreachable = append(r.unreachable, u)
}

// Turns returns a copy of the recorded turns
func (r *Recorder) Turns() []TurnEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TurnEntry(nil), r.turns...)
}

// Rounds returns a copy of the recorded round summaries
func (r *Recorder) Rounds() []battle.RoundSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]battle.RoundSummary(nil), r.rounds...)
}

// Unreachable returns a copy of the recorded path failures
func (r *Recorder) Unreachable() []pathfind.Unreachable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]pathfind.Unreachable(nil), r.unreachable...)
}

// Result returns the final result once the battle is over
func (r *Recorder) Result() (battle.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		return battle.Result{}, false
	}
	return *r.result, true
}
