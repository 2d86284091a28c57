package battle

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-battle/internal/engine/turnqueue"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// StalemateRule decides when a round without targets ends the battle
type StalemateRule string

const (
	// StalemateEither ends the battle when either side produced no target
	StalemateEither StalemateRule = "either"
	// StalemateBoth ends the battle only when neither side produced a target
	StalemateBoth StalemateRule = "both"
)

// Config configures a Scheduler
type Config struct {
	// Sink receives turn, round and battle notifications. Nil discards them.
	Sink LogSink
	// Stalemate defaults to StalemateEither
	Stalemate StalemateRule
}

// Validate validates the config
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Stalemate != "" {
		errors.ValidateEnum("stalemate", string(c.Stalemate),
			[]string{string(StalemateEither), string(StalemateBoth)}, vb)
	}
	return vb.Build()
}

// Scheduler runs battles. It holds no per-battle state and may be shared.
type Scheduler struct {
	sink      LogSink
	stalemate StalemateRule
}

// NewScheduler creates a scheduler from the config
func NewScheduler(cfg *Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Scheduler{sink: cfg.Sink, stalemate: cfg.Stalemate}
	if s.sink == nil {
		s.sink = NopSink{}
	}
	if s.stalemate == "" {
		s.stalemate = StalemateEither
	}
	return s, nil
}

// Simulate runs rounds until one army is wiped out or the stalemate rule
// fires. A nil army yields OutcomeNoBattle without touching the sink. The
// context is checked before every turn; when it is done the battle is
// abandoned and the context error is returned with a partial result.
func (s *Scheduler) Simulate(ctx context.Context, first, second Army) (*Result, error) {
	if first == nil || second == nil {
		return &Result{Outcome: OutcomeNoBattle}, nil
	}

	r := &run{
		sink:      s.sink,
		stalemate: s.stalemate,
		armies:    [2]Army{first, second},
		result: &Result{
			FirstName:  first.Name(),
			SecondName: second.Name(),
		},
	}
	return r.execute(ctx)
}

// run holds the state of one battle
type run struct {
	sink      LogSink
	stalemate StalemateRule
	armies    [2]Army
	result    *Result

	// per round
	round    int
	queues   [2]*turnqueue.Queue
	acted    map[Combatant]struct{}
	sideOf   map[Combatant]SideIndex
	alive    map[Combatant]bool
	progress [2]bool
}

func (r *run) execute(ctx context.Context) (*Result, error) {
	if over := r.checkOver(); over {
		r.sink.BattleOver(*r.result)
		return r.result, nil
	}

	for {
		r.startRound()

		if err := r.playRound(ctx); err != nil {
			slog.Debug("battle aborted",
				"round", r.round,
				"turns", r.result.Turns,
				"error", err)
			return r.result, err
		}

		r.result.Rounds = r.round
		r.sink.RoundOver(r.summary())

		if r.checkOver() {
			break
		}
		if r.stalled() {
			r.result.Outcome = OutcomeStalemate
			break
		}
	}

	slog.Debug("battle over",
		"outcome", r.result.Outcome,
		"rounds", r.result.Rounds,
		"turns", r.result.Turns,
		"rebuilds", r.result.Rebuilds)

	r.sink.BattleOver(*r.result)
	return r.result, nil
}

func (r *run) startRound() {
	r.round++
	r.acted = make(map[Combatant]struct{})
	r.progress = [2]bool{}
	r.sideOf = make(map[Combatant]SideIndex)
	r.alive = make(map[Combatant]bool)

	for _, side := range []SideIndex{First, Second} {
		for _, c := range r.armies[side].Combatants() {
			if c == nil {
				continue
			}
			if _, seen := r.sideOf[c]; !seen {
				r.sideOf[c] = side
			}
		}
		r.queues[side] = r.buildQueue(side)
	}
}

// playRound alternates one pop per side, first side first, until both queues
// are exhausted. An exhausted side simply passes.
func (r *run) playRound(ctx context.Context) error {
	for {
		acted := false
		for _, side := range []SideIndex{First, Second} {
			if err := ctx.Err(); err != nil {
				return errors.FromContext(err, "battle aborted")
			}

			next := r.queues[side].Pop(r.hasActed)
			if next == nil {
				continue
			}
			acted = true

			if err := r.takeTurn(ctx, side, next.(Combatant)); err != nil {
				return err
			}
		}
		if !acted {
			return nil
		}
	}
}

func (r *run) takeTurn(ctx context.Context, side SideIndex, actor Combatant) error {
	r.snapshotAlive()

	var target Combatant
	if action := actor.Action(); action != nil {
		t, err := action.Act(ctx)
		if err != nil {
			return errors.FromContext(err, "battle aborted")
		}
		target = t
	}
	if target == actor {
		target = nil
	}

	r.acted[actor] = struct{}{}
	r.result.Turns++

	rec := TurnRecord{
		Round:    r.round,
		Turn:     r.result.Turns,
		Side:     side,
		Attacker: actor,
		Target:   target,
	}

	if target != nil {
		r.progress[side] = true
		rec.Killed = r.alive[target] && !target.IsAlive()
	}

	r.sink.Turn(rec)

	if rec.Killed && !r.hasActed(target) {
		if targetSide, ok := r.sideOf[target]; ok {
			r.queues[targetSide] = r.buildQueue(targetSide)
			r.result.Rebuilds++
		}
	}
	return nil
}

// snapshotAlive records who is alive before an action so that hitting a
// corpse is not counted as a kill
func (r *run) snapshotAlive() {
	for c := range r.sideOf {
		r.alive[c] = c.IsAlive()
	}
}

func (r *run) buildQueue(side SideIndex) *turnqueue.Queue {
	combatants := r.armies[side].Combatants()
	entries := make([]turnqueue.Entry, 0, len(combatants))
	for _, c := range combatants {
		if c == nil {
			continue
		}
		entries = append(entries, c)
	}
	return turnqueue.Build(entries, r.hasActed)
}

func (r *run) hasActed(e turnqueue.Entry) bool {
	c, ok := e.(Combatant)
	if !ok {
		return false
	}
	_, done := r.acted[c]
	return done
}

func (r *run) stalled() bool {
	if r.stalemate == StalemateBoth {
		return !r.progress[First] && !r.progress[Second]
	}
	return !r.progress[First] || !r.progress[Second]
}

// checkOver refreshes the alive counts and sets the outcome when a side is
// wiped out
func (r *run) checkOver() bool {
	r.result.FirstAlive = aliveCount(r.armies[First])
	r.result.SecondAlive = aliveCount(r.armies[Second])

	outcome, over := outcomeFor(r.result.FirstAlive, r.result.SecondAlive)
	if over {
		r.result.Outcome = outcome
	}
	return over
}

func (r *run) summary() RoundSummary {
	return RoundSummary{
		Round:       r.round,
		FirstName:   r.result.FirstName,
		SecondName:  r.result.SecondName,
		FirstAlive:  aliveCount(r.armies[First]),
		SecondAlive: aliveCount(r.armies[Second]),
	}
}

func aliveCount(a Army) int {
	n := 0
	for _, c := range a.Combatants() {
		if c != nil && c.IsAlive() {
			n++
		}
	}
	return n
}
