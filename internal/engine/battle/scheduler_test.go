package battle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	battlemock "github.com/KirkDiggler/rpg-battle/internal/engine/battle/mock"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type soldier struct {
	id    string
	power int
	hp    int
	act   func(ctx context.Context, self *soldier) (battle.Combatant, error)
}

func (s *soldier) GetID() string   { return s.id }
func (s *soldier) GetType() string { return "soldier" }
func (s *soldier) IsAlive() bool   { return s.hp > 0 }
func (s *soldier) Power() int      { return s.power }

func (s *soldier) Action() battle.Action {
	if s.act == nil {
		return nil
	}
	return battle.ActionFunc(func(ctx context.Context) (battle.Combatant, error) {
		return s.act(ctx, s)
	})
}

// hit deals damage to the first living victim, or targets nobody
func hit(damage int, victims ...*soldier) func(context.Context, *soldier) (battle.Combatant, error) {
	return func(_ context.Context, _ *soldier) (battle.Combatant, error) {
		for _, v := range victims {
			if v.IsAlive() {
				v.hp -= damage
				return v, nil
			}
		}
		return nil, nil
	}
}

type army struct {
	name    string
	members []*soldier
}

func (a *army) Name() string { return a.name }

func (a *army) Combatants() []battle.Combatant {
	out := make([]battle.Combatant, len(a.members))
	for i, m := range a.members {
		out[i] = m
	}
	return out
}

type recordingSink struct {
	turns   []battle.TurnRecord
	rounds  []battle.RoundSummary
	results []battle.Result
}

func (r *recordingSink) Turn(rec battle.TurnRecord)        { r.turns = append(r.turns, rec) }
func (r *recordingSink) RoundOver(sum battle.RoundSummary) { r.rounds = append(r.rounds, sum) }
func (r *recordingSink) BattleOver(res battle.Result)      { r.results = append(r.results, res) }

func (r *recordingSink) actorsInRound(round int) []string {
	var ids []string
	for _, t := range r.turns {
		if t.Round == round {
			ids = append(ids, t.Attacker.GetID())
		}
	}
	return ids
}

type SchedulerTestSuite struct {
	suite.Suite
	ctx  context.Context
	sink *recordingSink
}

func TestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

func (s *SchedulerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.sink = &recordingSink{}
}

func (s *SchedulerTestSuite) newScheduler(rule battle.StalemateRule) *battle.Scheduler {
	sched, err := battle.NewScheduler(&battle.Config{Sink: s.sink, Stalemate: rule})
	s.Require().NoError(err)
	return sched
}

func (s *SchedulerTestSuite) TestNewScheduler_Validation() {
	_, err := battle.NewScheduler(nil)
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = battle.NewScheduler(&battle.Config{Stalemate: "never"})
	s.Error(err)
	s.Contains(err.Error(), "stalemate")

	sched, err := battle.NewScheduler(&battle.Config{})
	s.NoError(err)
	s.NotNil(sched)
}

func (s *SchedulerTestSuite) TestTurnOrderAlternatesStrongestFirst() {
	player := &army{name: "Player", members: []*soldier{
		{id: "P_Weak", power: 10, hp: 5},
		{id: "P_Strong", power: 100, hp: 5},
	}}
	computer := &army{name: "Computer", members: []*soldier{
		{id: "C_Weakest", power: 5, hp: 5},
		{id: "C_Medium", power: 50, hp: 5},
	}}

	res, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx, player, computer)
	s.Require().NoError(err)

	s.Equal([]string{"P_Strong", "C_Medium", "P_Weak", "C_Weakest"}, s.sink.actorsInRound(1))
	s.Equal(battle.First, s.sink.turns[0].Side)
	s.Equal(battle.Second, s.sink.turns[1].Side)
	s.Equal(4, res.Turns)
	s.Equal(battle.OutcomeStalemate, res.Outcome)
}

func (s *SchedulerTestSuite) TestUnevenSidesKeepAlternatingUntilExhausted() {
	first := &army{name: "A", members: []*soldier{
		{id: "a1", power: 3, hp: 1},
		{id: "a2", power: 2, hp: 1},
		{id: "a3", power: 1, hp: 1},
	}}
	second := &army{name: "B", members: []*soldier{
		{id: "b1", power: 9, hp: 1},
	}}

	_, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx, first, second)
	s.Require().NoError(err)

	s.Equal([]string{"a1", "b1", "a2", "a3"}, s.sink.actorsInRound(1))
}

func (s *SchedulerTestSuite) TestKilledBeforeActingNeverActs() {
	cMedium := &soldier{id: "C_Medium", power: 50, hp: 1}
	cWeakest := &soldier{id: "C_Weakest", power: 5, hp: 10}
	cMedium.act = hit(1)
	cWeakest.act = hit(0)

	player := &army{name: "Player", members: []*soldier{
		{id: "P_Strong", power: 100, hp: 10, act: hit(1, cMedium, cWeakest)},
		{id: "P_Weak", power: 10, hp: 10, act: hit(1, cWeakest)},
	}}
	computer := &army{name: "Computer", members: []*soldier{cWeakest, cMedium}}

	res, err := s.newScheduler(battle.StalemateBoth).Simulate(s.ctx, player, computer)
	s.Require().NoError(err)

	s.Equal([]string{"P_Strong", "C_Weakest", "P_Weak"}, s.sink.actorsInRound(1))
	s.True(s.sink.turns[0].Killed)
	s.Equal("C_Medium", s.sink.turns[0].Target.GetID())
	s.GreaterOrEqual(res.Rebuilds, 1)
}

func (s *SchedulerTestSuite) TestKillingAnActedCombatantDoesNotRebuild() {
	// b1 acts first in round one, then a1 kills it
	b1 := &soldier{id: "b1", power: 1, hp: 1}
	a1 := &soldier{id: "a1", power: 1, hp: 5}
	b1.act = hit(1, a1)
	a1.act = hit(1, b1)

	first := &army{name: "A", members: []*soldier{{id: "a0", power: 9, hp: 5, act: hit(0, a1)}, a1}}
	second := &army{name: "B", members: []*soldier{b1}}

	res, err := s.newScheduler(battle.StalemateBoth).Simulate(s.ctx, first, second)
	s.Require().NoError(err)

	s.Equal([]string{"a0", "b1", "a1"}, s.sink.actorsInRound(1))
	s.Equal(0, res.Rebuilds)
	s.Equal(battle.OutcomeFirstWins, res.Outcome)
	s.Equal("A", res.Winner())
}

func (s *SchedulerTestSuite) TestTargetingTheDeadIsNotAKill() {
	corpse := &soldier{id: "b0", power: 50, hp: 0}
	stab := func(_ context.Context, _ *soldier) (battle.Combatant, error) { return corpse, nil }

	first := &army{name: "A", members: []*soldier{{id: "a1", power: 9, hp: 5, act: stab}}}
	second := &army{name: "B", members: []*soldier{corpse, {id: "b1", power: 1, hp: 1}}}

	res, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx, first, second)
	s.Require().NoError(err)

	s.Require().NotEmpty(s.sink.turns)
	s.Equal("b0", s.sink.turns[0].Target.GetID())
	s.False(s.sink.turns[0].Killed)
	s.Equal(0, res.Rebuilds)
	s.Equal(battle.OutcomeStalemate, res.Outcome)
}

func (s *SchedulerTestSuite) TestEachCombatantActsAtMostOncePerRound() {
	a1 := &soldier{id: "a1", power: 4, hp: 6}
	a2 := &soldier{id: "a2", power: 2, hp: 6}
	b1 := &soldier{id: "b1", power: 3, hp: 6}
	b2 := &soldier{id: "b2", power: 1, hp: 6}
	a1.act = hit(2, b1, b2)
	a2.act = hit(1, b2, b1)
	b1.act = hit(2, a2, a1)
	b2.act = hit(1, a1, a2)

	res, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx,
		&army{name: "A", members: []*soldier{a1, a2}},
		&army{name: "B", members: []*soldier{b1, b2}})
	s.Require().NoError(err)

	for round := 1; round <= res.Rounds; round++ {
		seen := map[string]bool{}
		for _, id := range s.sink.actorsInRound(round) {
			s.False(seen[id], "%s acted twice in round %d", id, round)
			seen[id] = true
		}
	}
	s.Len(s.sink.rounds, res.Rounds)
	s.Require().Len(s.sink.results, 1)
	s.Equal(*res, s.sink.results[0])
}

func (s *SchedulerTestSuite) TestFirstWins() {
	b1 := &soldier{id: "b1", power: 1, hp: 3}
	a1 := &soldier{id: "a1", power: 1, hp: 3, act: hit(1, b1)}
	b1.act = hit(0, a1)

	res, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx,
		&army{name: "A", members: []*soldier{a1}},
		&army{name: "B", members: []*soldier{b1}})
	s.Require().NoError(err)

	s.Equal(battle.OutcomeFirstWins, res.Outcome)
	s.Equal(3, res.Rounds)
	s.Equal(1, res.FirstAlive)
	s.Equal(0, res.SecondAlive)
	s.Require().Len(s.sink.rounds, 3)
	s.Equal(battle.RoundSummary{Round: 3, FirstName: "A", SecondName: "B", FirstAlive: 1, SecondAlive: 0},
		s.sink.rounds[2])
}

func (s *SchedulerTestSuite) TestSecondWins() {
	a1 := &soldier{id: "a1", power: 1, hp: 1}
	b1 := &soldier{id: "b1", power: 1, hp: 5, act: hit(1, a1)}
	a1.act = hit(0, b1)

	res, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx,
		&army{name: "A", members: []*soldier{a1}},
		&army{name: "B", members: []*soldier{b1}})
	s.Require().NoError(err)

	s.Equal(battle.OutcomeSecondWins, res.Outcome)
	s.Equal("B", res.Winner())
	s.Equal(1, res.Rounds)
}

func (s *SchedulerTestSuite) TestDrawWhenBothSidesWipedOut() {
	a1 := &soldier{id: "a1", power: 1, hp: 1}
	b1 := &soldier{id: "b1", power: 1, hp: 1}
	a1.act = func(context.Context, *soldier) (battle.Combatant, error) {
		a1.hp = 0
		b1.hp = 0
		return b1, nil
	}

	res, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx,
		&army{name: "A", members: []*soldier{a1}},
		&army{name: "B", members: []*soldier{b1}})
	s.Require().NoError(err)

	s.Equal(battle.OutcomeDraw, res.Outcome)
	s.Equal("", res.Winner())
	s.Equal([]string{"a1"}, s.sink.actorsInRound(1))
}

func (s *SchedulerTestSuite) TestStalemateRules() {
	testCases := []struct {
		name    string
		rule    battle.StalemateRule
		outcome battle.Outcome
		rounds  int
	}{
		{name: "either side idle ends battle", rule: battle.StalemateEither, outcome: battle.OutcomeStalemate, rounds: 1},
		{name: "both sides must be idle", rule: battle.StalemateBoth, outcome: battle.OutcomeFirstWins, rounds: 3},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.sink = &recordingSink{}
			b1 := &soldier{id: "b1", power: 1, hp: 3}
			a1 := &soldier{id: "a1", power: 1, hp: 3, act: hit(1, b1)}

			res, err := s.newScheduler(tc.rule).Simulate(s.ctx,
				&army{name: "A", members: []*soldier{a1}},
				&army{name: "B", members: []*soldier{b1}})
			s.Require().NoError(err)

			s.Equal(tc.outcome, res.Outcome)
			s.Equal(tc.rounds, res.Rounds)
		})
	}
}

func (s *SchedulerTestSuite) TestSelfTargetCountsAsNoTarget() {
	self := func(_ context.Context, me *soldier) (battle.Combatant, error) { return me, nil }
	first := &army{name: "A", members: []*soldier{{id: "a1", power: 1, hp: 1, act: self}}}
	second := &army{name: "B", members: []*soldier{{id: "b1", power: 1, hp: 1}}}

	res, err := s.newScheduler(battle.StalemateBoth).Simulate(s.ctx, first, second)
	s.Require().NoError(err)

	s.Equal(battle.OutcomeStalemate, res.Outcome)
	s.Require().Len(s.sink.turns, 2)
	s.Nil(s.sink.turns[0].Target)
	s.Nil(s.sink.turns[1].Target, "nil action means no target")
}

func (s *SchedulerTestSuite) TestNilArmyIsNoBattle() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	sink := battlemock.NewMockLogSink(ctrl)

	sched, err := battle.NewScheduler(&battle.Config{Sink: sink})
	s.Require().NoError(err)

	res, err := sched.Simulate(s.ctx, nil, &army{name: "B"})
	s.NoError(err)
	s.Equal(battle.OutcomeNoBattle, res.Outcome)

	res, err = sched.Simulate(s.ctx, &army{name: "A"}, nil)
	s.NoError(err)
	s.Equal(battle.OutcomeNoBattle, res.Outcome)
}

func (s *SchedulerTestSuite) TestEmptySideEndsBeforeFirstRound() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	sink := battlemock.NewMockLogSink(ctrl)

	sink.EXPECT().BattleOver(battle.Result{
		Outcome:    battle.OutcomeFirstWins,
		FirstName:  "A",
		SecondName: "B",
		FirstAlive: 1,
	}).Times(1)

	sched, err := battle.NewScheduler(&battle.Config{Sink: sink})
	s.Require().NoError(err)

	res, err := sched.Simulate(s.ctx,
		&army{name: "A", members: []*soldier{{id: "a1", power: 1, hp: 1}}},
		&army{name: "B", members: []*soldier{{id: "dead", power: 1, hp: 0}}})
	s.Require().NoError(err)
	s.Equal(0, res.Rounds)
	s.Equal(0, res.Turns)
}

func (s *SchedulerTestSuite) TestCancellationStopsBeforeNextTurn() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	sink := battlemock.NewMockLogSink(ctrl)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	b1 := &soldier{id: "b1", power: 1, hp: 5}
	a1 := &soldier{id: "a1", power: 1, hp: 5, act: func(context.Context, *soldier) (battle.Combatant, error) {
		cancel()
		b1.hp--
		return b1, nil
	}}
	b1.act = hit(1, a1)

	sink.EXPECT().Turn(gomock.Any()).Times(1)

	sched, err := battle.NewScheduler(&battle.Config{Sink: sink})
	s.Require().NoError(err)

	res, err := sched.Simulate(ctx,
		&army{name: "A", members: []*soldier{a1}},
		&army{name: "B", members: []*soldier{b1}})

	s.Error(err)
	s.True(errors.IsCanceled(err))
	s.Equal(1, res.Turns)
	s.Equal(0, res.Rounds)
}

func (s *SchedulerTestSuite) TestActionErrorAborts() {
	a1 := &soldier{id: "a1", power: 1, hp: 5, act: func(context.Context, *soldier) (battle.Combatant, error) {
		return nil, context.DeadlineExceeded
	}}

	_, err := s.newScheduler(battle.StalemateEither).Simulate(s.ctx,
		&army{name: "A", members: []*soldier{a1}},
		&army{name: "B", members: []*soldier{{id: "b1", power: 1, hp: 5}}})

	s.Error(err)
	s.True(errors.IsDeadlineExceeded(err))
	s.Empty(s.sink.turns)
	s.Empty(s.sink.results)
}

func (s *SchedulerTestSuite) TestRebuildCascade() {
	// every kill of a combatant that has not acted rebuilds its side's queue
	b1 := &soldier{id: "b1", power: 3, hp: 1}
	b2 := &soldier{id: "b2", power: 2, hp: 1}
	b3 := &soldier{id: "b3", power: 1, hp: 5}
	a1 := &soldier{id: "a1", power: 9, hp: 5, act: hit(1, b1, b2)}
	a2 := &soldier{id: "a2", power: 8, hp: 1, act: hit(1, b3)}
	a3 := &soldier{id: "a3", power: 7, hp: 5, act: hit(5, b3)}
	b2.act = hit(1, a2)

	res, err := s.newScheduler(battle.StalemateBoth).Simulate(s.ctx,
		&army{name: "A", members: []*soldier{a1, a2, a3}},
		&army{name: "B", members: []*soldier{b1, b2, b3}})
	s.Require().NoError(err)

	s.Equal([]string{"a1", "b2", "a3"}, s.sink.actorsInRound(1))
	s.Equal([]string{"a1", "a3"}, s.sink.actorsInRound(2))
	s.Equal(4, res.Rebuilds)
	s.Equal(battle.OutcomeFirstWins, res.Outcome)
	s.Equal(2, res.Rounds)
}
