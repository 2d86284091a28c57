package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/battlelog"
	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	battlereport "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report"
)

const (
	// TestFirstArmy is the default first side name in fixtures
	TestFirstArmy = "Player"
	// TestSecondArmy is the default second side name in fixtures
	TestSecondArmy = "Computer"
)

// CreateTestReport creates a finished first-side win with a one entry log
func CreateTestReport(id string, at time.Time) *battlereport.Report {
	return &battlereport.Report{
		ID:          id,
		Scenario:    "skirmish",
		Seed:        3,
		Outcome:     battle.OutcomeFirstWins,
		Winner:      TestFirstArmy,
		FirstName:   TestFirstArmy,
		SecondName:  TestSecondArmy,
		FirstAlive:  4,
		Rounds:      6,
		Turns:       40,
		Rebuilds:    3,
		Unreachable: 1,
		Log: []battlelog.TurnEntry{
			{Round: 1, Turn: 1, Side: battle.First, AttackerID: "u_1", TargetID: "u_9", Killed: true},
		},
		CreatedAt: at,
	}
}

// CreateDuelScenario pits one knight against one pikeman on the standard
// field. The knight wins in one or two rounds whatever the dice.
func CreateDuelScenario() *config.Scenario {
	sc := &config.Scenario{
		Name:      "duel",
		Seed:      7,
		Templates: config.DefaultTemplates(),
		First: config.Side{
			Name:  TestFirstArmy,
			Units: []config.Placement{{Type: "Knight", X: 2, Y: 10}},
		},
		Second: config.Side{
			Name:  TestSecondArmy,
			Units: []config.Placement{{Type: "Pikeman", X: 24, Y: 10}},
		},
	}
	sc.ApplyDefaults()
	return sc
}
