package battle

// Outcome is how a battle ended
type Outcome string

const (
	// OutcomeNoBattle means an army reference was missing
	OutcomeNoBattle Outcome = "no_battle"
	// OutcomeFirstWins means the second army has no living combatants
	OutcomeFirstWins Outcome = "first_wins"
	// OutcomeSecondWins means the first army has no living combatants
	OutcomeSecondWins Outcome = "second_wins"
	// OutcomeDraw means both armies were wiped out
	OutcomeDraw Outcome = "draw"
	// OutcomeStalemate means both armies survive but one (or both) stopped
	// producing targets
	OutcomeStalemate Outcome = "stalemate"
)

// Result summarizes a finished battle
type Result struct {
	Outcome     Outcome
	Rounds      int
	Turns       int
	Rebuilds    int
	FirstName   string
	SecondName  string
	FirstAlive  int
	SecondAlive int
}

// Winner returns the name of the winning army, or "" when nobody won
func (r Result) Winner() string {
	switch r.Outcome {
	case OutcomeFirstWins:
		return r.FirstName
	case OutcomeSecondWins:
		return r.SecondName
	default:
		return ""
	}
}

func outcomeFor(firstAlive, secondAlive int) (Outcome, bool) {
	switch {
	case firstAlive == 0 && secondAlive == 0:
		return OutcomeDraw, true
	case secondAlive == 0:
		return OutcomeFirstWins, true
	case firstAlive == 0:
		return OutcomeSecondWins, true
	default:
		return "", false
	}
}
