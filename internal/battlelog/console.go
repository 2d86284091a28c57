package battlelog

import (
	"fmt"
	"io"
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
)

// Named is implemented by combatants with a display name
type Named interface {
	GetName() string
}

// Console writes a human readable battle log
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console sink writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Turn implements battle.LogSink
func (c *Console) Turn(rec battle.TurnRecord) {
	c.printf("ATTACK: %s -> %s\n", label(rec.Attacker), label(rec.Target))
}

// RoundOver implements battle.LogSink
func (c *Console) RoundOver(sum battle.RoundSummary) {
	c.printf("\nRound %d is over!\n%s army has %d units\n%s army has %d units\n\n",
		sum.Round, sum.FirstName, sum.FirstAlive, sum.SecondName, sum.SecondAlive)
}

// BattleOver implements battle.LogSink
func (c *Console) BattleOver(res battle.Result) {
	if winner := res.Winner(); winner != "" {
		c.printf("Battle is over! %s army wins\n", winner)
		return
	}
	c.printf("Battle is over! (%s)\n", res.Outcome)
}

// PathUnreachable implements pathfind.Notifier
func (c *Console) PathUnreachable(u pathfind.Unreachable) {
	c.printf("Unit %s cannot find path to attack unit %s\n", u.FromID, u.ToID)
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, format, args...)
}

func label(c battle.Combatant) string {
	if c == nil {
		return "none"
	}
	if n, ok := c.(Named); ok && n.GetName() != "" {
		return n.GetName()
	}
	return c.GetID()
}

func id(c battle.Combatant) string {
	if c == nil {
		return ""
	}
	return c.GetID()
}
