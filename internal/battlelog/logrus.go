package battlelog

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
)

// NewLogrusLogger builds a logger from a level name and a format ("json" or
// "text"). Unknown levels fall back to info.
func NewLogrusLogger(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(out)
	return log
}

// Logrus writes structured battle entries
type Logrus struct {
	log logrus.FieldLogger
}

// NewLogrus creates a sink on top of an existing logger
func NewLogrus(log logrus.FieldLogger) *Logrus {
	return &Logrus{log: log}
}

// Turn implements battle.LogSink
func (l *Logrus) Turn(rec battle.TurnRecord) {
	l.log.WithFields(logrus.Fields{
		"round":       rec.Round,
		"turn":        rec.Turn,
		"side":        int(rec.Side),
		"attacker_id": id(rec.Attacker),
		"target_id":   id(rec.Target),
		"killed":      rec.Killed,
	}).Info("attack")
}

// RoundOver implements battle.LogSink
func (l *Logrus) RoundOver(sum battle.RoundSummary) {
	l.log.WithFields(logrus.Fields{
		"round":        sum.Round,
		"first":        sum.FirstName,
		"first_alive":  sum.FirstAlive,
		"second":       sum.SecondName,
		"second_alive": sum.SecondAlive,
	}).Info("round over")
}

// BattleOver implements battle.LogSink
func (l *Logrus) BattleOver(res battle.Result) {
	l.log.WithFields(logrus.Fields{
		"outcome":  string(res.Outcome),
		"winner":   res.Winner(),
		"rounds":   res.Rounds,
		"turns":    res.Turns,
		"rebuilds": res.Rebuilds,
	}).Info("battle over")
}

// PathUnreachable implements pathfind.Notifier
func (l *Logrus) PathUnreachable(u pathfind.Unreachable) {
	l.log.WithFields(logrus.Fields{
		"attacker_id": u.FromID,
		"target_id":   u.ToID,
		"from":        u.From.String(),
		"to":          u.To.String(),
	}).Warn("path unreachable")
}
