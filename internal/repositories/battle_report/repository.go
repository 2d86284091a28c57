// Package battlereport stores finished battle reports
package battlereport

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/battlelog"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=battlereportmock github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report Repository

// Report is the persisted summary of one finished battle
type Report struct {
	ID          string                `json:"id"`
	Scenario    string                `json:"scenario"`
	Seed        int64                 `json:"seed"`
	Outcome     battle.Outcome        `json:"outcome"`
	Winner      string                `json:"winner,omitempty"`
	FirstName   string                `json:"first_name"`
	SecondName  string                `json:"second_name"`
	FirstAlive  int                   `json:"first_alive"`
	SecondAlive int                   `json:"second_alive"`
	Rounds      int                   `json:"rounds"`
	Turns       int                   `json:"turns"`
	Rebuilds    int                   `json:"rebuilds"`
	Unreachable int                   `json:"unreachable"`
	Log         []battlelog.TurnEntry `json:"log,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// CreateInput contains parameters for storing a report
type CreateInput struct {
	Report *Report
	// TTL overrides the repository default when positive
	TTL time.Duration
}

// CreateOutput contains the stored report
type CreateOutput struct {
	Report *Report
}

// GetInput identifies a report
type GetInput struct {
	ID string
}

// GetOutput contains the report
type GetOutput struct {
	Report *Report
}

// ListInput limits a listing; zero means DefaultListLimit
type ListInput struct {
	Limit int
}

// ListOutput contains reports, newest first
type ListOutput struct {
	Reports []*Report
}

// DeleteInput identifies a report
type DeleteInput struct {
	ID string
}

// DeleteOutput reports whether anything was removed
type DeleteOutput struct {
	Deleted bool
}

// DefaultListLimit caps List when no limit is given
const DefaultListLimit = 20

// Repository defines storage for finished battle reports
type Repository interface {
	// Create stores a new report; an existing ID is an AlreadyExists error
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns the report or a NotFound error
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns the most recent reports
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a report
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errReportNil = "report cannot be nil"
	errIDEmpty   = "report ID cannot be empty"
)

func limitOf(input ListInput) int {
	if input.Limit <= 0 {
		return DefaultListLimit
	}
	return input.Limit
}
