package battle

import (
	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	battlereport "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report"
)

// SimulateInput defines the request for running one battle
type SimulateInput struct {
	Scenario *config.Scenario
	// Sink additionally receives this battle's log, e.g. a console
	Sink battle.LogSink
}

// SimulateOutput defines the response for running one battle
type SimulateOutput struct {
	Report *battlereport.Report
}

// SimulateBatchInput defines the request for running a scenario many times
type SimulateBatchInput struct {
	Scenario *config.Scenario
	// Runs is the number of battles; run i uses seed Scenario.Seed+i
	Runs int
	// Concurrency overrides the orchestrator default when positive
	Concurrency int
}

// SimulateBatchOutput aggregates the batch, reports are in run order
type SimulateBatchOutput struct {
	Reports    []*battlereport.Report
	FirstWins  int
	SecondWins int
	Draws      int
	Stalemates int
}

// GetReportInput defines the request for fetching a report
type GetReportInput struct {
	ReportID string
}

// GetReportOutput defines the response for fetching a report
type GetReportOutput struct {
	Report *battlereport.Report
}

// ListReportsInput defines the request for listing recent reports
type ListReportsInput struct {
	Limit int
}

// ListReportsOutput defines the response for listing recent reports
type ListReportsOutput struct {
	Reports []*battlereport.Report
}
