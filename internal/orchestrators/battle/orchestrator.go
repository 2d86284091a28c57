// Package battle implements the battle orchestrator: it turns scenarios into
// armies, runs them through the scheduler and stores the reports.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle Service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-battle/internal/battlelog"
	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/grid"
	"github.com/KirkDiggler/rpg-battle/internal/engine/pathfind"
	"github.com/KirkDiggler/rpg-battle/internal/engine/preset"
	"github.com/KirkDiggler/rpg-battle/internal/engine/program"
	"github.com/KirkDiggler/rpg-battle/internal/entities/army"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	battlereport "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report"
)

const (
	// DefaultConcurrency bounds parallel battles in a batch
	DefaultConcurrency = 4
	// MaxBatchRuns bounds a single batch request
	MaxBatchRuns = 1000
)

// Service defines the interface for battle operations
type Service interface {
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)
	SimulateBatch(ctx context.Context, input *SimulateBatchInput) (*SimulateBatchOutput, error)
	GetReport(ctx context.Context, input *GetReportInput) (*GetReportOutput, error)
	ListReports(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	ReportRepo  battlereport.Repository
	IDGenerator idgen.Generator
	// Sink receives the log of every battle in addition to the report
	// recorder. Optional.
	Sink        battle.LogSink
	Concurrency int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.ReportRepo == nil {
		vb.RequiredField("ReportRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Concurrency < 0 {
		vb.Field("Concurrency", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	reportRepo  battlereport.Repository
	idGen       idgen.Generator
	sink        battle.LogSink
	concurrency int
}

// NewOrchestrator creates a new battle orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		reportRepo:  cfg.ReportRepo,
		idGen:       cfg.IDGenerator,
		sink:        cfg.Sink,
		concurrency: cfg.Concurrency,
	}
	if o.concurrency == 0 {
		o.concurrency = DefaultConcurrency
	}
	return o, nil
}

// Simulate runs one battle and stores its report
func (o *orchestrator) Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateScenario(input.Scenario); err != nil {
		return nil, err
	}

	report, err := o.run(ctx, input.Scenario, input.Scenario.Seed, input.Sink)
	if err != nil {
		return nil, err
	}
	return &SimulateOutput{Report: report}, nil
}

// SimulateBatch runs independent seeded battles in parallel. Each run owns
// its armies, finder, scheduler and dice.
func (o *orchestrator) SimulateBatch(ctx context.Context, input *SimulateBatchInput) (*SimulateBatchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateScenario(input.Scenario); err != nil {
		return nil, err
	}
	if input.Runs < 1 || input.Runs > MaxBatchRuns {
		return nil, errors.InvalidArgumentf("runs must be between 1 and %d", MaxBatchRuns)
	}

	limit := o.concurrency
	if input.Concurrency > 0 {
		limit = input.Concurrency
	}

	reports := make([]*battlereport.Report, input.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := 0; i < input.Runs; i++ {
		seed := input.Scenario.Seed + int64(i)
		g.Go(func() error {
			report, err := o.run(gctx, input.Scenario, seed, nil)
			if err != nil {
				return errors.Wrapf(err, "run with seed %d failed", seed)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &SimulateBatchOutput{Reports: reports}
	for _, r := range reports {
		switch r.Outcome {
		case battle.OutcomeFirstWins:
			out.FirstWins++
		case battle.OutcomeSecondWins:
			out.SecondWins++
		case battle.OutcomeDraw:
			out.Draws++
		case battle.OutcomeStalemate:
			out.Stalemates++
		}
	}

	slog.Info("Battle batch simulated",
		"scenario", input.Scenario.Name,
		"runs", input.Runs,
		"first_wins", out.FirstWins,
		"second_wins", out.SecondWins,
		"draws", out.Draws,
		"stalemates", out.Stalemates)

	return out, nil
}

// GetReport fetches a stored report
func (o *orchestrator) GetReport(ctx context.Context, input *GetReportInput) (*GetReportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ReportID == "" {
		return nil, errors.InvalidArgument("report ID is required")
	}

	out, err := o.reportRepo.Get(ctx, battlereport.GetInput{ID: input.ReportID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get report %s", input.ReportID)
	}
	return &GetReportOutput{Report: out.Report}, nil
}

// ListReports returns recent reports, newest first
func (o *orchestrator) ListReports(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error) {
	if input == nil {
		input = &ListReportsInput{}
	}

	out, err := o.reportRepo.List(ctx, battlereport.ListInput{Limit: input.Limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}
	return &ListReportsOutput{Reports: out.Reports}, nil
}

func validateScenario(s *config.Scenario) error {
	if s == nil {
		return errors.InvalidArgument("scenario is required")
	}
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "invalid scenario")
	}
	return nil
}

// run executes one battle with its own state and saves the report
func (o *orchestrator) run(ctx context.Context, s *config.Scenario, seed int64, extra battle.LogSink) (*battlereport.Report, error) {
	rng := rand.New(rand.NewSource(seed))
	unitIDs := idgen.NewSequential("unit")
	field := grid.New(s.Grid.Width, s.Grid.Height)

	first, err := buildArmy(s, &s.First, 0, unitIDs, rng)
	if err != nil {
		return nil, err
	}
	second, err := buildArmy(s, &s.Second, field.Width-preset.DefaultWidth, unitIDs, rng)
	if err != nil {
		return nil, err
	}

	recorder := battlelog.NewRecorder()
	sink := battlelog.NewMulti(recorder, o.sink, extra)

	finder, err := pathfind.NewFinder(&pathfind.Config{
		Grid:      field,
		Notifier:  sink,
		Algorithm: s.Algorithm,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create path finder")
	}

	roller := program.NewSeededRoller(seed)
	for _, side := range []struct {
		own, enemy *army.Army
		left       bool
	}{
		{own: first, enemy: second, left: true},
		{own: second, enemy: first, left: false},
	} {
		for _, u := range side.own.Units() {
			attack, err := program.NewAttack(&program.Config{
				Self:     u,
				Allies:   side.own,
				Enemies:  side.enemy,
				Finder:   finder,
				LeftSide: side.left,
				Roller:   roller,
				Pacing:   s.Pacing,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to program unit %s", u.ID)
			}
			u.Program = attack
		}
	}

	scheduler, err := battle.NewScheduler(&battle.Config{
		Sink:      sink,
		Stalemate: s.Stalemate,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}

	result, err := scheduler.Simulate(ctx, first, second)
	if err != nil {
		if errors.IsAborted(err) {
			slog.Info("Battle abandoned",
				"scenario", s.Name,
				"seed", seed,
				"turns", result.Turns,
				"deadline", errors.IsDeadlineExceeded(err))
		}
		return nil, err
	}

	report := &battlereport.Report{
		ID:          o.idGen.Generate(),
		Scenario:    s.Name,
		Seed:        seed,
		Outcome:     result.Outcome,
		Winner:      result.Winner(),
		FirstName:   result.FirstName,
		SecondName:  result.SecondName,
		FirstAlive:  result.FirstAlive,
		SecondAlive: result.SecondAlive,
		Rounds:      result.Rounds,
		Turns:       result.Turns,
		Rebuilds:    result.Rebuilds,
		Unreachable: len(recorder.Unreachable()),
		Log:         recorder.Turns(),
	}

	saved, err := o.reportRepo.Create(ctx, battlereport.CreateInput{Report: report})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save report %s", report.ID)
	}

	slog.Info("Battle simulated",
		"report_id", saved.Report.ID,
		"scenario", s.Name,
		"seed", seed,
		"outcome", result.Outcome,
		"rounds", result.Rounds,
		"turns", result.Turns)

	return saved.Report, nil
}

func buildArmy(s *config.Scenario, side *config.Side, offset int, ids idgen.Generator, rng *rand.Rand) (*army.Army, error) {
	if len(side.Units) == 0 {
		cfg := preset.DefaultConfig()
		cfg.Height = s.Grid.Height
		cfg.IDGen = ids

		gen, err := preset.NewGenerator(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create preset generator")
		}
		a := gen.Generate(side.Name, s.Templates, side.Budget, rng)
		preset.PlaceOffset(a, offset)
		return a, nil
	}

	a := army.New(side.Name)
	counts := make(map[string]int)
	points := 0
	for _, p := range side.Units {
		t, ok := s.Template(p.Type)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown unit type %q", p.Type)
		}
		counts[p.Type]++
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s %d", p.Type, counts[p.Type])
		}
		a.Add(t.NewUnit(ids.Generate(), name, p.X, p.Y))
		points += t.Cost
	}
	a.SetPoints(points)
	return a, nil
}
