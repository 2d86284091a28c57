package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-battle/internal/battlelog"
	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	orchestrator "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	battlereport "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report"
)

var (
	scenarioPath string
	simSeed      int64
	simRuns      int
	simSink      string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a battle locally",
	Long: `Run a scenario in this process. Without --scenario the default skirmish is
played: two preset armies of 1500 points on a 27x21 field.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Override the scenario seed")
	simulateCmd.Flags().IntVar(&simRuns, "runs", 1, "Number of seeded runs; more than one prints totals only")
	simulateCmd.Flags().StringVar(&simSink, "sink", "console", "Battle log for a single run (console, logrus or none)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scenario := config.Default()
	if scenarioPath != "" {
		loaded, err := config.Load(scenarioPath)
		if err != nil {
			return err
		}
		scenario = loaded
	}
	if cmd.Flags().Changed("seed") {
		scenario.Seed = simSeed
	}

	svc, err := orchestrator.NewOrchestrator(&orchestrator.Config{
		ReportRepo:  battlereport.NewInMemory(clock.New()),
		IDGenerator: idgen.NewSequential("battle"),
	})
	if err != nil {
		return err
	}

	if simRuns > 1 {
		out, err := svc.SimulateBatch(ctx, &orchestrator.SimulateBatchInput{Scenario: scenario, Runs: simRuns})
		if err != nil {
			return err
		}
		fmt.Printf("%d runs of %s from seed %d\n", simRuns, scenario.Name, scenario.Seed)
		fmt.Printf("  %s wins: %d\n", scenario.First.Name, out.FirstWins)
		fmt.Printf("  %s wins: %d\n", scenario.Second.Name, out.SecondWins)
		fmt.Printf("  draws: %d\n", out.Draws)
		fmt.Printf("  stalemates: %d\n", out.Stalemates)
		return nil
	}

	var sink battle.LogSink
	switch simSink {
	case "console":
		sink = battlelog.NewConsole(os.Stdout)
	case "logrus":
		sink = battlelog.NewLogrus(battlelog.NewLogrusLogger(logLevel, logFormat, os.Stdout))
	case "none", "":
	default:
		return fmt.Errorf("unknown sink %q", simSink)
	}

	out, err := svc.Simulate(ctx, &orchestrator.SimulateInput{Scenario: scenario, Sink: sink})
	if err != nil {
		return err
	}

	r := out.Report
	fmt.Printf("\n%s: %s after %d rounds (%d turns, %d queue rebuilds, %d unreachable targets)\n",
		r.ID, r.Outcome, r.Rounds, r.Turns, r.Rebuilds, r.Unreachable)
	return nil
}
