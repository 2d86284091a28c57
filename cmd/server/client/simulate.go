package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	scenarioPath string
	seed         int64
	runs         int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a battle on the server",
	Long: `Run a scenario on the server and print the stored report. Examples:

  simulate
  simulate --scenario skirmish.yaml --seed 42
  simulate --runs 100`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (default skirmish when empty)")
	simulateCmd.Flags().Int64Var(&seed, "seed", 0, "Override the scenario seed")
	simulateCmd.Flags().IntVar(&runs, "runs", 1, "Number of seeded runs")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	fields := map[string]any{"runs": runs}
	if scenarioPath != "" {
		data, err := os.ReadFile(scenarioPath)
		if err != nil {
			return fmt.Errorf("failed to read scenario: %w", err)
		}
		fields["scenario"] = string(data)
	}
	if cmd.Flags().Changed("seed") {
		fields["seed"] = seed
	}

	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Simulate(ctx, req)
	if err != nil {
		return callError("simulate", err)
	}
	return printStruct(resp)
}
