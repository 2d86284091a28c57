package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var getReportCmd = &cobra.Command{
	Use:   "get-report [report-id]",
	Short: "Get a stored battle report",
	Args:  cobra.ExactArgs(1),
	RunE:  getReport,
}

func getReport(_ *cobra.Command, args []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"report_id": args[0]})
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.GetReport(ctx, req)
	if err != nil {
		return callError("get report", err)
	}
	return printStruct(resp)
}
