package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var listLimit int

var listReportsCmd = &cobra.Command{
	Use:   "list-reports",
	Short: "List recent battle reports, newest first",
	RunE:  listReports,
}

func init() {
	listReportsCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum reports (server default when 0)")
}

func listReports(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := structpb.NewStruct(map[string]any{"limit": listLimit})
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.ListReports(ctx, req)
	if err != nil {
		return callError("list reports", err)
	}

	reports := resp.GetFields()["reports"].GetListValue().GetValues()
	fmt.Printf("%d report(s)\n", len(reports))
	for _, v := range reports {
		r := v.GetStructValue().GetFields()
		fmt.Printf("  %s  %-12s rounds=%-3.0f winner=%s\n",
			r["id"].GetStringValue(),
			r["outcome"].GetStringValue(),
			r["rounds"].GetNumberValue(),
			r["winner"].GetStringValue())
	}
	return nil
}
