// Package v1alpha1 handles the battle gRPC service interface
package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	battlereport "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// Handler implements the battle gRPC service
type Handler struct {
	UnimplementedBattleServiceServer
	battleService battle.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		battleService: cfg.BattleService,
	}, nil
}

// Simulate runs a scenario and returns its report. Request fields:
//
//	scenario  YAML scenario document, the default skirmish when empty
//	seed      overrides the scenario seed
//	runs      runs a seeded batch when greater than 1
func (h *Handler) Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	scenario := config.Default()
	if doc := fields["scenario"].GetStringValue(); doc != "" {
		parsed, err := config.Parse([]byte(doc))
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		scenario = parsed
	}
	if seed, ok := fields["seed"]; ok {
		scenario.Seed = int64(seed.GetNumberValue())
	}

	if runs := int(fields["runs"].GetNumberValue()); runs > 1 {
		out, err := h.battleService.SimulateBatch(ctx, &battle.SimulateBatchInput{
			Scenario: scenario,
			Runs:     runs,
		})
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}

		ids := make([]any, 0, len(out.Reports))
		for _, r := range out.Reports {
			ids = append(ids, r.ID)
		}
		resp, err := structpb.NewStruct(map[string]any{
			"runs":        runs,
			"first_wins":  out.FirstWins,
			"second_wins": out.SecondWins,
			"draws":       out.Draws,
			"stalemates":  out.Stalemates,
			"report_ids":  ids,
		})
		if err != nil {
			return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode batch"))
		}
		return resp, nil
	}

	out, err := h.battleService.Simulate(ctx, &battle.SimulateInput{Scenario: scenario})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return wrapReports("report", out.Report)
}

// GetReport returns a stored report by report_id
func (h *Handler) GetReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := req.GetFields()["report_id"].GetStringValue()
	if id == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("report_id is required"))
	}

	out, err := h.battleService.GetReport(ctx, &battle.GetReportInput{ReportID: id})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return wrapReports("report", out.Report)
}

// ListReports returns recent reports, newest first, at most limit of them
func (h *Handler) ListReports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit := int(req.GetFields()["limit"].GetNumberValue())
	if limit < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("limit must not be negative"))
	}

	out, err := h.battleService.ListReports(ctx, &battle.ListReportsInput{Limit: limit})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return wrapReports("reports", out.Reports...)
}

// wrapReports encodes one report under key, or a list of them when key is
// "reports"
func wrapReports(key string, reports ...*battlereport.Report) (*structpb.Struct, error) {
	values := make([]any, 0, len(reports))
	for _, r := range reports {
		v, err := toValue(r)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		values = append(values, v)
	}

	var payload any = values
	if key == "report" && len(values) == 1 {
		payload = values[0]
	}

	resp, err := structpb.NewStruct(map[string]any{key: payload})
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return resp, nil
}

// toValue converts through the report's JSON form so field names match the
// stored encoding
func toValue(r *battlereport.Report) (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal report")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal report")
	}
	return m, nil
}
