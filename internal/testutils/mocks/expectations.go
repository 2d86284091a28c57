// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	battlereport "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report"
	battlereportmock "github.com/KirkDiggler/rpg-battle/internal/repositories/battle_report/mock"
)

// ExpectReportSaved accepts Create calls and echoes the report back, the way
// the real stores do
func ExpectReportSaved(mockRepo *battlereportmock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input battlereport.CreateInput) (*battlereport.CreateOutput, error) {
			return &battlereport.CreateOutput{Report: input.Report}, nil
		})
}

// ExpectReportGet sets up a mock expectation for loading a report
func ExpectReportGet(
	ctx context.Context, mockRepo *battlereportmock.MockRepository,
	reportID string, report *battlereport.Report, err error,
) *gomock.Call {
	call := mockRepo.EXPECT().Get(ctx, battlereport.GetInput{ID: reportID})
	if err != nil {
		return call.Return(nil, err)
	}
	return call.Return(&battlereport.GetOutput{Report: report}, nil)
}

// ExpectReportList sets up a mock expectation for listing reports
func ExpectReportList(
	ctx context.Context, mockRepo *battlereportmock.MockRepository,
	limit int, reports []*battlereport.Report,
) *gomock.Call {
	return mockRepo.EXPECT().
		List(ctx, battlereport.ListInput{Limit: limit}).
		Return(&battlereport.ListOutput{Reports: reports}, nil)
}
