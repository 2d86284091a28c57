package battlereport

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
)

// InMemoryRepository implements Repository without expiry. Used when the
// server runs without Redis and in tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Report
}

// NewInMemory creates an empty repository; a nil clock uses the system time
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]*Report),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Create stores a copy of the report
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Report == nil {
		return nil, errors.InvalidArgument(errReportNil)
	}
	if input.Report.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Report.ID]; exists {
		return nil, errors.AlreadyExists("report already exists").WithMeta("report_id", input.Report.ID)
	}

	report := *input.Report
	if report.CreatedAt.IsZero() {
		report.CreatedAt = r.clock.Now()
	}
	r.store[report.ID] = &report

	out := report
	return &CreateOutput{Report: &out}, nil
}

// Get returns a copy of the report
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFound("report not found").WithMeta("report_id", input.ID)
	}

	out := *report
	return &GetOutput{Report: &out}, nil
}

// List returns the newest reports first
func (r *InMemoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*Report, 0, len(r.store))
	for _, report := range r.store {
		out := *report
		reports = append(reports, &out)
	}
	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID > reports[j].ID
	})

	if limit := limitOf(input); len(reports) > limit {
		reports = reports[:limit]
	}
	return &ListOutput{Reports: reports}, nil
}

// Delete removes a report
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.ID]
	delete(r.store, input.ID)
	return &DeleteOutput{Deleted: exists}, nil
}
