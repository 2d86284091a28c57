package battlereport

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
)

const (
	// Key pattern: battle_report:{id}
	reportKeyPrefix = "battle_report:"
	// Sorted set of report IDs scored by creation time
	indexKey   = "battle_report:index"
	defaultTTL = 24 * time.Hour
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// TTL is how long reports live; defaults to 24h
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl must not be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a Redis backed report repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores the report under its ID and indexes it by creation time
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Report == nil {
		return nil, errors.InvalidArgument(errReportNil)
	}
	if input.Report.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	report := *input.Report
	if report.CreatedAt.IsZero() {
		report.CreatedAt = r.clock.Now()
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	data, err := json.Marshal(&report)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal report")
	}

	created, err := r.client.SetNX(ctx, r.buildKey(report.ID), data, ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store report in Redis")
	}
	if !created {
		return nil, errors.AlreadyExists("report already exists").WithMeta("report_id", report.ID)
	}

	err = r.client.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(report.CreatedAt.UnixNano()),
		Member: report.ID,
	}).Err()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to index report")
	}

	return &CreateOutput{Report: &report}, nil
}

// Get retrieves a report by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	data, err := r.client.Get(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("report not found").WithMeta("report_id", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get report from Redis")
	}

	var report Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal report")
	}

	return &GetOutput{Report: &report}, nil
}

// List returns the newest live reports. The index is read page by page until
// limit reports are found, so expired entries do not shorten the result.
// Entries whose report expired are pruned on the way.
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	limit := limitOf(input)

	reports := make([]*Report, 0, min(limit, DefaultListLimit))
	var stale []interface{}
	for start := int64(0); len(reports) < limit; start += int64(limit) {
		ids, err := r.client.ZRevRange(ctx, indexKey, start, start+int64(limit)-1).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list reports")
		}

		for _, id := range ids {
			if len(reports) == limit {
				break
			}
			out, err := r.Get(ctx, GetInput{ID: id})
			if err != nil {
				if errors.IsNotFound(err) {
					stale = append(stale, id)
					continue
				}
				return nil, err
			}
			reports = append(reports, out.Report)
		}

		if len(ids) < limit {
			break
		}
	}

	if len(stale) > 0 {
		if err := r.client.ZRem(ctx, indexKey, stale...).Err(); err != nil {
			slog.WarnContext(ctx, "Failed to prune expired report index entries",
				"count", len(stale),
				"error", err)
		}
	}

	return &ListOutput{Reports: reports}, nil
}

// Delete removes a report and its index entry
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete report from Redis")
	}
	if err := r.client.ZRem(ctx, indexKey, input.ID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to unindex report")
	}

	return &DeleteOutput{Deleted: removed > 0}, nil
}

func (r *redisRepository) buildKey(id string) string {
	return reportKeyPrefix + id
}
