package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SummaryCache keeps monthly summaries in Redis so repeated dashboard loads
// skip the aggregate query.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache constructs a SummaryCache with the given entry lifetime.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(employeeID int64, month string) string {
	return fmt.Sprintf("attendance:summary:%d:%s", employeeID, month)
}

// Get returns the cached summary and whether it was present.
func (c *SummaryCache) Get(ctx context.Context, employeeID int64, month string) (MonthlySummary, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey(employeeID, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return MonthlySummary{}, false, nil
		}
		return MonthlySummary{}, false, err
	}

	var summary MonthlySummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return MonthlySummary{}, false, err
	}
	return summary, true, nil
}

// Set stores a summary under the cache TTL.
func (c *SummaryCache) Set(ctx context.Context, summary MonthlySummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(summary.EmployeeID, summary.Month), data, c.ttl).Err()
}

// Invalidate drops the cached summary for one employee month.
func (c *SummaryCache) Invalidate(ctx context.Context, employeeID int64, month string) error {
	if err := c.client.Del(ctx, summaryKey(employeeID, month)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
