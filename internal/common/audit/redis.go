package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSink keeps a capped list of recent records. It backs /api/history.
type RedisSink struct {
	client     redis.Cmdable
	key        string
	maxEntries int64
}

func NewRedisSink(client redis.Cmdable, key string, maxEntries int) *RedisSink {
	if maxEntries <= 0 {
		maxEntries = 500
	}
	return &RedisSink{client: client, key: key, maxEntries: int64(maxEntries)}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Write(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, payload)
		pipe.LTrim(ctx, s.key, 0, s.maxEntries-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis audit write failed: %w", err)
	}
	return nil
}

func (s *RedisSink) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || int64(limit) > s.maxEntries {
		limit = int(s.maxEntries)
	}

	raw, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis history read failed: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		var rec Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
