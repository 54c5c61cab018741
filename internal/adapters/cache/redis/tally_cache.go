package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/contest/api/internal/core/domain"
	"github.com/contest/api/internal/core/ports"
	"github.com/redis/go-redis/v9"
)

const (
	entryKeyPrefix = "participant:"
	totalKey       = "total_votes"
	scanBatchSize  = 100
)

type tallyCache struct {
	client *redis.Client
}

func NewTallyCache(client *redis.Client) ports.TallyCache {
	return &tallyCache{
		client: client,
	}
}

func entryKey(participantID int64) string {
	return entryKeyPrefix + strconv.FormatInt(participantID, 10)
}

func (c *tallyCache) Upsert(ctx context.Context, entry domain.TallyEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal tally entry: %w", err)
	}
	if err := c.client.Set(ctx, entryKey(entry.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write tally entry: %w", err)
	}
	return nil
}

func (c *tallyCache) IncrementTotal(ctx context.Context, delta int64) error {
	if err := c.client.IncrBy(ctx, totalKey, delta).Err(); err != nil {
		return fmt.Errorf("failed to increment total votes: %w", err)
	}
	return nil
}

func (c *tallyCache) AllSortedDescending(ctx context.Context) ([]domain.TallyEntry, error) {
	keys, err := c.scanEntryKeys(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.TallyEntry, 0, len(keys))
	for _, key := range keys {
		data, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			// Removed between scan and read.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tally entry %s: %w", key, err)
		}

		var entry domain.TallyEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tally entry %s: %w", key, err)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].VoteCount > entries[j].VoteCount
	})
	return entries, nil
}

func (c *tallyCache) ReadTotal(ctx context.Context) (int64, error) {
	total, err := c.client.Get(ctx, totalKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read total votes: %w", err)
	}
	return total, nil
}

// ReplaceAll swaps the whole cache in a single MULTI/EXEC pipeline: stale
// entries are deleted and the fresh state written in one shot, so a
// concurrent reader sees either the old cache or the new one.
func (c *tallyCache) ReplaceAll(ctx context.Context, entries []domain.TallyEntry, total int64) error {
	staleKeys, err := c.scanEntryKeys(ctx)
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	if len(staleKeys) > 0 {
		pipe.Del(ctx, staleKeys...)
	}
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal tally entry %d: %w", entry.ID, err)
		}
		pipe.Set(ctx, entryKey(entry.ID), data, 0)
	}
	pipe.Set(ctx, totalKey, total, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace tally cache: %w", err)
	}
	return nil
}

func (c *tallyCache) scanEntryKeys(ctx context.Context) ([]string, error) {
	var cursor uint64
	var allKeys []string
	for {
		keys, next, err := c.client.Scan(ctx, cursor, entryKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan tally entries: %w", err)
		}
		allKeys = append(allKeys, keys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return allKeys, nil
}
