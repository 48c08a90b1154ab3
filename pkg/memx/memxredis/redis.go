package memxredis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/convmem/pkg/memx"
	"github.com/redis/go-redis/v9"
)

// RedisSummaryStore implements memx.SummaryStore backed by Redis. Records
// are stored as JSON values; a per-entity set indexes the model keys so an
// entity purge does not need to scan the keyspace.
type RedisSummaryStore struct {
	rdb *redis.Client
}

// NewRedisSummaryStore creates a new Redis-backed summary store.
func NewRedisSummaryStore(rdb *redis.Client) memx.SummaryStore {
	return &RedisSummaryStore{rdb: rdb}
}

// Key helpers
func summaryKey(entityType, entityID, modelKey string) string {
	return fmt.Sprintf("memx:summary:%s:%s:%s", entityType, entityID, modelKey)
}
func entityIndexKey(entityType, entityID string) string {
	return fmt.Sprintf("memx:entity:%s:%s", entityType, entityID)
}

type summaryValue struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	ModelKey   string    `json:"model_key"`
	Summary    string    `json:"summary"`
	Marker     int       `json:"marker"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetSummary loads the record for an entity, or (nil, nil) when none exists.
func (s *RedisSummaryStore) GetSummary(ctx context.Context, entityType, entityID, modelKey string) (*memx.SummaryRecord, error) {
	data, err := s.rdb.Get(ctx, summaryKey(entityType, entityID, modelKey)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, redisErrors.NewWithCause(ErrGet, err).
			WithDetail("entity_id", entityID)
	}

	var value summaryValue
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, redisErrors.NewWithCause(ErrUnmarshal, err).
			WithDetail("entity_id", entityID)
	}

	return &memx.SummaryRecord{
		ID:         summaryKey(entityType, entityID, modelKey),
		EntityType: value.EntityType,
		EntityID:   value.EntityID,
		ModelKey:   value.ModelKey,
		Summary:    value.Summary,
		Marker:     memx.Marker(value.Marker),
		CreatedAt:  value.CreatedAt,
		UpdatedAt:  value.UpdatedAt,
	}, nil
}

// UpsertSummary creates or replaces the record and registers its model key
// in the entity index.
func (s *RedisSummaryStore) UpsertSummary(ctx context.Context, input memx.UpsertSummaryInput) error {
	now := time.Now().UTC()
	value := summaryValue{
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		ModelKey:   input.ModelKey,
		Summary:    input.Summary,
		Marker:     int(input.Marker),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	data, err := json.Marshal(value)
	if err != nil {
		return redisErrors.NewWithCause(ErrMarshal, err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, summaryKey(input.EntityType, input.EntityID, input.ModelKey), data, 0)
	pipe.SAdd(ctx, entityIndexKey(input.EntityType, input.EntityID), input.ModelKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return redisErrors.NewWithCause(ErrUpsert, err).
			WithDetail("entity_id", input.EntityID)
	}
	return nil
}

// DeleteSummariesByEntity removes every record for an entity across all
// model keys, plus the index itself.
func (s *RedisSummaryStore) DeleteSummariesByEntity(ctx context.Context, entityType, entityID string) error {
	indexKey := entityIndexKey(entityType, entityID)

	modelKeys, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil && err != redis.Nil {
		return redisErrors.NewWithCause(ErrDelete, err).
			WithDetail("entity_id", entityID)
	}

	keys := make([]string, 0, len(modelKeys)+1)
	for _, mk := range modelKeys {
		keys = append(keys, summaryKey(entityType, entityID, mk))
	}
	keys = append(keys, indexKey)

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return redisErrors.NewWithCause(ErrDelete, err).
			WithDetail("entity_id", entityID)
	}
	return nil
}
