package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

const keyPrefix = "mapping:"

// MappingRepository stores one JSON document per mapping under
// mapping:<id>. Keys carry no TTL; SETNX makes inserts first-writer-wins.
type MappingRepository struct {
	client redis.UniversalClient
}

func NewMappingRepository(client redis.UniversalClient) *MappingRepository {
	return &MappingRepository{client: client}
}

type mappingDoc struct {
	Value     string `json:"value"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func (r *MappingRepository) Insert(ctx context.Context, m *domain.Mapping) error {
	payload, err := json.Marshal(mappingDoc{
		Value:     m.Value,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(m.ID), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return domain.ErrMappingExists
	}
	return nil
}

func (r *MappingRepository) FindByID(ctx context.Context, id string) (*domain.Mapping, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrMappingNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var doc mappingDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode mapping %s: %w", id, err)
	}
	return &domain.Mapping{
		ID:        id,
		Value:     doc.Value,
		CreatedBy: doc.CreatedBy,
		CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
	}, nil
}

// Ping reports whether the backing server answers.
func (r *MappingRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *MappingRepository) key(id string) string {
	return keyPrefix + id
}
