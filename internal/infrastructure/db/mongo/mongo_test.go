package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

func TestConnect_InvalidURI(t *testing.T) {
	if _, _, err := Connect(context.Background(), Config{URI: "not-a-mongo-uri", Database: "x", Timeout: time.Second}); err == nil {
		t.Fatalf("expected error for malformed uri")
	}
}

// newTestRepository connects to MONGO_TEST_URI, skipping when it is unset.
func newTestRepository(t *testing.T) *MappingRepository {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	client, db, err := Connect(context.Background(), Config{URI: uri, Database: "uuid_resolver_test"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewMappingRepository(db)
}

func TestMappingRepository_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	m := &domain.Mapping{
		ID:        uuid.NewString(),
		Value:     "hello",
		CreatedBy: "johndoe",
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
	if err := repo.Insert(ctx, m); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, &domain.Mapping{ID: m.ID, Value: "other"}); !errors.Is(err, domain.ErrMappingExists) {
		t.Fatalf("expected ErrMappingExists, got %v", err)
	}

	got, err := repo.FindByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Value != "hello" || got.CreatedBy != "johndoe" || !got.CreatedAt.Equal(m.CreatedAt) {
		t.Fatalf("unexpected mapping: %+v", got)
	}

	if _, err := repo.FindByID(ctx, uuid.NewString()); !errors.Is(err, domain.ErrMappingNotFound) {
		t.Fatalf("expected ErrMappingNotFound, got %v", err)
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
