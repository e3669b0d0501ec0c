package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/99minutos/uuid-resolver/internal/core/domain"
)

func TestMappingRepository_InsertFind(t *testing.T) {
	r := NewMappingRepository()
	ctx := context.Background()

	if err := r.Insert(ctx, &domain.Mapping{ID: "a", Value: "x"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := r.Insert(ctx, &domain.Mapping{ID: "a", Value: "y"}); !errors.Is(err, domain.ErrMappingExists) {
		t.Fatalf("expected ErrMappingExists, got %v", err)
	}

	m, err := r.FindByID(ctx, "a")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m.Value != "x" {
		t.Fatalf("existing value overwritten: %q", m.Value)
	}

	if _, err := r.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrMappingNotFound) {
		t.Fatalf("expected ErrMappingNotFound, got %v", err)
	}
}

func TestMappingRepository_ConcurrentAccess(t *testing.T) {
	r := NewMappingRepository()
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("id-%d", i)
			if err := r.Insert(ctx, &domain.Mapping{ID: id, Value: id}); err != nil {
				t.Errorf("insert %s: %v", id, err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = r.FindByID(ctx, fmt.Sprintf("id-%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		id := fmt.Sprintf("id-%d", i)
		m, err := r.FindByID(ctx, id)
		if err != nil || m.Value != id {
			t.Fatalf("lost write for %s: %v", id, err)
		}
	}
}
