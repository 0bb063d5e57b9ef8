//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/faceprint"
	"github.com/kozaktomas/face-vault/internal/store"
)

func setupTestContainer(t *testing.T) (*Pool, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.DatabaseConfig{
		URL:          fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port()),
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	pool, err := Connect(cfg)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to connect: %v", err)
	}

	return pool, func() {
		pool.Close()
		container.Terminate(ctx)
	}
}

func testTemplate(seed int16) faceprint.Faceprints {
	var d faceprint.Descriptor
	for i := range d {
		d[i] = seed + int16(i%7)
	}
	return faceprint.Faceprints{
		Version:             8,
		NumberOfDescriptors: 1,
		FeaturesType:        faceprint.FeaturesTypeW10,
		OrigDescriptor:      d,
		AvgDescriptor:       d,
	}
}

func TestTemplateRepository(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := NewTemplateRepository(pool)

	t.Run("UpsertAndLookup", func(t *testing.T) {
		want := testTemplate(5)
		if err := repo.Upsert(ctx, "alice", want); err != nil {
			t.Fatalf("Failed to upsert: %v", err)
		}

		got, err := repo.Lookup(ctx, "alice")
		if err != nil {
			t.Fatalf("Failed to lookup: %v", err)
		}
		if got == nil {
			t.Fatal("Expected template, got nil")
		}
		if *got != want {
			t.Error("Round-tripped template differs from stored one")
		}
	})

	t.Run("LookupMissing", func(t *testing.T) {
		got, err := repo.Lookup(ctx, "nobody")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for missing user, got %+v", got)
		}
	})

	t.Run("UpsertReplaces", func(t *testing.T) {
		updated := testTemplate(5)
		updated.AvgDescriptor[0] = 1234
		if err := repo.Upsert(ctx, "alice", updated); err != nil {
			t.Fatalf("Failed to upsert: %v", err)
		}

		got, err := repo.Lookup(ctx, "alice")
		if err != nil {
			t.Fatalf("Failed to lookup: %v", err)
		}
		if got.AvgDescriptor[0] != 1234 {
			t.Error("Upsert did not replace the record")
		}
		count, _ := repo.Count(ctx)
		if count != 1 {
			t.Errorf("Expected 1 template after replace, got %d", count)
		}
	})

	t.Run("ListSorted", func(t *testing.T) {
		for _, id := range []string{"carol", "bob"} {
			if err := repo.Upsert(ctx, id, testTemplate(1)); err != nil {
				t.Fatalf("Failed to upsert %s: %v", id, err)
			}
		}

		ids, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		want := []string{"alice", "bob", "carol"}
		if len(ids) != len(want) {
			t.Fatalf("List = %v, want %v", ids, want)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Errorf("List[%d] = %s, want %s", i, ids[i], want[i])
			}
		}
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		err := repo.Remove(ctx, "nobody")
		if !errors.Is(err, store.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		if err := repo.Remove(ctx, "bob"); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}
		if err := repo.Clear(ctx); err != nil {
			t.Fatalf("Failed to clear: %v", err)
		}
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Failed to count: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected empty store after clear, got %d", count)
		}
	})
}
