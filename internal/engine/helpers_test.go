package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cakecrumb/internal/storage"
)

var baseTime = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	eng   *Engine
	store *storage.MemoryStore
	clock *fakeClock
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, storage.NewMemoryStore(), opts...)
}

func newTestEnvWithStore(t *testing.T, store *storage.MemoryStore, opts ...Option) *testEnv {
	t.Helper()
	clock := &fakeClock{t: baseTime}
	all := append([]Option{
		WithClock(clock.Now),
		WithIDGenerator(NewSequenceGenerator("id")),
	}, opts...)

	eng, err := New(context.Background(), store, all...)
	require.NoError(t, err)
	return &testEnv{eng: eng, store: store, clock: clock}
}

func seedKey(t *testing.T, store storage.Store, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), key, data))
}

func achievement(t *testing.T, eng *Engine, id string) Achievement {
	t.Helper()
	for _, a := range eng.Achievements() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not found", id)
	return Achievement{}
}

func category(t *testing.T, eng *Engine, id string) Category {
	t.Helper()
	for _, c := range eng.Categories() {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("category %s not found", id)
	return Category{}
}

func progress(a Achievement) int {
	if a.Progress == nil {
		return 0
	}
	return *a.Progress
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve ValidationError
	require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
	require.Equal(t, field, ve.Field)
}

// failingStore accepts loads but rejects every save once armed.
type failingStore struct {
	*storage.MemoryStore
	fail bool
}

func (s *failingStore) Save(ctx context.Context, key string, value []byte) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.MemoryStore.Save(ctx, key, value)
}
