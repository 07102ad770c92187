package cache

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository/memory"
	"strconv"
	"sync"
	"testing"
	"time"
)

type fakeKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
	gets    int
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string][]byte)} }

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.failGet {
		return nil, false, errors.New("connection refused")
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Incr(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(string(f.data[key]), 10, 64)
	n++
	f.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (f *fakeKV) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func TestCachedGymRepositoryServesFromCacheAfterFirstRead(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	if err := store.Gyms().Create(ctx, &domain.Gym{ID: "gym_1", Name: "InnovaFit Gym"}); err != nil {
		t.Fatal(err)
	}
	kv := newFakeKV()
	repo := newCachedGymRepository(store.Gyms(), kv, time.Minute, logger.Nop())

	first, err := repo.GetByID(ctx, "gym_1")
	if err != nil || first.Name != "InnovaFit Gym" {
		t.Fatalf("GetByID() = %+v, %v", first, err)
	}
	if _, ok := kv.data[gymKeyPrefix+"gym_1"]; !ok {
		t.Fatal("expected gym to be written to cache")
	}

	// Change the cached copy; a cache hit must return it instead of the store's.
	kv.data[gymKeyPrefix+"gym_1"] = []byte(`{"id":"gym_1","name":"Cached"}`)
	second, err := repo.GetByID(ctx, "gym_1")
	if err != nil || second.Name != "Cached" {
		t.Fatalf("GetByID() second = %+v, %v", second, err)
	}
}

func TestCachedMachineRepositoryFallsThroughOnCacheError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	if err := store.Machines().Create(ctx, &domain.Machine{ID: "m_1", Name: "Prensa de Pierna"}); err != nil {
		t.Fatal(err)
	}
	kv := newFakeKV()
	kv.failGet = true
	repo := newCachedMachineRepository(store.Machines(), kv, time.Minute, logger.Nop())

	m, err := repo.GetByID(ctx, "m_1")
	if err != nil || m.Name != "Prensa de Pierna" {
		t.Fatalf("GetByID() = %+v, %v", m, err)
	}
}

func TestCachedMachineRepositoryDoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	repo := newCachedMachineRepository(memory.NewStore().Machines(), kv, time.Minute, logger.Nop())

	if _, err := repo.GetByID(ctx, "missing"); err == nil {
		t.Fatal("expected not found")
	}
	if len(kv.data) != 0 {
		t.Fatalf("expected empty cache, got %d entries", len(kv.data))
	}
}

func TestRedisDeviceFlagRepository(t *testing.T) {
	ctx := context.Background()
	repo := &redisDeviceFlagRepository{kv: newFakeKV()}

	asked, err := repo.FeedbackAsked(ctx, "device-1")
	if err != nil || asked {
		t.Fatalf("FeedbackAsked() = %v, %v; want false", asked, err)
	}
	if err := repo.MarkFeedbackAsked(ctx, "device-1"); err != nil {
		t.Fatalf("MarkFeedbackAsked() error = %v", err)
	}
	asked, err = repo.FeedbackAsked(ctx, "device-1")
	if err != nil || !asked {
		t.Fatalf("FeedbackAsked() = %v, %v; want true", asked, err)
	}
}
