package service

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"testing"
)

func newScanService(t *testing.T) (ScanService, *ScanCoordinator) {
	t.Helper()
	store := seededStore(t)
	coord := NewScanCoordinator()
	return NewScanService(NewTagService(store.Tags()), newCatalog(store, nil), coord, logger.Nop()), coord
}

func TestScanCombinesGymAndMachine(t *testing.T) {
	svc, _ := newScanService(t)

	res, err := svc.Scan(context.Background(), "u_1", "https://innovafit.app/scan?tag=abc123")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if res.Tag.GymID != "gym_1" || res.Tag.MachineID != "m_1" {
		t.Fatalf("Tag = %+v", res.Tag)
	}
	if res.Gym.Name != "InnovaFit Gym" || res.Machine.Name != "Prensa de Pierna" {
		t.Fatalf("Scan() = gym %q, machine %q", res.Gym.Name, res.Machine.Name)
	}
}

func TestScanUnknownTag(t *testing.T) {
	svc, _ := newScanService(t)
	if _, err := svc.Scan(context.Background(), "u_1", "nope"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("error = %v, want ErrTagNotFound", err)
	}
}

func TestScanFailsWhenEitherBranchFails(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	if err := store.Tags().Create(ctx, &domain.Tag{ID: "orphan", GymID: "gym_1", MachineID: "m_missing"}); err != nil {
		t.Fatal(err)
	}
	svc := NewScanService(NewTagService(store.Tags()), newCatalog(store, nil), NewScanCoordinator(), logger.Nop())

	if _, err := svc.Scan(ctx, "u_1", "orphan"); !errors.Is(err, ErrMachineNotFound) {
		t.Fatalf("error = %v, want ErrMachineNotFound", err)
	}
}

// supersedingCatalog starts a newer scan for the same user while the first one is loading.
type supersedingCatalog struct {
	CatalogService
	coord  ScanTracker
	userID string
}

func (c supersedingCatalog) LoadMachine(ctx context.Context, id string) (*domain.Machine, error) {
	if _, err := c.coord.Begin(ctx, c.userID); err != nil {
		return nil, err
	}
	return c.CatalogService.LoadMachine(ctx, id)
}

func TestScanDiscardsSupersededResult(t *testing.T) {
	store := seededStore(t)
	coord := NewScanCoordinator()
	catalog := supersedingCatalog{CatalogService: newCatalog(store, nil), coord: coord, userID: "u_1"}
	svc := NewScanService(NewTagService(store.Tags()), catalog, coord, logger.Nop())

	if _, err := svc.Scan(context.Background(), "u_1", "abc123"); !errors.Is(err, ErrScanSuperseded) {
		t.Fatalf("error = %v, want ErrScanSuperseded", err)
	}
}

func TestScanCoordinatorGenerationsAreNotReused(t *testing.T) {
	ctx := context.Background()
	coord := NewScanCoordinator()
	begin := func(userID string) uint64 {
		gen, err := coord.Begin(ctx, userID)
		if err != nil {
			t.Fatalf("Begin() error = %v", err)
		}
		return gen
	}
	current := func(userID string, gen uint64) bool {
		ok, err := coord.IsCurrent(ctx, userID, gen)
		if err != nil {
			t.Fatalf("IsCurrent() error = %v", err)
		}
		return ok
	}

	first := begin("u_1")
	second := begin("u_1")
	coord.Finish(ctx, "u_1", second)
	third := begin("u_1")

	if current("u_1", first) {
		t.Fatal("first scan should be stale")
	}
	if third == first || !current("u_1", third) {
		t.Fatalf("third generation %d should be current and distinct from %d", third, first)
	}
	if !current("u_2", begin("u_2")) {
		t.Fatal("scans of other users must not interfere")
	}
}

// unreachableTracker fails like a tracker whose backing store is down.
type unreachableTracker struct{}

func (unreachableTracker) Begin(context.Context, string) (uint64, error) {
	return 0, errors.New("connection refused")
}

func (unreachableTracker) IsCurrent(context.Context, string, uint64) (bool, error) {
	return false, errors.New("connection refused")
}

func (unreachableTracker) Finish(context.Context, string, uint64) {}

func TestScanReportsUnavailableTracker(t *testing.T) {
	store := seededStore(t)
	svc := NewScanService(NewTagService(store.Tags()), newCatalog(store, nil), unreachableTracker{}, logger.Nop())
	if _, err := svc.Scan(context.Background(), "u_1", "abc123"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}
