package service

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"innovafit/gym-backend/internal/repository/memory"
	"sync"
	"testing"
	"time"
)

type mutableClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *mutableClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *mutableClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newLogService(store *memory.Store, clock *mutableClock) ExerciseLogService {
	return NewExerciseLogService(store.ExerciseLogs(), newCatalog(store, nil), clock.now, logger.Nop())
}

func TestRegisterLogIfNeededOncePerDay(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	clock := &mutableClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	svc := newLogService(store, clock)
	m := legPress()
	v := m.DefaultVideos[0]

	created, err := svc.RegisterLogIfNeeded(ctx, "u_1", v, m, time.UTC)
	if err != nil || !created {
		t.Fatalf("first call = %v, %v; want created", created, err)
	}

	clock.set(time.Date(2026, 10, 18, 21, 30, 0, 0, time.UTC))
	created, err = svc.RegisterLogIfNeeded(ctx, "u_1", v, m, time.UTC)
	if err != nil || created {
		t.Fatalf("second call same day = %v, %v; want not created", created, err)
	}

	clock.set(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	created, err = svc.RegisterLogIfNeeded(ctx, "u_1", v, m, time.UTC)
	if err != nil || !created {
		t.Fatalf("next day = %v, %v; want created", created, err)
	}

	logs := store.ExerciseLogEntries()
	if len(logs) != 2 {
		t.Fatalf("stored logs = %d, want 2", len(logs))
	}
	first := logs[0]
	if first.MainMuscle != "Cuádriceps" {
		t.Fatalf("MainMuscle = %q", first.MainMuscle)
	}
	if first.MachineName != "Prensa de Pierna" || first.VideoTitle != "Técnica básica" {
		t.Fatalf("denormalized names missing: %+v", first)
	}
	if first.Day != "2026-10-18" || !first.Timestamp.Equal(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("Day/Timestamp = %s / %v", first.Day, first.Timestamp)
	}
}

func TestRegisterLogIfNeededUsesCallerZone(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	ctx := context.Background()
	store := seededStore(t)
	// 23:00 in Lima on the 18th, then 01:00 in Lima on the 19th.
	clock := &mutableClock{t: time.Date(2026, 10, 19, 4, 0, 0, 0, time.UTC)}
	svc := newLogService(store, clock)
	m := legPress()

	if created, err := svc.RegisterLogIfNeeded(ctx, "u_1", m.DefaultVideos[0], m, lima); err != nil || !created {
		t.Fatalf("first = %v, %v", created, err)
	}
	clock.set(time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC))
	if created, err := svc.RegisterLogIfNeeded(ctx, "u_1", m.DefaultVideos[0], m, lima); err != nil || !created {
		t.Fatalf("after local midnight = %v, %v; want created", created, err)
	}
	logs := store.ExerciseLogEntries()
	if logs[0].Day != "2026-10-18" || logs[1].Day != "2026-10-19" {
		t.Fatalf("days = %s, %s", logs[0].Day, logs[1].Day)
	}
}

func TestRegisterLogIfNeededSeparatesUsersAndVideos(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := newLogService(store, &mutableClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)})
	m := legPress()

	calls := []struct {
		user  string
		video domain.Video
	}{
		{"u_1", m.DefaultVideos[0]},
		{"u_1", m.DefaultVideos[1]},
		{"u_2", m.DefaultVideos[0]},
	}
	for _, c := range calls {
		if created, err := svc.RegisterLogIfNeeded(ctx, c.user, c.video, m, time.UTC); err != nil || !created {
			t.Fatalf("RegisterLogIfNeeded(%s, %s) = %v, %v", c.user, c.video.ID, created, err)
		}
	}
}

func TestRegisterLogIfNeededValidatesInput(t *testing.T) {
	svc := newLogService(memory.NewStore(), &mutableClock{t: time.Now()})
	m := legPress()
	cases := []struct {
		name    string
		user    string
		machine domain.Machine
		video   domain.Video
	}{
		{"missing user", "", m, m.DefaultVideos[0]},
		{"missing machine", "u_1", domain.Machine{Name: "x"}, m.DefaultVideos[0]},
		{"missing video", "u_1", m, domain.Video{Title: "x"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := svc.RegisterLogIfNeeded(context.Background(), c.user, c.video, c.machine, time.UTC); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

// racingLogRepo hides existing logs from the range check, as if a concurrent
// request had inserted between the check and the insert.
type racingLogRepo struct {
	repository.ExerciseLogRepository
}

func (racingLogRepo) ExistsInRange(context.Context, string, string, time.Time, time.Time) (bool, error) {
	return false, nil
}

func TestRegisterLogIfNeededConcurrentDuplicateIsNotCreated(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	clock := &mutableClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	svc := NewExerciseLogService(racingLogRepo{store.ExerciseLogs()}, newCatalog(store, nil), clock.now, logger.Nop())
	m := legPress()

	var wg sync.WaitGroup
	results := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := svc.RegisterLogIfNeeded(ctx, "u_1", m.DefaultVideos[0], m, time.UTC)
			if err != nil {
				t.Errorf("RegisterLogIfNeeded() error = %v", err)
			}
			results <- created
		}()
	}
	wg.Wait()
	close(results)

	createdCount := 0
	for created := range results {
		if created {
			createdCount++
		}
	}
	if createdCount != 1 {
		t.Fatalf("created %d logs, want exactly 1", createdCount)
	}
}

type failingLogRepo struct {
	repository.ExerciseLogRepository
}

func (failingLogRepo) ExistsInRange(context.Context, string, string, time.Time, time.Time) (bool, error) {
	return false, repository.ErrUnavailable
}

func TestRegisterLogIfNeededSurfacesUnavailable(t *testing.T) {
	store := seededStore(t)
	svc := NewExerciseLogService(failingLogRepo{}, newCatalog(store, nil), Clock(time.Now), logger.Nop())
	m := legPress()
	if _, err := svc.RegisterLogIfNeeded(context.Background(), "u_1", m.DefaultVideos[0], m, time.UTC); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestLogExerciseLooksUpVideo(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := newLogService(store, &mutableClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)})

	if created, err := svc.LogExercise(ctx, "u_1", "m_1", "v_2", time.UTC); err != nil || !created {
		t.Fatalf("LogExercise() = %v, %v", created, err)
	}
	if _, err := svc.LogExercise(ctx, "u_1", "m_1", "v_missing", time.UTC); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("error = %v, want ErrVideoNotFound", err)
	}
	if _, err := svc.LogExercise(ctx, "u_1", "m_missing", "v_1", time.UTC); !errors.Is(err, ErrMachineNotFound) {
		t.Fatalf("error = %v, want ErrMachineNotFound", err)
	}
	if got := store.ExerciseLogEntries()[0].MainMuscle; got != "Glúteos" {
		t.Fatalf("MainMuscle = %q, want Glúteos", got)
	}
}

func TestLogExerciseForVideoStoredWithoutID(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	legacy := &domain.Machine{
		ID:   "m_legacy",
		Name: "Banco plano",
		DefaultVideos: []domain.Video{{
			Title:         "Press de banca",
			MusclesWorked: map[string]domain.Muscle{"Pecho": {Weight: 80}},
		}},
	}
	if err := store.Machines().Create(ctx, legacy); err != nil {
		t.Fatal(err)
	}
	catalog := newCatalog(store, nil)

	first, err := catalog.LoadMachine(ctx, "m_legacy")
	if err != nil {
		t.Fatalf("LoadMachine() error = %v", err)
	}
	second, err := catalog.LoadMachine(ctx, "m_legacy")
	if err != nil {
		t.Fatalf("LoadMachine() error = %v", err)
	}
	videoID := first.DefaultVideos[0].ID
	if videoID == "" || videoID != second.DefaultVideos[0].ID {
		t.Fatalf("video ids across loads = %q, %q; want equal and non-empty", videoID, second.DefaultVideos[0].ID)
	}

	clock := &mutableClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	svc := newLogService(store, clock)
	if created, err := svc.LogExercise(ctx, "u_1", "m_legacy", videoID, time.UTC); err != nil || !created {
		t.Fatalf("LogExercise() = %v, %v; want created", created, err)
	}
	if created, err := svc.LogExercise(ctx, "u_1", "m_legacy", videoID, time.UTC); err != nil || created {
		t.Fatalf("repeat LogExercise() = %v, %v; want deduplicated", created, err)
	}
}
