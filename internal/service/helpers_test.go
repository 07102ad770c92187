package service

import (
	"context"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/repository"
	"innovafit/gym-backend/internal/repository/memory"
	"sync/atomic"
	"testing"
	"time"
)

// countingMachineRepo records how often the batch fetch runs.
type countingMachineRepo struct {
	repository.MachineRepository
	batchCalls atomic.Int32
}

func (c *countingMachineRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Machine, error) {
	c.batchCalls.Add(1)
	return c.MachineRepository.GetByIDs(ctx, ids)
}

// fakeStorage signs keys by prefixing them.
type fakeStorage struct{}

func (fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://upload.test/" + key, nil
}

func (fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.test/" + key, nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func legPress() domain.Machine {
	return domain.Machine{
		ID:          "m_1",
		Name:        "Prensa de Pierna",
		Description: "Empuje de piernas en plataforma inclinada",
		ImageURL:    "machines/m_1/prensa.jpg",
		DefaultVideos: []domain.Video{
			{
				ID:       "v_1",
				Title:    "Técnica básica",
				URLVideo: "https://cdn.test/v_1.mp4",
				Cover:    "machines/m_1/v_1.jpg",
				MusclesWorked: map[string]domain.Muscle{
					"Cuádriceps":     {Weight: 50},
					"Glúteos":        {Weight: 25},
					"Isquiotibiales": {Weight: 25},
				},
				Segments: []domain.Segment{
					{ID: "s_1", Start: 0, End: 4000, Tip: "Espalda apoyada"},
					{ID: "s_2", Start: 4000, End: 9000, Tip: "No bloquees las rodillas"},
				},
			},
			{
				ID:            "v_2",
				Title:         "Variante unilateral",
				MusclesWorked: map[string]domain.Muscle{"Glúteos": {Weight: 60}, "Cuádriceps": {Weight: 40}},
			},
		},
	}
}

// seededStore returns a store with the "InnovaFit Gym" scenario loaded.
func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.Gyms().Create(ctx, &domain.Gym{ID: "gym_1", Name: "InnovaFit Gym", Address: "Av. Siempre Viva 123", IsActive: true}))
	must(store.Gyms().Create(ctx, &domain.Gym{ID: "gym_2", Name: "Otro Gym", Color: "#123456"}))
	m := legPress()
	must(store.Machines().Create(ctx, &m))
	must(store.Machines().Create(ctx, &domain.Machine{ID: "m_2", Name: "Polea Alta"}))
	must(store.Tags().Create(ctx, &domain.Tag{ID: "abc123", GymID: "gym_1", MachineID: "m_1"}))
	must(store.GymMachines().Link(ctx, "gym_1", "m_2"))
	must(store.GymMachines().Link(ctx, "gym_1", "m_1"))
	return store
}
