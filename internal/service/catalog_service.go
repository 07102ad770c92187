package service

import (
	"context"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"innovafit/gym-backend/internal/storage"
	"strings"
	"time"
)

type CatalogService interface {
	LoadGym(ctx context.Context, gymID string) (*domain.Gym, error)
	LoadMachine(ctx context.Context, machineID string) (*domain.Machine, error)
	// LoadMachinesForGym returns every machine currently linked to the gym.
	LoadMachinesForGym(ctx context.Context, gymID string) ([]domain.Machine, error)
}

type catalogService struct {
	gymRepo        repository.GymRepository
	machineRepo    repository.MachineRepository
	gymMachineRepo repository.GymMachineRepository
	media          storage.FileStorage // nil when media signing is disabled
	mediaExpiry    time.Duration
	log            *logger.Logger
}

// NewCatalogService creates the catalog loader. media may be nil.
func NewCatalogService(
	gymRepo repository.GymRepository,
	machineRepo repository.MachineRepository,
	gymMachineRepo repository.GymMachineRepository,
	media storage.FileStorage,
	mediaExpiry time.Duration,
	log *logger.Logger,
) CatalogService {
	return &catalogService{
		gymRepo:        gymRepo,
		machineRepo:    machineRepo,
		gymMachineRepo: gymMachineRepo,
		media:          media,
		mediaExpiry:    mediaExpiry,
		log:            log.With("service", "CatalogService"),
	}
}

func (s *catalogService) LoadGym(ctx context.Context, gymID string) (*domain.Gym, error) {
	if strings.TrimSpace(gymID) == "" {
		return nil, invalid("gym id is required")
	}
	gym, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		return nil, mapRepoErr(err, ErrGymNotFound)
	}
	gym.ApplyDefaults()
	return gym, nil
}

func (s *catalogService) LoadMachine(ctx context.Context, machineID string) (*domain.Machine, error) {
	if strings.TrimSpace(machineID) == "" {
		return nil, invalid("machine id is required")
	}
	machine, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, mapRepoErr(err, ErrMachineNotFound)
	}
	s.prepare(ctx, machine)
	return machine, nil
}

// LoadMachinesForGym resolves links first: the link records give the machine
// ids, which are then batch-fetched. An empty link list skips the batch fetch.
// Machines that name the gym in their own gymId field are appended after the
// linked ones, without duplicates.
func (s *catalogService) LoadMachinesForGym(ctx context.Context, gymID string) ([]domain.Machine, error) {
	if strings.TrimSpace(gymID) == "" {
		return nil, invalid("gym id is required")
	}
	links, err := s.gymMachineRepo.GetByGymID(ctx, gymID)
	if err != nil {
		return nil, mapRepoErr(err, ErrGymNotFound)
	}

	ids := make([]string, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		if l.MachineID == "" || seen[l.MachineID] {
			continue
		}
		seen[l.MachineID] = true
		ids = append(ids, l.MachineID)
	}

	machines := make([]domain.Machine, 0, len(ids))
	if len(ids) > 0 {
		fetched, err := s.machineRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, mapRepoErr(err, ErrMachineNotFound)
		}
		// Keep link order regardless of the store's return order.
		byID := make(map[string]domain.Machine, len(fetched))
		for _, m := range fetched {
			byID[m.ID] = m
		}
		for _, id := range ids {
			if m, ok := byID[id]; ok {
				machines = append(machines, m)
			}
		}
	}

	direct, err := s.machineRepo.GetByGymID(ctx, gymID)
	if err != nil {
		return nil, mapRepoErr(err, ErrMachineNotFound)
	}
	for _, m := range direct {
		if !seen[m.ID] {
			seen[m.ID] = true
			machines = append(machines, m)
		}
	}

	for i := range machines {
		s.prepare(ctx, &machines[i])
	}
	return machines, nil
}

// prepare fills generated ids and swaps stored media keys for signed URLs.
func (s *catalogService) prepare(ctx context.Context, m *domain.Machine) {
	m.EnsureIDs()
	if s.media == nil {
		return
	}
	m.ImageURL = s.sign(ctx, m.ImageURL)
	for i := range m.DefaultVideos {
		v := &m.DefaultVideos[i]
		v.URLVideo = s.sign(ctx, v.URLVideo)
		v.Cover = s.sign(ctx, v.Cover)
	}
}

func (s *catalogService) sign(ctx context.Context, ref string) string {
	if !storage.IsObjectKey(ref) {
		return ref
	}
	signed, err := s.media.GeneratePresignedDownloadURL(ctx, ref, s.mediaExpiry)
	if err != nil {
		s.log.Warn("media signing failed, returning stored key", "key", ref, "error", err)
		return ref
	}
	return signed
}
