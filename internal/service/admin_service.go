package service

import (
	"context"
	"errors"
	"fmt"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"innovafit/gym-backend/internal/storage"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaUpload is a presigned PUT target for a machine image or video.
type MediaUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminService holds the operator-side catalog writes.
type AdminService interface {
	CreateGym(ctx context.Context, gym *domain.Gym) (*domain.Gym, error)
	CreateMachine(ctx context.Context, machine *domain.Machine) (*domain.Machine, error)
	CreateTag(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	// LinkMachine is idempotent.
	LinkMachine(ctx context.Context, gymID, machineID string) error
	MediaUploadURL(ctx context.Context, machineID, fileName, contentType string) (*MediaUpload, error)
}

type adminService struct {
	gymRepo        repository.GymRepository
	machineRepo    repository.MachineRepository
	tagRepo        repository.TagRepository
	gymMachineRepo repository.GymMachineRepository
	catalog        CatalogService
	media          storage.FileStorage
	mediaExpiry    time.Duration
	clock          Clock
	log            *logger.Logger
}

func NewAdminService(
	gymRepo repository.GymRepository,
	machineRepo repository.MachineRepository,
	tagRepo repository.TagRepository,
	gymMachineRepo repository.GymMachineRepository,
	catalog CatalogService,
	media storage.FileStorage,
	mediaExpiry time.Duration,
	clock Clock,
	log *logger.Logger,
) AdminService {
	if mediaExpiry <= 0 {
		mediaExpiry = storage.DefaultPresignedURLExpiry
	}
	return &adminService{
		gymRepo:        gymRepo,
		machineRepo:    machineRepo,
		tagRepo:        tagRepo,
		gymMachineRepo: gymMachineRepo,
		catalog:        catalog,
		media:          media,
		mediaExpiry:    mediaExpiry,
		clock:          clock,
		log:            log.With("service", "AdminService"),
	}
}

func (s *adminService) CreateGym(ctx context.Context, gym *domain.Gym) (*domain.Gym, error) {
	if gym == nil {
		return nil, invalid("gym is required")
	}
	gym.Name = strings.TrimSpace(gym.Name)
	if err := validateRecord(gym); err != nil {
		return nil, err
	}
	if gym.ID == "" {
		gym.ID = uuid.NewString()
	}
	gym.ApplyDefaults()
	if err := s.gymRepo.Create(ctx, gym); err != nil {
		return nil, mapRepoErr(err, ErrGymNotFound)
	}
	s.log.Info("gym created", "gymId", gym.ID, "name", gym.Name)
	return gym, nil
}

func (s *adminService) CreateMachine(ctx context.Context, machine *domain.Machine) (*domain.Machine, error) {
	if machine == nil {
		return nil, invalid("machine is required")
	}
	machine.Name = strings.TrimSpace(machine.Name)
	if err := validateRecord(machine); err != nil {
		return nil, err
	}
	if machine.GymID != "" {
		if err := s.requireGym(ctx, machine.GymID); err != nil {
			return nil, err
		}
	}
	if machine.ID == "" {
		machine.ID = uuid.NewString()
	}
	machine.EnsureIDs()
	if err := s.machineRepo.Create(ctx, machine); err != nil {
		return nil, mapRepoErr(err, ErrMachineNotFound)
	}
	s.log.Info("machine created", "machineId", machine.ID, "videos", len(machine.DefaultVideos))
	return machine, nil
}

// CreateTag registers a QR tag. Both referenced records must already exist.
func (s *adminService) CreateTag(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	if tag == nil {
		return nil, invalid("tag is required")
	}
	tag.ID = strings.TrimSpace(tag.ID)
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	if parsed, err := ParseTagPayload(tag.ID); err != nil || parsed != tag.ID {
		return nil, invalid("tag must be a bare token")
	}
	if !tag.Valid() {
		return nil, invalid("tag requires gymId and machineId")
	}
	if err := s.requireGym(ctx, tag.GymID); err != nil {
		return nil, err
	}
	if err := s.requireMachine(ctx, tag.MachineID); err != nil {
		return nil, err
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, mapRepoErr(err, ErrTagNotFound)
	}
	s.log.Info("tag created", "tag", tag.ID, "gymId", tag.GymID, "machineId", tag.MachineID)
	return tag, nil
}

func (s *adminService) LinkMachine(ctx context.Context, gymID, machineID string) error {
	if err := s.requireGym(ctx, gymID); err != nil {
		return err
	}
	if err := s.requireMachine(ctx, machineID); err != nil {
		return err
	}
	if err := s.gymMachineRepo.Link(ctx, gymID, machineID); err != nil {
		return mapRepoErr(err, ErrNotFound)
	}
	return nil
}

// MediaUploadURL presigns a PUT under machines/<machineId>/<uuid>-<fileName>.
func (s *adminService) MediaUploadURL(ctx context.Context, machineID, fileName, contentType string) (*MediaUpload, error) {
	if s.media == nil {
		return nil, ErrMediaStorageDisabled
	}
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	if base == "" || base == "." || base == "/" {
		return nil, invalid("file name is required")
	}
	if strings.TrimSpace(contentType) == "" {
		return nil, invalid("content type is required")
	}
	if err := s.requireMachine(ctx, machineID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("machines/%s/%s-%s", machineID, uuid.NewString(), base)
	url, err := s.media.GeneratePresignedUploadURL(ctx, key, contentType, s.mediaExpiry)
	if err != nil {
		s.log.Error("failed to presign media upload", "machineId", machineID, "error", err)
		return nil, fmt.Errorf("could not prepare media upload: %w", err)
	}
	return &MediaUpload{
		UploadURL: url,
		ObjectKey: key,
		ExpiresAt: s.clock.now().Add(s.mediaExpiry).UTC(),
	}, nil
}

// requireGym turns a missing gym into invalid input, since the caller named it.
func (s *adminService) requireGym(ctx context.Context, gymID string) error {
	if _, err := s.catalog.LoadGym(ctx, gymID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("gym " + gymID + " does not exist")
		}
		return err
	}
	return nil
}

func (s *adminService) requireMachine(ctx context.Context, machineID string) error {
	if _, err := s.catalog.LoadMachine(ctx, machineID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return invalid("machine " + machineID + " does not exist")
		}
		return err
	}
	return nil
}
