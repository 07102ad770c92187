package service

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"strings"
)

type ProfileService interface {
	// SaveProfile creates or replaces the profile keyed by profile.ID.
	SaveProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error)
	FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	FetchGyms(ctx context.Context) ([]domain.Gym, error)
}

type profileService struct {
	profileRepo repository.UserProfileRepository
	gymRepo     repository.GymRepository
	catalog     CatalogService
	log         *logger.Logger
}

func NewProfileService(profileRepo repository.UserProfileRepository, gymRepo repository.GymRepository, catalog CatalogService, log *logger.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		gymRepo:     gymRepo,
		catalog:     catalog,
		log:         log.With("service", "ProfileService"),
	}
}

func (s *profileService) SaveProfile(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if profile == nil || strings.TrimSpace(profile.ID) == "" {
		return nil, invalid("profile id is required")
	}
	if strings.TrimSpace(profile.GymID) == "" {
		return nil, invalid("gym id is required")
	}

	// The gym must exist even when the caller sends its own snapshot.
	gym, err := s.catalog.LoadGym(ctx, profile.GymID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("gym " + profile.GymID + " does not exist")
		}
		return nil, err
	}
	if profile.Gym == nil {
		profile.Gym = gym
	}
	profile.ReconcileGym()

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.log.Error("failed to save profile", "userId", profile.ID, "error", err)
		return nil, mapRepoErr(err, ErrProfileNotFound)
	}
	return profile, nil
}

// FetchProfile always corrects the gym snapshot id to the authoritative GymID.
// Profiles stored without a snapshot get the current gym record embedded.
func (s *profileService) FetchProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("user id is required")
	}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err, ErrProfileNotFound)
	}
	if profile.Gym == nil && profile.GymID != "" {
		gym, err := s.catalog.LoadGym(ctx, profile.GymID)
		switch {
		case err == nil:
			profile.Gym = gym
		case errors.Is(err, ErrNotFound):
			s.log.Warn("profile references a missing gym", "userId", userID, "gymId", profile.GymID)
		default:
			return nil, err
		}
	}
	profile.ReconcileGym()
	return profile, nil
}

func (s *profileService) FetchGyms(ctx context.Context) ([]domain.Gym, error) {
	gyms, err := s.gymRepo.List(ctx)
	if err != nil {
		return nil, mapRepoErr(err, ErrGymNotFound)
	}
	for i := range gyms {
		gyms[i].ApplyDefaults()
	}
	return gyms, nil
}
