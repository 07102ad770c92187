package service

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"strings"

	"github.com/google/uuid"
)

type FeedbackService interface {
	// Submit validates and appends a feedback entry.
	Submit(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
	// HasAskedFeedback reports whether the device was already shown the feedback prompt.
	HasAskedFeedback(ctx context.Context, deviceID string) (bool, error)
	MarkFeedbackAsked(ctx context.Context, deviceID string) error
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	deviceFlags  repository.DeviceFlagRepository
	catalog      CatalogService
	clock        Clock
	log          *logger.Logger
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	deviceFlags repository.DeviceFlagRepository,
	catalog CatalogService,
	clock Clock,
	log *logger.Logger,
) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		deviceFlags:  deviceFlags,
		catalog:      catalog,
		clock:        clock,
		log:          log.With("service", "FeedbackService"),
	}
}

func (s *feedbackService) Submit(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	if feedback == nil {
		return nil, invalid("feedback is required")
	}
	feedback.Comment = strings.TrimSpace(feedback.Comment)
	if err := validateRecord(feedback); err != nil {
		return nil, err
	}
	if !feedback.Answer.Valid() {
		return nil, invalid("unknown answer " + string(feedback.Answer))
	}
	if _, err := s.catalog.LoadGym(ctx, feedback.GymID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, invalid("gym " + feedback.GymID + " does not exist")
		}
		return nil, err
	}

	feedback.ID = uuid.NewString()
	feedback.Timestamp = s.clock.now().UTC()
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		s.log.Error("failed to store feedback", "gymId", feedback.GymID, "error", err)
		return nil, mapRepoErr(err, ErrNotFound)
	}
	s.log.Info("feedback received", "gymId", feedback.GymID, "rating", feedback.Rating, "platform", feedback.Platform)
	return feedback, nil
}

func (s *feedbackService) HasAskedFeedback(ctx context.Context, deviceID string) (bool, error) {
	if strings.TrimSpace(deviceID) == "" {
		return false, invalid("device id is required")
	}
	asked, err := s.deviceFlags.FeedbackAsked(ctx, deviceID)
	if err != nil {
		return false, mapRepoErr(err, ErrNotFound)
	}
	return asked, nil
}

func (s *feedbackService) MarkFeedbackAsked(ctx context.Context, deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return invalid("device id is required")
	}
	if err := s.deviceFlags.MarkFeedbackAsked(ctx, deviceID); err != nil {
		return mapRepoErr(err, ErrNotFound)
	}
	return nil
}
