package service

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"innovafit/gym-backend/internal/repository"
	"time"

	"github.com/google/uuid"
)

type ExerciseLogService interface {
	// RegisterLogIfNeeded records that userID completed video on machine today
	// (in loc). It reports created=false when the log already exists.
	RegisterLogIfNeeded(ctx context.Context, userID string, video domain.Video, machine domain.Machine, loc *time.Location) (created bool, err error)
	// LogExercise loads the machine and video by id, then calls RegisterLogIfNeeded.
	LogExercise(ctx context.Context, userID, machineID, videoID string, loc *time.Location) (created bool, err error)
}

type exerciseLogService struct {
	logRepo repository.ExerciseLogRepository
	catalog CatalogService
	clock   Clock
	log     *logger.Logger
}

func NewExerciseLogService(logRepo repository.ExerciseLogRepository, catalog CatalogService, clock Clock, log *logger.Logger) ExerciseLogService {
	return &exerciseLogService{
		logRepo: logRepo,
		catalog: catalog,
		clock:   clock,
		log:     log.With("service", "ExerciseLogService"),
	}
}

// RegisterLogIfNeeded keeps at most one log per user, video and calendar day.
// The range query turns repeat taps into a cheap no-op; the store's unique
// (userId, videoId, day) constraint settles concurrent double submissions.
// The timestamp comes from the server clock, never from the client.
func (s *exerciseLogService) RegisterLogIfNeeded(ctx context.Context, userID string, video domain.Video, machine domain.Machine, loc *time.Location) (bool, error) {
	if userID == "" {
		return false, invalid("user id is required")
	}
	if machine.ID == "" {
		return false, invalid("machine id is required")
	}
	if video.ID == "" {
		return false, invalid("video id is required")
	}
	if loc == nil {
		loc = time.UTC
	}

	now := s.clock.now()
	start, end := DayWindow(now, loc)

	exists, err := s.logRepo.ExistsInRange(ctx, userID, video.ID, start, end)
	if err != nil {
		return false, mapRepoErr(err, ErrNotFound)
	}
	if exists {
		return false, nil
	}

	entry := &domain.ExerciseLog{
		ID:           uuid.NewString(),
		UserID:       userID,
		MachineID:    machine.ID,
		MachineName:  machine.Name,
		VideoID:      video.ID,
		VideoTitle:   video.Title,
		MuscleGroups: video.MuscleGroups(),
		MainMuscle:   video.MainMuscle(),
		Timestamp:    now.UTC(),
		Day:          start.Format(domain.DayLayout),
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Debug("concurrent duplicate exercise log ignored", "userId", userID, "videoId", video.ID, "day", entry.Day)
			return false, nil
		}
		return false, mapRepoErr(err, ErrNotFound)
	}
	s.log.Info("exercise log created", "userId", userID, "videoId", video.ID, "machineId", machine.ID, "mainMuscle", entry.MainMuscle)
	return true, nil
}

func (s *exerciseLogService) LogExercise(ctx context.Context, userID, machineID, videoID string, loc *time.Location) (bool, error) {
	if userID == "" {
		return false, invalid("user id is required")
	}
	machine, err := s.catalog.LoadMachine(ctx, machineID)
	if err != nil {
		return false, err
	}
	video, ok := machine.FindVideo(videoID)
	if !ok {
		return false, ErrVideoNotFound
	}
	return s.RegisterLogIfNeeded(ctx, userID, *video, *machine, loc)
}
