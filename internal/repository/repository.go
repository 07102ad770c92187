package repository

import (
	"context"
	"innovafit/gym-backend/internal/domain"
	"time"
)

// Error constants for the repository layer.
var (
	ErrNotFound    = RepositoryError("not found")
	ErrDecode      = RepositoryError("stored document does not match the expected shape")
	ErrUnavailable = RepositoryError("store unavailable")
	ErrDuplicate   = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TagRepository reads the QR tag records.
type TagRepository interface {
	GetByID(ctx context.Context, tag string) (*domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) error
}

// GymRepository defines the interface for interacting with gym master records.
type GymRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Gym, error)
	List(ctx context.Context) ([]domain.Gym, error)
	Create(ctx context.Context, gym *domain.Gym) error
}

// MachineRepository defines the interface for interacting with machine records.
type MachineRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Machine, error)
	// GetByIDs batch-fetches machines. Documents that fail to decode are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Machine, error)
	// GetByGymID returns machines carrying a direct gymId field.
	GetByGymID(ctx context.Context, gymID string) ([]domain.Machine, error)
	Create(ctx context.Context, machine *domain.Machine) error
}

// GymMachineRepository manages the gym<->machine link collection.
type GymMachineRepository interface {
	GetByGymID(ctx context.Context, gymID string) ([]domain.GymMachine, error)
	// Link is idempotent.
	Link(ctx context.Context, gymID, machineID string) error
}

// UserProfileRepository stores member profiles keyed by auth subject id.
type UserProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

// ExerciseLogRepository stores completed-exercise events.
type ExerciseLogRepository interface {
	// Create inserts a log. Returns ErrDuplicate if a log with the same (userId, videoId, day) exists.
	Create(ctx context.Context, log *domain.ExerciseLog) error
	// ExistsInRange reports whether a log for (userID, videoID) has a timestamp in [from, to).
	ExistsInRange(ctx context.Context, userID, videoID string, from, to time.Time) (bool, error)
	// GetByUserInRange returns the user's logs in [from, to), newest first.
	GetByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.ExerciseLog, error)
}

// FeedbackRepository appends gym feedback. There is no update or delete.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
}

// DeviceFlagRepository keeps the per-device "already asked for feedback" flag.
type DeviceFlagRepository interface {
	FeedbackAsked(ctx context.Context, deviceID string) (bool, error)
	MarkFeedbackAsked(ctx context.Context, deviceID string) error
}
