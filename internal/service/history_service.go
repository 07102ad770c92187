package service

import (
	"context"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/repository"
	"sort"
	"strings"
	"time"
)

// DefaultRecentLogs is the RecentLogs limit used when none is given.
const DefaultRecentLogs = 5

// WeeklySummary is the history screen's view of the current week.
type WeeklySummary struct {
	WeekStart          time.Time            `json:"weekStart"`
	WeekEnd            time.Time            `json:"weekEnd"`
	TotalLogs          int                  `json:"totalLogs"`
	MuscleDistribution map[string]int       `json:"muscleDistribution"`
	WeekdayCounts      [7]int               `json:"weekdayCounts"` // Monday first
	Recent             []domain.ExerciseLog `json:"recent"`
	Logs               []domain.ExerciseLog `json:"logs"`
}

type HistoryService interface {
	// FetchLogsForCurrentWeek returns the user's logs from Monday 00:00 in loc,
	// newest first.
	FetchLogsForCurrentWeek(ctx context.Context, userID string, loc *time.Location) ([]domain.ExerciseLog, error)
	WeeklySummary(ctx context.Context, userID string, loc *time.Location) (*WeeklySummary, error)
}

type historyService struct {
	logRepo repository.ExerciseLogRepository
	clock   Clock
}

func NewHistoryService(logRepo repository.ExerciseLogRepository, clock Clock) HistoryService {
	return &historyService{logRepo: logRepo, clock: clock}
}

func (s *historyService) FetchLogsForCurrentWeek(ctx context.Context, userID string, loc *time.Location) ([]domain.ExerciseLog, error) {
	_, _, logs, err := s.currentWeek(ctx, userID, loc)
	return logs, err
}

func (s *historyService) WeeklySummary(ctx context.Context, userID string, loc *time.Location) (*WeeklySummary, error) {
	start, end, logs, err := s.currentWeek(ctx, userID, loc)
	if err != nil {
		return nil, err
	}
	return &WeeklySummary{
		WeekStart:          start,
		WeekEnd:            end,
		TotalLogs:          len(logs),
		MuscleDistribution: MuscleDistribution(logs),
		WeekdayCounts:      WeekdayCounts(logs, loc),
		Recent:             RecentLogs(logs, DefaultRecentLogs),
		Logs:               logs,
	}, nil
}

func (s *historyService) currentWeek(ctx context.Context, userID string, loc *time.Location) (time.Time, time.Time, []domain.ExerciseLog, error) {
	if strings.TrimSpace(userID) == "" {
		return time.Time{}, time.Time{}, nil, invalid("user id is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	start, end := WeekWindow(s.clock.now(), loc)
	logs, err := s.logRepo.GetByUserInRange(ctx, userID, start, end)
	if err != nil {
		return time.Time{}, time.Time{}, nil, mapRepoErr(err, ErrNotFound)
	}
	sortNewestFirst(logs)
	return start, end, logs, nil
}

// MuscleDistribution counts, per muscle, the logs whose MuscleGroups include it.
func MuscleDistribution(logs []domain.ExerciseLog) map[string]int {
	dist := make(map[string]int)
	seen := make(map[string]struct{})
	for _, l := range logs {
		clear(seen)
		for _, m := range l.MuscleGroups {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			dist[m]++
		}
	}
	return dist
}

// RecentLogs returns up to limit logs, newest first. limit <= 0 means DefaultRecentLogs.
func RecentLogs(logs []domain.ExerciseLog, limit int) []domain.ExerciseLog {
	if limit <= 0 {
		limit = DefaultRecentLogs
	}
	sorted := make([]domain.ExerciseLog, len(logs))
	copy(sorted, logs)
	sortNewestFirst(sorted)
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// WeekdayCounts buckets logs by local weekday, Monday at index 0.
func WeekdayCounts(logs []domain.ExerciseLog, loc *time.Location) [7]int {
	if loc == nil {
		loc = time.UTC
	}
	var counts [7]int
	for _, l := range logs {
		counts[(int(l.Timestamp.In(loc).Weekday())+6)%7]++
	}
	return counts
}

func sortNewestFirst(logs []domain.ExerciseLog) {
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
}
