// Package memory provides in-process implementations of the repository
// interfaces. They back the "memory" database driver for local runs and
// serve as fakes in service and handler tests.
package memory

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/repository"
	"sort"
	"sync"
	"time"
)

// Store holds every collection behind a single lock.
type Store struct {
	mu          sync.RWMutex
	tags        map[string]domain.Tag
	gyms        map[string]domain.Gym
	machines    map[string]domain.Machine
	links       []domain.GymMachine
	profiles    map[string]domain.UserProfile
	logs        []domain.ExerciseLog
	feedback    []domain.Feedback
	deviceFlags map[string]bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tags:        make(map[string]domain.Tag),
		gyms:        make(map[string]domain.Gym),
		machines:    make(map[string]domain.Machine),
		profiles:    make(map[string]domain.UserProfile),
		deviceFlags: make(map[string]bool),
	}
}

// Tags returns the store's tag repository.
func (s *Store) Tags() repository.TagRepository { return tagRepo{s} }

// Gyms returns the store's gym repository.
func (s *Store) Gyms() repository.GymRepository { return gymRepo{s} }

// Machines returns the store's machine repository.
func (s *Store) Machines() repository.MachineRepository { return machineRepo{s} }

// GymMachines returns the store's link repository.
func (s *Store) GymMachines() repository.GymMachineRepository { return gymMachineRepo{s} }

// Profiles returns the store's profile repository.
func (s *Store) Profiles() repository.UserProfileRepository { return profileRepo{s} }

// ExerciseLogs returns the store's exercise log repository.
func (s *Store) ExerciseLogs() repository.ExerciseLogRepository { return exerciseLogRepo{s} }

// Feedback returns the store's feedback repository.
func (s *Store) Feedback() repository.FeedbackRepository { return feedbackRepo{s} }

// DeviceFlags returns the store's device flag repository.
func (s *Store) DeviceFlags() repository.DeviceFlagRepository { return deviceFlagRepo{s} }

// FeedbackEntries returns a copy of all stored feedback.
func (s *Store) FeedbackEntries() []domain.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Feedback(nil), s.feedback...)
}

// ExerciseLogEntries returns a copy of all stored exercise logs.
func (s *Store) ExerciseLogEntries() []domain.ExerciseLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ExerciseLog(nil), s.logs...)
}

type tagRepo struct{ s *Store }

func (r tagRepo) GetByID(_ context.Context, tag string) (*domain.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tags[tag]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r tagRepo) Create(_ context.Context, tag *domain.Tag) error {
	if tag.ID == "" || !tag.Valid() {
		return errors.New("tag, gymId and machineId are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.tags[tag.ID]; exists {
		return repository.ErrDuplicate
	}
	r.s.tags[tag.ID] = *tag
	return nil
}

type gymRepo struct{ s *Store }

func (r gymRepo) GetByID(_ context.Context, id string) (*domain.Gym, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.gyms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	g.ApplyDefaults()
	return &g, nil
}

func (r gymRepo) List(_ context.Context) ([]domain.Gym, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	gyms := make([]domain.Gym, 0, len(r.s.gyms))
	for _, g := range r.s.gyms {
		g.ApplyDefaults()
		gyms = append(gyms, g)
	}
	sort.Slice(gyms, func(i, j int) bool { return gyms[i].Name < gyms[j].Name })
	return gyms, nil
}

func (r gymRepo) Create(_ context.Context, gym *domain.Gym) error {
	if gym.ID == "" || gym.Name == "" {
		return errors.New("gym ID and name are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.gyms[gym.ID]; exists {
		return repository.ErrDuplicate
	}
	r.s.gyms[gym.ID] = *gym
	return nil
}

type machineRepo struct{ s *Store }

func (r machineRepo) GetByID(_ context.Context, id string) (*domain.Machine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.machines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneMachine(m), nil
}

func (r machineRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Machine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	machines := make([]domain.Machine, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.s.machines[id]; ok {
			machines = append(machines, *cloneMachine(m))
		}
	}
	return machines, nil
}

func (r machineRepo) GetByGymID(_ context.Context, gymID string) ([]domain.Machine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	machines := make([]domain.Machine, 0)
	for _, m := range r.s.machines {
		if m.GymID == gymID {
			machines = append(machines, *cloneMachine(m))
		}
	}
	sort.Slice(machines, func(i, j int) bool { return machines[i].Name < machines[j].Name })
	return machines, nil
}

func (r machineRepo) Create(_ context.Context, machine *domain.Machine) error {
	if machine.ID == "" || machine.Name == "" {
		return errors.New("machine ID and name are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.machines[machine.ID]; exists {
		return repository.ErrDuplicate
	}
	r.s.machines[machine.ID] = *cloneMachine(*machine)
	return nil
}

// cloneMachine copies the video slice so callers cannot mutate stored state.
func cloneMachine(m domain.Machine) *domain.Machine {
	videos := make([]domain.Video, len(m.DefaultVideos))
	for i, v := range m.DefaultVideos {
		v.Segments = append([]domain.Segment(nil), v.Segments...)
		videos[i] = v
	}
	m.DefaultVideos = videos
	return &m
}

type gymMachineRepo struct{ s *Store }

func (r gymMachineRepo) GetByGymID(_ context.Context, gymID string) ([]domain.GymMachine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	links := make([]domain.GymMachine, 0)
	for _, l := range r.s.links {
		if l.GymID == gymID {
			links = append(links, l)
		}
	}
	return links, nil
}

func (r gymMachineRepo) Link(_ context.Context, gymID, machineID string) error {
	if gymID == "" || machineID == "" {
		return errors.New("gym ID and machine ID are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.links {
		if l.GymID == gymID && l.MachineID == machineID {
			return nil
		}
	}
	r.s.links = append(r.s.links, domain.GymMachine{GymID: gymID, MachineID: machineID})
	return nil
}

type profileRepo struct{ s *Store }

func (r profileRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Gym != nil {
		gym := *p.Gym
		p.Gym = &gym
	}
	return &p, nil
}

func (r profileRepo) Upsert(_ context.Context, profile *domain.UserProfile) error {
	if profile.ID == "" {
		return errors.New("profile ID is required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.s.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	stored := *profile
	if profile.Gym != nil {
		gym := *profile.Gym
		stored.Gym = &gym
	}
	r.s.profiles[profile.ID] = stored
	return nil
}

type exerciseLogRepo struct{ s *Store }

func (r exerciseLogRepo) Create(_ context.Context, entry *domain.ExerciseLog) error {
	if entry.ID == "" || entry.UserID == "" || entry.VideoID == "" || entry.Day == "" {
		return errors.New("exercise log requires id, userId, videoId and day")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.logs {
		if l.UserID == entry.UserID && l.VideoID == entry.VideoID && l.Day == entry.Day {
			return repository.ErrDuplicate
		}
	}
	stored := *entry
	stored.MuscleGroups = append([]string(nil), entry.MuscleGroups...)
	r.s.logs = append(r.s.logs, stored)
	return nil
}

func (r exerciseLogRepo) ExistsInRange(_ context.Context, userID, videoID string, from, to time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.logs {
		if l.UserID == userID && l.VideoID == videoID && inRange(l.Timestamp, from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (r exerciseLogRepo) GetByUserInRange(_ context.Context, userID string, from, to time.Time) ([]domain.ExerciseLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	logs := make([]domain.ExerciseLog, 0)
	for _, l := range r.s.logs {
		if l.UserID == userID && inRange(l.Timestamp, from, to) {
			logs = append(logs, l)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	return logs, nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

type feedbackRepo struct{ s *Store }

func (r feedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	if feedback.ID == "" || feedback.GymID == "" {
		return errors.New("feedback ID and gym ID are required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.feedback = append(r.s.feedback, *feedback)
	return nil
}

type deviceFlagRepo struct{ s *Store }

func (r deviceFlagRepo) FeedbackAsked(_ context.Context, deviceID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.deviceFlags[deviceID], nil
}

func (r deviceFlagRepo) MarkFeedbackAsked(_ context.Context, deviceID string) error {
	if deviceID == "" {
		return errors.New("device ID is required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deviceFlags[deviceID] = true
	return nil
}
