package service

import (
	"context"
	"fmt"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/logger"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ScanResult pairs the resolved tag with its gym and machine.
type ScanResult struct {
	Tag     domain.TagRef   `json:"tag"`
	Gym     *domain.Gym     `json:"gym"`
	Machine *domain.Machine `json:"machine"`
}

// ScanTracker decides which of a user's in-flight scans is the latest.
// Generations must never be reused for the same user.
type ScanTracker interface {
	Begin(ctx context.Context, userID string) (uint64, error)
	IsCurrent(ctx context.Context, userID string, gen uint64) (bool, error)
	Finish(ctx context.Context, userID string, gen uint64)
}

// ScanCoordinator is the in-process ScanTracker, valid for a single instance.
// Generations come from a single counter so they are never reused, even after
// a user's entry is dropped.
type ScanCoordinator struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

func NewScanCoordinator() *ScanCoordinator {
	return &ScanCoordinator{latest: make(map[string]uint64)}
}

// Begin registers a new scan for userID and returns its generation.
func (c *ScanCoordinator) Begin(_ context.Context, userID string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.latest[userID] = c.next
	return c.next, nil
}

// IsCurrent reports whether gen is still the user's latest scan.
func (c *ScanCoordinator) IsCurrent(_ context.Context, userID string, gen uint64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest[userID] == gen, nil
}

// Finish drops the user's entry if gen is still the latest one.
func (c *ScanCoordinator) Finish(_ context.Context, userID string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest[userID] == gen {
		delete(c.latest, userID)
	}
}

type ScanService interface {
	// Scan resolves a QR payload into the gym and machine it points at.
	Scan(ctx context.Context, userID, payload string) (*ScanResult, error)
}

type scanService struct {
	tags    TagService
	catalog CatalogService
	coord   ScanTracker
	log     *logger.Logger
}

func NewScanService(tags TagService, catalog CatalogService, coord ScanTracker, log *logger.Logger) ScanService {
	return &scanService{
		tags:    tags,
		catalog: catalog,
		coord:   coord,
		log:     log.With("service", "ScanService"),
	}
}

// Scan loads the gym and the machine in parallel and fails if either fails.
// A scan overtaken by a newer scan from the same user returns ErrScanSuperseded
// and its results are dropped.
func (s *scanService) Scan(ctx context.Context, userID, payload string) (*ScanResult, error) {
	if userID == "" {
		return nil, invalid("user id is required")
	}
	tag, err := ParseTagPayload(payload)
	if err != nil {
		return nil, err
	}

	gen, err := s.coord.Begin(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: scan tracking: %v", ErrUnavailable, err)
	}
	defer s.coord.Finish(context.WithoutCancel(ctx), userID, gen)

	ref, err := s.tags.ResolveTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if err := s.checkCurrent(ctx, userID, gen); err != nil {
		return nil, err
	}

	var (
		gym     *domain.Gym
		machine *domain.Machine
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gym, err = s.catalog.LoadGym(gctx, ref.GymID)
		return err
	})
	g.Go(func() error {
		var err error
		machine, err = s.catalog.LoadMachine(gctx, ref.MachineID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.checkCurrent(ctx, userID, gen); err != nil {
		s.log.Debug("discarding scan", "userId", userID, "tag", tag, "error", err)
		return nil, err
	}
	return &ScanResult{Tag: *ref, Gym: gym, Machine: machine}, nil
}

func (s *scanService) checkCurrent(ctx context.Context, userID string, gen uint64) error {
	current, err := s.coord.IsCurrent(ctx, userID, gen)
	if err != nil {
		return fmt.Errorf("%w: scan tracking: %v", ErrUnavailable, err)
	}
	if !current {
		return ErrScanSuperseded
	}
	return nil
}
