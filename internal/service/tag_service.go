package service

import (
	"context"
	"errors"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/repository"
	"net/url"
	"strings"
)

type TagService interface {
	// ResolveTag maps a scanned tag to its gym and machine ids.
	ResolveTag(ctx context.Context, tag string) (*domain.TagRef, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// ResolveTag performs a single lookup with no retries. A missing record, a
// record that fails to decode, and a record with an empty id all resolve to
// ErrTagNotFound so the caller can prompt for a rescan.
func (s *tagService) ResolveTag(ctx context.Context, tag string) (*domain.TagRef, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, invalid("tag is required")
	}
	t, err := s.tagRepo.GetByID(ctx, tag)
	if err != nil {
		if errors.Is(err, repository.ErrDecode) {
			return nil, ErrTagNotFound
		}
		return nil, mapRepoErr(err, ErrTagNotFound)
	}
	if !t.Valid() {
		return nil, ErrTagNotFound
	}
	return &domain.TagRef{GymID: t.GymID, MachineID: t.MachineID}, nil
}

// ParseTagPayload extracts the tag from a scanned QR payload. URLs yield their
// "tag" query parameter, falling back to the last non-empty path segment;
// anything else is taken as the tag itself.
func ParseTagPayload(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", invalid("empty QR payload")
	}
	u, err := url.Parse(payload)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if strings.ContainsAny(payload, " /?#") {
			return "", invalid("unrecognized QR payload")
		}
		return payload, nil
	}
	if tag := strings.TrimSpace(u.Query().Get("tag")); tag != "" {
		return tag, nil
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if last := segments[len(segments)-1]; last != "" {
		if unescaped, err := url.PathUnescape(last); err == nil {
			return unescaped, nil
		}
		return last, nil
	}
	return "", invalid("QR payload carries no tag")
}
