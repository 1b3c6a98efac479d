package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MadeInMinsk96/loveblr/internal/domain/enums"
	"github.com/MadeInMinsk96/loveblr/internal/domain/model"
	pgrepo "github.com/MadeInMinsk96/loveblr/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("profile not found")
)

type Store interface {
	UpsertIdentity(ctx context.Context, userID int64, username, displayName string) (pgrepo.ProfileRecord, error)
	Get(ctx context.Context, userID int64) (pgrepo.ProfileRecord, error)
	UpdateAttributes(ctx context.Context, userID int64, attrs pgrepo.ProfileAttributes) (pgrepo.ProfileRecord, error)
	SetPhoto(ctx context.Context, userID int64, photoURL string) (pgrepo.ProfileRecord, error)
}

type Cache interface {
	Get(ctx context.Context, userID int64) (model.Profile, bool, error)
	Set(ctx context.Context, profile model.Profile) error
	Invalidate(ctx context.Context, userID int64) error
}

type AttributesInput struct {
	Bio       string
	Goal      string
	HeightCM  *int
	WeightKG  *int
	Interests []string
}

type Service struct {
	store Store
	cache Cache
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AttachCache enables read-through caching of profile lookups. The cache is
// optional and strictly best-effort.
func (s *Service) AttachCache(cache Cache) {
	s.cache = cache
}

// Register creates the profile on first call and updates only the identity
// fields on repeat calls. Attribute and photo fields survive re-registration.
func (s *Service) Register(ctx context.Context, userID int64, username, displayName string) (model.Profile, error) {
	if userID <= 0 || strings.TrimSpace(displayName) == "" {
		return model.Profile{}, ErrValidation
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is not configured")
	}

	record, err := s.store.UpsertIdentity(ctx, userID, strings.TrimSpace(username), strings.TrimSpace(displayName))
	if err != nil {
		return model.Profile{}, fmt.Errorf("register profile: %w", err)
	}

	profile := mapRecord(record)
	s.refreshCache(ctx, profile)

	return profile, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, ErrValidation
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is not configured")
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
			return cached, nil
		}
	}

	record, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	profile := mapRecord(record)
	s.refreshCache(ctx, profile)

	return profile, nil
}

// UpdateAttributes overwrites exactly bio, goal, height, weight and the
// interests list. Free-text fields are stored as given; only the numeric
// fields are checked for sign.
func (s *Service) UpdateAttributes(ctx context.Context, userID int64, input AttributesInput) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, ErrValidation
	}
	if (input.HeightCM != nil && *input.HeightCM < 0) || (input.WeightKG != nil && *input.WeightKG < 0) {
		return model.Profile{}, ErrValidation
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is not configured")
	}

	record, err := s.store.UpdateAttributes(ctx, userID, pgrepo.ProfileAttributes{
		Bio:       input.Bio,
		Goal:      enums.NormalizeGoal(input.Goal).String(),
		HeightCM:  input.HeightCM,
		WeightKG:  input.WeightKG,
		Interests: input.Interests,
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("update profile attributes: %w", err)
	}

	s.invalidateCache(ctx, userID)

	return mapRecord(record), nil
}

func (s *Service) SetPhoto(ctx context.Context, userID int64, photoURL string) (model.Profile, error) {
	if userID <= 0 || strings.TrimSpace(photoURL) == "" {
		return model.Profile{}, ErrValidation
	}
	if s.store == nil {
		return model.Profile{}, fmt.Errorf("profile store is not configured")
	}

	record, err := s.store.SetPhoto(ctx, userID, strings.TrimSpace(photoURL))
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("set profile photo: %w", err)
	}

	s.invalidateCache(ctx, userID)

	return mapRecord(record), nil
}

func (s *Service) refreshCache(ctx context.Context, profile model.Profile) {
	if s.cache == nil {
		return
	}
	// A failed refresh only costs a future miss.
	_ = s.cache.Set(ctx, profile)
}

func (s *Service) invalidateCache(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	// Writes drop the entry; the next read repopulates it.
	_ = s.cache.Invalidate(ctx, userID)
}

func mapRecord(record pgrepo.ProfileRecord) model.Profile {
	interests := record.Interests
	if interests == nil {
		interests = []string{}
	}

	return model.Profile{
		UserID:      record.UserID,
		DisplayName: record.DisplayName,
		Username:    record.Username,
		Bio:         record.Bio,
		Goal:        enums.Goal(record.Goal),
		HeightCM:    record.HeightCM,
		WeightKG:    record.WeightKG,
		Interests:   interests,
		PhotoURL:    record.PhotoURL,
		IsPremium:   record.IsPremium,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
