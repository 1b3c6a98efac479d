package candidates

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/MadeInMinsk96/loveblr/internal/domain/model"
	profilesvc "github.com/MadeInMinsk96/loveblr/internal/services/profiles"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrViewerNotFound = errors.New("viewer profile not found")
	ErrNoCandidates   = errors.New("no candidates left")
)

type Store interface {
	ListEligibleIDs(ctx context.Context, viewerID int64) ([]int64, error)
}

type ProfileProvider interface {
	Get(ctx context.Context, userID int64) (model.Profile, error)
}

type Service struct {
	store    Store
	profiles ProfileProvider

	// pick draws an index in [0, n); swapped out in tests.
	pick func(n int) int
}

func NewService(store Store, profiles ProfileProvider) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
		pick:     rand.IntN,
	}
}

// Pick returns one profile the viewer has not yet liked, drawn uniformly at
// random. A viewer is only ever shielded from profiles by their own outgoing
// likes: being liked by someone does not remove them from that someone's
// deck, and there is no undo.
func (s *Service) Pick(ctx context.Context, viewerID int64) (model.Profile, error) {
	if viewerID <= 0 {
		return model.Profile{}, ErrValidation
	}
	if s.store == nil || s.profiles == nil {
		return model.Profile{}, fmt.Errorf("candidate dependencies are not configured")
	}

	if _, err := s.profiles.Get(ctx, viewerID); err != nil {
		if errors.Is(err, profilesvc.ErrNotFound) {
			return model.Profile{}, ErrViewerNotFound
		}
		return model.Profile{}, fmt.Errorf("load viewer profile: %w", err)
	}

	eligible, err := s.store.ListEligibleIDs(ctx, viewerID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("list eligible candidates: %w", err)
	}
	if len(eligible) == 0 {
		return model.Profile{}, ErrNoCandidates
	}

	chosen := eligible[s.pick(len(eligible))]

	candidate, err := s.profiles.Get(ctx, chosen)
	if err != nil {
		return model.Profile{}, fmt.Errorf("load candidate profile: %w", err)
	}

	return candidate, nil
}
