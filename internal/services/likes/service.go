package likes

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pgrepo "github.com/MadeInMinsk96/loveblr/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrSelfLike        = errors.New("self like is not allowed")
	ErrProfileNotFound = errors.New("profile not found")
)

type LikeStore interface {
	AcquirePairLock(ctx context.Context, tx pgx.Tx, userA, userB int64) error
	Get(ctx context.Context, tx pgx.Tx, fromUserID, toUserID int64) (pgrepo.LikeRecord, error)
	Create(ctx context.Context, tx pgx.Tx, fromUserID, toUserID int64) error
	MarkMutual(ctx context.Context, tx pgx.Tx, userA, userB int64) error
}

type ProfileStore interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// MatchNotifier is called after a match has been committed. Implementations
// own their delivery failures; the like itself never depends on them.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, userID, targetID int64)
}

type Result struct {
	AlreadyLiked bool
	Created      bool
	IsMatch      bool
}

type Dependencies struct {
	Pool      *pgxpool.Pool
	LikeStore LikeStore
	Profiles  ProfileStore
	Notifier  MatchNotifier

	// Tx replaces the pool-backed transaction runner when set. In-memory
	// stores supply their own runner here.
	Tx func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type Service struct {
	likeStore LikeStore
	profiles  ProfileStore
	notifier  MatchNotifier

	withTx func(context.Context, func(context.Context, pgx.Tx) error) error
}

func NewService(deps Dependencies) *Service {
	runner := deps.Tx
	if runner == nil {
		pool := deps.Pool
		runner = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		}
	}

	return &Service{
		likeStore: deps.LikeStore,
		profiles:  deps.Profiles,
		notifier:  deps.Notifier,
		withTx:    runner,
	}
}

// Like records a directed like from one user to another and reports whether
// it completed a match. Repeating the same like is a no-op apart from a
// reciprocity re-check, which lets an interrupted call converge on retry:
// if a previous attempt committed the edge but never reached the mutual
// transition, the retry repairs both flags.
//
// The whole read-check-write sequence runs under a pair-scoped advisory
// lock inside one transaction, so two concurrent mutual likes between the
// same pair serialize and exactly one of them observes the match.
func (s *Service) Like(ctx context.Context, fromID, toID int64) (Result, error) {
	if fromID <= 0 || toID <= 0 {
		return Result{}, ErrValidation
	}
	if fromID == toID {
		return Result{}, ErrSelfLike
	}
	if s.likeStore == nil || s.profiles == nil {
		return Result{}, fmt.Errorf("like dependencies are not configured")
	}

	for _, id := range []int64{fromID, toID} {
		exists, err := s.profiles.Exists(ctx, id)
		if err != nil {
			return Result{}, fmt.Errorf("check profile %d: %w", id, err)
		}
		if !exists {
			return Result{}, ErrProfileNotFound
		}
	}

	var result Result
	err := s.withTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.likeStore.AcquirePairLock(txCtx, tx, fromID, toID); err != nil {
			return err
		}

		_, err := s.likeStore.Get(txCtx, tx, fromID, toID)
		switch {
		case err == nil:
			result.AlreadyLiked = true
		case errors.Is(err, pgrepo.ErrLikeNotFound):
			if err := s.likeStore.Create(txCtx, tx, fromID, toID); err != nil {
				return err
			}
			result.Created = true
		default:
			return err
		}

		reverse, err := s.likeStore.Get(txCtx, tx, toID, fromID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrLikeNotFound) {
				return nil
			}
			return err
		}

		if result.Created {
			result.IsMatch = true
		}
		if result.Created || !reverse.IsMutual {
			if err := s.likeStore.MarkMutual(txCtx, tx, fromID, toID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if result.IsMatch && s.notifier != nil {
		s.notifier.NotifyMatch(ctx, fromID, toID)
		s.notifier.NotifyMatch(ctx, toID, fromID)
	}

	return result, nil
}
