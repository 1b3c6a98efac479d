package postgres

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrLikeNotFound = errors.New("like not found")

type LikeRepo struct {
	pool *pgxpool.Pool
}

type LikeRecord struct {
	FromUserID int64
	ToUserID   int64
	IsMutual   bool
	CreatedAt  time.Time
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// AcquirePairLock takes a transaction-scoped advisory lock keyed by the
// unordered user pair. Every like between the same two users, in either
// direction, serializes behind it, so the reverse-edge check and the mutual
// transition cannot interleave between concurrent requests.
func (r *LikeRepo) AcquirePairLock(ctx context.Context, tx pgx.Tx, userA, userB int64) error {
	if userA <= 0 || userB <= 0 {
		return fmt.Errorf("invalid pair lock payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, pairLockKey(userA, userB)); err != nil {
		return fmt.Errorf("acquire pair lock: %w", err)
	}

	return nil
}

func (r *LikeRepo) Get(ctx context.Context, tx pgx.Tx, fromUserID, toUserID int64) (LikeRecord, error) {
	if fromUserID <= 0 || toUserID <= 0 {
		return LikeRecord{}, fmt.Errorf("invalid like lookup payload")
	}
	if tx == nil {
		return LikeRecord{}, fmt.Errorf("transaction is required")
	}

	var record LikeRecord
	err := tx.QueryRow(ctx, `
SELECT from_user_id, to_user_id, is_mutual, created_at
FROM likes
WHERE from_user_id = $1 AND to_user_id = $2
`, fromUserID, toUserID).Scan(
		&record.FromUserID,
		&record.ToUserID,
		&record.IsMutual,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LikeRecord{}, ErrLikeNotFound
		}
		return LikeRecord{}, fmt.Errorf("lookup like: %w", err)
	}

	return record, nil
}

func (r *LikeRepo) Create(ctx context.Context, tx pgx.Tx, fromUserID, toUserID int64) error {
	if fromUserID <= 0 || toUserID <= 0 || fromUserID == toUserID {
		return fmt.Errorf("invalid like payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO likes (
	from_user_id,
	to_user_id,
	is_mutual,
	created_at
) VALUES ($1, $2, FALSE, NOW())
ON CONFLICT (from_user_id, to_user_id) DO NOTHING
`, fromUserID, toUserID); err != nil {
		return fmt.Errorf("create like: %w", err)
	}

	return nil
}

// MarkMutual flips is_mutual on both directed edges of the pair in a single
// statement, so the flags can never be observed set independently.
func (r *LikeRepo) MarkMutual(ctx context.Context, tx pgx.Tx, userA, userB int64) error {
	if userA <= 0 || userB <= 0 {
		return fmt.Errorf("invalid mutual payload")
	}
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	if _, err := tx.Exec(ctx, `
UPDATE likes SET is_mutual = TRUE
WHERE (from_user_id = $1 AND to_user_id = $2)
   OR (from_user_id = $2 AND to_user_id = $1)
`, userA, userB); err != nil {
		return fmt.Errorf("mark likes mutual: %w", err)
	}

	return nil
}

// pairLockKey maps an unordered user pair onto a stable int64 advisory lock
// key. The ids are ordered first, so (a, b) and (b, a) collide on purpose.
func pairLockKey(userA, userB int64) int64 {
	if userA > userB {
		userA, userB = userB, userA
	}

	h := fnv.New64a()
	var buf [16]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(userA >> (8 * i))
		buf[8+i] = byte(userB >> (8 * i))
	}
	_, _ = h.Write(buf[:])

	return int64(h.Sum64())
}
