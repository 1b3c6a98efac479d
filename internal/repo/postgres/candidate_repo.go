package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CandidateRepo struct {
	pool *pgxpool.Pool
}

func NewCandidateRepo(pool *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{pool: pool}
}

// ListEligibleIDs returns every profile id the viewer may still be shown:
// everyone except the viewer and the targets of the viewer's own outgoing
// likes. Incoming likes do not exclude a profile. The whole eligible set is
// read in one statement, so it reflects a single committed snapshot of the
// viewer's edges.
func (r *CandidateRepo) ListEligibleIDs(ctx context.Context, viewerID int64) ([]int64, error) {
	if viewerID <= 0 {
		return nil, fmt.Errorf("invalid viewer id")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT p.user_id
FROM profiles p
WHERE
	p.user_id <> $1
	AND NOT EXISTS (
		SELECT 1
		FROM likes l
		WHERE l.from_user_id = $1
			AND l.to_user_id = p.user_id
	)
ORDER BY p.user_id
`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list eligible candidates: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 64)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan candidate id: %w", err)
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate eligible candidates: %w", rows.Err())
	}

	return ids, nil
}
