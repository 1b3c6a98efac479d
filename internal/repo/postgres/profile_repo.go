package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

type ProfileRecord struct {
	UserID      int64
	DisplayName string
	Username    string
	Bio         string
	Goal        string
	HeightCM    *int
	WeightKG    *int
	Interests   []string
	PhotoURL    string
	IsPremium   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProfileAttributes struct {
	Bio       string
	Goal      string
	HeightCM  *int
	WeightKG  *int
	Interests []string
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	user_id,
	display_name,
	COALESCE(username, ''),
	COALESCE(bio, ''),
	COALESCE(goal, ''),
	height_cm,
	weight_kg,
	interests,
	COALESCE(photo_url, ''),
	is_premium,
	created_at,
	updated_at`

// UpsertIdentity creates the profile on first registration and on repeat
// registrations touches only display_name and, when non-empty, username.
// All other attributes survive re-registration untouched.
func (r *ProfileRepo) UpsertIdentity(ctx context.Context, userID int64, username, displayName string) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO profiles (
	user_id,
	display_name,
	username,
	created_at,
	updated_at
) VALUES ($1, $2, $3, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
	display_name = EXCLUDED.display_name,
	username = CASE
		WHEN EXCLUDED.username <> '' THEN EXCLUDED.username
		ELSE profiles.username
	END,
	updated_at = NOW()
RETURNING`+profileColumns, userID, displayName, username)

	record, err := scanProfile(row)
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("upsert profile identity: %w", err)
	}

	return record, nil
}

func (r *ProfileRepo) Get(ctx context.Context, userID int64) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+profileColumns+`
FROM profiles
WHERE user_id = $1
`, userID)

	record, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfileRecord{}, ErrProfileNotFound
		}
		return ProfileRecord{}, fmt.Errorf("get profile: %w", err)
	}

	return record, nil
}

func (r *ProfileRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	if userID <= 0 {
		return false, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var one int
	err := r.pool.QueryRow(ctx, `
SELECT 1
FROM profiles
WHERE user_id = $1
LIMIT 1
`, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check profile exists: %w", err)
	}

	return true, nil
}

// UpdateAttributes overwrites exactly bio, goal, height, weight and
// interests. Identity and photo fields are left alone.
func (r *ProfileRepo) UpdateAttributes(ctx context.Context, userID int64, attrs ProfileAttributes) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	interests := attrs.Interests
	if interests == nil {
		interests = []string{}
	}

	row := r.pool.QueryRow(ctx, `
UPDATE profiles SET
	bio = $2,
	goal = $3,
	height_cm = $4,
	weight_kg = $5,
	interests = $6,
	updated_at = NOW()
WHERE user_id = $1
RETURNING`+profileColumns, userID, attrs.Bio, attrs.Goal, attrs.HeightCM, attrs.WeightKG, interests)

	record, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfileRecord{}, ErrProfileNotFound
		}
		return ProfileRecord{}, fmt.Errorf("update profile attributes: %w", err)
	}

	return record, nil
}

func (r *ProfileRepo) SetPhoto(ctx context.Context, userID int64, photoURL string) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
UPDATE profiles SET
	photo_url = $2,
	updated_at = NOW()
WHERE user_id = $1
RETURNING`+profileColumns, userID, photoURL)

	record, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfileRecord{}, ErrProfileNotFound
		}
		return ProfileRecord{}, fmt.Errorf("set profile photo: %w", err)
	}

	return record, nil
}

func scanProfile(row pgx.Row) (ProfileRecord, error) {
	var record ProfileRecord
	err := row.Scan(
		&record.UserID,
		&record.DisplayName,
		&record.Username,
		&record.Bio,
		&record.Goal,
		&record.HeightCM,
		&record.WeightKG,
		&record.Interests,
		&record.PhotoURL,
		&record.IsPremium,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return ProfileRecord{}, err
	}
	return record, nil
}
