package handlers

import (
	"context"
	"errors"
	"time"

	pgrepo "github.com/MadeInMinsk96/loveblr/internal/repo/postgres"
)

// profileStoreStub keeps profiles in memory with the same upsert semantics
// as the postgres repo: identity writes never touch attributes.
type profileStoreStub struct {
	records map[int64]pgrepo.ProfileRecord
	failing bool
}

func newProfileStoreStub() *profileStoreStub {
	return &profileStoreStub{records: map[int64]pgrepo.ProfileRecord{}}
}

func (s *profileStoreStub) UpsertIdentity(_ context.Context, userID int64, username, displayName string) (pgrepo.ProfileRecord, error) {
	if s.failing {
		return pgrepo.ProfileRecord{}, errors.New("store down")
	}
	record, ok := s.records[userID]
	if !ok {
		record = pgrepo.ProfileRecord{
			UserID:    userID,
			Interests: []string{},
			CreatedAt: time.Now().UTC(),
		}
	}
	record.DisplayName = displayName
	if username != "" {
		record.Username = username
	}
	record.UpdatedAt = time.Now().UTC()
	s.records[userID] = record
	return record, nil
}

func (s *profileStoreStub) Get(_ context.Context, userID int64) (pgrepo.ProfileRecord, error) {
	if s.failing {
		return pgrepo.ProfileRecord{}, errors.New("store down")
	}
	record, ok := s.records[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return record, nil
}

func (s *profileStoreStub) UpdateAttributes(_ context.Context, userID int64, attrs pgrepo.ProfileAttributes) (pgrepo.ProfileRecord, error) {
	record, ok := s.records[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	record.Bio = attrs.Bio
	record.Goal = attrs.Goal
	record.HeightCM = attrs.HeightCM
	record.WeightKG = attrs.WeightKG
	record.Interests = attrs.Interests
	record.UpdatedAt = time.Now().UTC()
	s.records[userID] = record
	return record, nil
}

func (s *profileStoreStub) SetPhoto(_ context.Context, userID int64, photoURL string) (pgrepo.ProfileRecord, error) {
	record, ok := s.records[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	record.PhotoURL = photoURL
	record.UpdatedAt = time.Now().UTC()
	s.records[userID] = record
	return record, nil
}

type candidateStoreStub struct {
	ids map[int64][]int64
}

func (s *candidateStoreStub) ListEligibleIDs(_ context.Context, viewerID int64) ([]int64, error) {
	return append([]int64(nil), s.ids[viewerID]...), nil
}
