package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/MadeInMinsk96/loveblr/internal/app/apiapp"
	pgrepo "github.com/MadeInMinsk96/loveblr/internal/repo/postgres"
	candidatesvc "github.com/MadeInMinsk96/loveblr/internal/services/candidates"
	likessvc "github.com/MadeInMinsk96/loveblr/internal/services/likes"
	mediasvc "github.com/MadeInMinsk96/loveblr/internal/services/media"
	profilesvc "github.com/MadeInMinsk96/loveblr/internal/services/profiles"
)

// memoryStore backs the whole API with maps so the full HTTP surface can be
// exercised without postgres. Likes follow the same rules as the SQL layer:
// the pair lock serializes writers and MarkMutual flips both directions.
type memoryStore struct {
	mu       sync.Mutex
	profiles map[int64]pgrepo.ProfileRecord
	likes    map[[2]int64]*pgrepo.LikeRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		profiles: map[int64]pgrepo.ProfileRecord{},
		likes:    map[[2]int64]*pgrepo.LikeRecord{},
	}
}

func (s *memoryStore) UpsertIdentity(_ context.Context, userID int64, username, displayName string) (pgrepo.ProfileRecord, error) {
	record, ok := s.profiles[userID]
	if !ok {
		record = pgrepo.ProfileRecord{UserID: userID, Interests: []string{}, CreatedAt: time.Now().UTC()}
	}
	record.DisplayName = displayName
	if username != "" {
		record.Username = username
	}
	record.UpdatedAt = time.Now().UTC()
	s.profiles[userID] = record
	return record, nil
}

func (s *memoryStore) Get(_ context.Context, userID int64) (pgrepo.ProfileRecord, error) {
	record, ok := s.profiles[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return record, nil
}

func (s *memoryStore) Exists(_ context.Context, userID int64) (bool, error) {
	_, ok := s.profiles[userID]
	return ok, nil
}

func (s *memoryStore) UpdateAttributes(_ context.Context, userID int64, attrs pgrepo.ProfileAttributes) (pgrepo.ProfileRecord, error) {
	record, ok := s.profiles[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	record.Bio = attrs.Bio
	record.Goal = attrs.Goal
	record.HeightCM = attrs.HeightCM
	record.WeightKG = attrs.WeightKG
	record.Interests = attrs.Interests
	record.UpdatedAt = time.Now().UTC()
	s.profiles[userID] = record
	return record, nil
}

func (s *memoryStore) SetPhoto(_ context.Context, userID int64, photoURL string) (pgrepo.ProfileRecord, error) {
	record, ok := s.profiles[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	record.PhotoURL = photoURL
	record.UpdatedAt = time.Now().UTC()
	s.profiles[userID] = record
	return record, nil
}

func (s *memoryStore) ListEligibleIDs(_ context.Context, viewerID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for id := range s.profiles {
		if id == viewerID {
			continue
		}
		if _, liked := s.likes[[2]int64{viewerID, id}]; liked {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memoryStore) AcquirePairLock(context.Context, pgx.Tx, int64, int64) error {
	s.mu.Lock()
	return nil
}

func (s *memoryStore) releasePairLock() {
	s.mu.Unlock()
}

func (s *memoryStore) GetLike(_ context.Context, _ pgx.Tx, fromUserID, toUserID int64) (pgrepo.LikeRecord, error) {
	record, ok := s.likes[[2]int64{fromUserID, toUserID}]
	if !ok {
		return pgrepo.LikeRecord{}, pgrepo.ErrLikeNotFound
	}
	return *record, nil
}

func (s *memoryStore) CreateLike(_ context.Context, _ pgx.Tx, fromUserID, toUserID int64) error {
	key := [2]int64{fromUserID, toUserID}
	if _, ok := s.likes[key]; ok {
		return nil
	}
	s.likes[key] = &pgrepo.LikeRecord{FromUserID: fromUserID, ToUserID: toUserID, CreatedAt: time.Now().UTC()}
	return nil
}

func (s *memoryStore) MarkMutual(_ context.Context, _ pgx.Tx, userA, userB int64) error {
	for _, key := range [][2]int64{{userA, userB}, {userB, userA}} {
		if record, ok := s.likes[key]; ok {
			record.IsMutual = true
		}
	}
	return nil
}

// likeStoreAdapter renames the memory store's like methods to the interface
// the like service expects.
type likeStoreAdapter struct {
	store *memoryStore
}

func (a likeStoreAdapter) AcquirePairLock(ctx context.Context, tx pgx.Tx, userA, userB int64) error {
	return a.store.AcquirePairLock(ctx, tx, userA, userB)
}

func (a likeStoreAdapter) Get(ctx context.Context, tx pgx.Tx, fromUserID, toUserID int64) (pgrepo.LikeRecord, error) {
	return a.store.GetLike(ctx, tx, fromUserID, toUserID)
}

func (a likeStoreAdapter) Create(ctx context.Context, tx pgx.Tx, fromUserID, toUserID int64) error {
	return a.store.CreateLike(ctx, tx, fromUserID, toUserID)
}

func (a likeStoreAdapter) MarkMutual(ctx context.Context, tx pgx.Tx, userA, userB int64) error {
	return a.store.MarkMutual(ctx, tx, userA, userB)
}

type memoryObjectStorage struct{}

func (memoryObjectStorage) EnsureBucket(context.Context) error { return nil }

func (memoryObjectStorage) PutPhoto(_ context.Context, _ string, body io.Reader, _ int64, _ string) error {
	_, err := io.Copy(io.Discard, body)
	return err
}

func (memoryObjectStorage) ObjectURL(key string) string {
	return "http://localhost:9000/loveblr-photos/" + key
}

func newAPIServer(t *testing.T) (*httptest.Server, *memoryStore) {
	t.Helper()

	store := newMemoryStore()
	profileService := profilesvc.NewService(store)
	candidateService := candidatesvc.NewService(store, profileService)
	likeService := likessvc.NewService(likessvc.Dependencies{
		LikeStore: likeStoreAdapter{store: store},
		Profiles:  store,
		Tx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			err := fn(ctx, nil)
			store.releasePairLock()
			return err
		},
	})
	mediaService := mediasvc.NewService(memoryObjectStorage{})

	r := chi.NewRouter()
	apiapp.RegisterRoutes(r, apiapp.Dependencies{
		ProfileService:   profileService,
		CandidateService: candidateService,
		LikeService:      likeService,
		MediaService:     mediaService,
		MaxPhotoBytes:    10 << 20,
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, store
}

func TestMutualLikeScenario(t *testing.T) {
	ts, _ := newAPIServer(t)

	people := []struct {
		id   int64
		name string
	}{
		{1, "Ann"},
		{2, "Bo"},
		{3, "Cy"},
	}
	for _, p := range people {
		status, _ := postJSON(t, ts, "/api/v1/register", map[string]any{
			"tg_id":      p.id,
			"first_name": p.name,
		})
		if status != http.StatusOK {
			t.Fatalf("register %s: unexpected status %d", p.name, status)
		}
	}

	status, body := putJSON(t, ts, "/api/v1/profile/1", map[string]any{
		"bio":       "coffee and climbing",
		"goal":      "relationship",
		"interests": []string{"climbing"},
	})
	if status != http.StatusOK {
		t.Fatalf("update profile: unexpected status %d body %s", status, body)
	}

	photoStatus, photoBody := uploadPhoto(t, ts, 1, "ann.png")
	if photoStatus != http.StatusOK {
		t.Fatalf("upload photo: unexpected status %d body %s", photoStatus, photoBody)
	}
	var photo struct {
		PhotoURL string `json:"photo_url"`
	}
	if err := json.Unmarshal([]byte(photoBody), &photo); err != nil {
		t.Fatalf("decode photo response: %v", err)
	}
	if photo.PhotoURL == "" {
		t.Fatalf("expected photo url after upload")
	}

	// Ann sees Bo or Cy, never herself, never a repeat after liking.
	seen := map[int64]bool{}
	for i := 0; i < 2; i++ {
		candidate := fetchCandidate(t, ts, 1)
		if candidate == nil {
			t.Fatalf("expected a candidate on draw %d", i+1)
		}
		if candidate.UserID == 1 {
			t.Fatalf("viewer offered to themselves")
		}
		if seen[candidate.UserID] {
			t.Fatalf("candidate %d repeated after like", candidate.UserID)
		}
		seen[candidate.UserID] = true

		likeStatus, likeBody := postJSON(t, ts, "/api/v1/like", map[string]any{
			"from_user_id": int64(1),
			"to_user_id":   candidate.UserID,
		})
		if likeStatus != http.StatusOK {
			t.Fatalf("like: unexpected status %d body %s", likeStatus, likeBody)
		}
	}

	if candidate := fetchCandidate(t, ts, 1); candidate != nil {
		t.Fatalf("expected exhausted deck, got candidate %d", candidate.UserID)
	}

	// Bo likes Ann back: this closes the pair, so exactly this call
	// reports the match.
	status, body = postJSON(t, ts, "/api/v1/like", map[string]any{
		"from_user_id": int64(2),
		"to_user_id":   int64(1),
	})
	if status != http.StatusOK {
		t.Fatalf("reciprocal like: unexpected status %d body %s", status, body)
	}
	var like struct {
		AlreadyLiked bool `json:"already_liked"`
		Created      bool `json:"created"`
		IsMatch      bool `json:"is_match"`
	}
	if err := json.Unmarshal([]byte(body), &like); err != nil {
		t.Fatalf("decode like response: %v", err)
	}
	if !like.Created || !like.IsMatch {
		t.Fatalf("expected created match, got %+v", like)
	}

	// Repeating the winning like is a no-op, not a second match.
	status, body = postJSON(t, ts, "/api/v1/like", map[string]any{
		"from_user_id": int64(2),
		"to_user_id":   int64(1),
	})
	if status != http.StatusOK {
		t.Fatalf("repeat like: unexpected status %d", status)
	}
	if err := json.Unmarshal([]byte(body), &like); err != nil {
		t.Fatalf("decode repeat like response: %v", err)
	}
	if like.Created || like.IsMatch || !like.AlreadyLiked {
		t.Fatalf("expected idempotent repeat, got %+v", like)
	}

	// Being liked does not hide Ann from Cy's deck.
	candidate := fetchCandidate(t, ts, 3)
	if candidate == nil {
		t.Fatalf("expected a candidate for Cy")
	}

	status, _ = postJSON(t, ts, "/api/v1/like", map[string]any{
		"from_user_id": int64(1),
		"to_user_id":   int64(1),
	})
	if status != http.StatusBadRequest {
		t.Fatalf("self like: unexpected status %d", status)
	}
}

type candidateProfile struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
}

func fetchCandidate(t *testing.T, ts *httptest.Server, viewerID int64) *candidateProfile {
	t.Helper()

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/candidate/%d", ts.URL, viewerID))
	if err != nil {
		t.Fatalf("get candidate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get candidate: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Candidate *candidateProfile `json:"candidate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode candidate response: %v", err)
	}
	return payload.Candidate
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body map[string]any) (int, string) {
	t.Helper()
	return doJSON(t, ts, http.MethodPost, path, body)
}

func putJSON(t *testing.T, ts *httptest.Server, path string, body map[string]any) (int, string) {
	t.Helper()
	return doJSON(t, ts, http.MethodPut, path, body)
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body map[string]any) (int, string) {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, string(payload)
}

func uploadPhoto(t *testing.T, ts *httptest.Server, userID int64, fileName string) (int, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, "fake image bytes"); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	resp, err := http.Post(
		fmt.Sprintf("%s/api/v1/profile/%d/photo", ts.URL, userID),
		writer.FormDataContentType(),
		&buf,
	)
	if err != nil {
		t.Fatalf("upload photo: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, string(payload)
}
