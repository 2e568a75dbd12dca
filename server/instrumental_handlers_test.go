package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SadaaFM/config"
	"SadaaFM/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInstrumentalRepo is an in-memory InstrumentalRepository mirroring the
// MySQL implementation's semantics, including (nil, nil) for unknown ids.
type fakeInstrumentalRepo struct {
	items map[string]*model.Instrumental
	order []string
}

func newFakeRepo() *fakeInstrumentalRepo {
	return &fakeInstrumentalRepo{items: make(map[string]*model.Instrumental)}
}

func (f *fakeInstrumentalRepo) Create(ctx context.Context, req *model.CreateInstrumentalRequest) (*model.Instrumental, error) {
	ins := &model.Instrumental{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Mood:              req.Mood,
		Duration:          req.Duration,
		DurationFormatted: req.DurationFormatted,
		IsPremium:         req.IsPremium,
		IsFeatured:        req.IsFeatured,
		AudioURL:          req.AudioURL,
		Ringtone:          req.Ringtone,
		ThumbnailColor:    req.ThumbnailColor,
		FileSize:          req.FileSize,
		PreviewStart:      req.PreviewStart,
		PreviewEnd:        req.PreviewEnd,
		CreatedAt:         time.Now().UTC(),
	}
	f.items[ins.ID] = ins
	f.order = append(f.order, ins.ID)
	return ins, nil
}

func (f *fakeInstrumentalRepo) GetByID(ctx context.Context, id string) (*model.Instrumental, error) {
	ins, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *ins
	return &copied, nil
}

// Listings are newest-first, like the MySQL implementation's
// ORDER BY created_at DESC.
func (f *fakeInstrumentalRepo) GetAll(ctx context.Context, isPremium *bool) ([]*model.Instrumental, error) {
	out := make([]*model.Instrumental, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		ins := f.items[f.order[i]]
		if isPremium != nil && ins.IsPremium != *isPremium {
			continue
		}
		copied := *ins
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeInstrumentalRepo) GetFeatured(ctx context.Context) ([]*model.Instrumental, error) {
	out := make([]*model.Instrumental, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		if ins := f.items[f.order[i]]; ins.IsFeatured {
			copied := *ins
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeInstrumentalRepo) Update(ctx context.Context, id string, req *model.UpdateInstrumentalRequest) (*model.Instrumental, error) {
	ins, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	if req.Title != nil {
		ins.Title = *req.Title
	}
	if req.Mood != nil {
		ins.Mood = *req.Mood
	}
	if req.Duration != nil {
		ins.Duration = *req.Duration
	}
	if req.DurationFormatted != nil {
		ins.DurationFormatted = *req.DurationFormatted
	}
	if req.IsPremium != nil {
		ins.IsPremium = *req.IsPremium
	}
	if req.IsFeatured != nil {
		ins.IsFeatured = *req.IsFeatured
	}
	if req.AudioURL != nil {
		ins.AudioURL = *req.AudioURL
	}
	if req.Ringtone != nil {
		ins.Ringtone = *req.Ringtone
	}
	if req.ThumbnailColor != nil {
		ins.ThumbnailColor = *req.ThumbnailColor
	}
	if req.FileSize != nil {
		ins.FileSize = *req.FileSize
	}
	if req.PreviewStart != nil {
		ins.PreviewStart = req.PreviewStart
	}
	if req.PreviewEnd != nil {
		ins.PreviewEnd = req.PreviewEnd
	}
	copied := *ins
	return &copied, nil
}

func (f *fakeInstrumentalRepo) IncrementPlayCount(ctx context.Context, id string) (*model.Instrumental, error) {
	ins, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	ins.PlayCount++
	copied := *ins
	return &copied, nil
}

// fakePlayEventRepo records which instrumentals had play events appended.
type fakePlayEventRepo struct {
	recorded []string
}

func (f *fakePlayEventRepo) Record(ctx context.Context, instrumentalID string) error {
	f.recorded = append(f.recorded, instrumentalID)
	return nil
}

func (f *fakePlayEventRepo) CountByInstrumental(ctx context.Context, instrumentalID string) (int64, error) {
	var n int64
	for _, id := range f.recorded {
		if id == instrumentalID {
			n++
		}
	}
	return n, nil
}

func newTestRouter(repo *fakeInstrumentalRepo, plays *fakePlayEventRepo) *mux.Router {
	cfg := &config.Config{PublicBaseURL: "http://localhost:8080", MinioBucket: "sadaafm"}
	h := NewAPIHandler(repo, plays, cfg)

	router := mux.NewRouter()
	router.HandleFunc("/api/", h.RootHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals", h.GetInstrumentalsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals/featured", h.GetFeaturedHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals", h.CreateInstrumentalHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/instrumentals/{id}", h.GetInstrumentalHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/instrumentals/{id}", h.UpdateInstrumentalHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/instrumentals/{id}/play", h.PlayHandler).Methods(http.MethodPost)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInstrumental(t *testing.T, rec *httptest.ResponseRecorder) model.Instrumental {
	t.Helper()
	var ins model.Instrumental
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ins))
	return ins
}

func TestRootHandler(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakePlayEventRepo{})

	rec := doJSON(t, router, http.MethodGet, "/api/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sadaa Instrumentals API")
}

func TestCreateThenFetchReturnsExactRingtone(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakePlayEventRepo{})
	const ringtoneURL = "https://azjankari.in/audio/song2.mp3"

	rec := doJSON(t, router, http.MethodPost, "/api/instrumentals", model.CreateInstrumentalRequest{
		Title:    "Desert Winds",
		Ringtone: ringtoneURL,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeInstrumental(t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, ringtoneURL, created.Ringtone)
	assert.False(t, created.CreatedAt.IsZero())

	rec = doJSON(t, router, http.MethodGet, "/api/instrumentals/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeInstrumental(t, rec)
	assert.Equal(t, ringtoneURL, fetched.Ringtone)
}

func TestListAndFeaturedPassRingtoneUnchanged(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakePlayEventRepo{})

	_, err := repo.Create(context.Background(), &model.CreateInstrumentalRequest{
		Title:      "Nasheed of Dawn",
		IsFeatured: true,
		Ringtone:   "https://azjankari.in/audio/song1_ringtone.mp3",
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &model.CreateInstrumentalRequest{
		Title: "Morning Dhikr",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/instrumentals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []model.Instrumental
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&all))
	require.Len(t, all, 2)
	assert.Equal(t, "Morning Dhikr", all[0].Title, "listings are newest-first")
	assert.Empty(t, all[0].Ringtone)
	assert.Equal(t, "https://azjankari.in/audio/song1_ringtone.mp3", all[1].Ringtone)

	rec = doJSON(t, router, http.MethodGet, "/api/instrumentals/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var featured []model.Instrumental
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&featured))
	require.Len(t, featured, 1)
	assert.Equal(t, "Nasheed of Dawn", featured[0].Title)
	assert.Equal(t, "https://azjankari.in/audio/song1_ringtone.mp3", featured[0].Ringtone)
}

func TestListPremiumFilter(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakePlayEventRepo{})

	_, err := repo.Create(context.Background(), &model.CreateInstrumentalRequest{Title: "Premium One", IsPremium: true})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &model.CreateInstrumentalRequest{Title: "Free One"})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/instrumentals?is_premium=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var premium []model.Instrumental
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&premium))
	require.Len(t, premium, 1)
	assert.Equal(t, "Premium One", premium[0].Title)

	rec = doJSON(t, router, http.MethodGet, "/api/instrumentals?is_premium=banana", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRingtoneThenRefetch(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakePlayEventRepo{})

	created, err := repo.Create(context.Background(), &model.CreateInstrumentalRequest{Title: "Desert Winds"})
	require.NoError(t, err)

	newRingtone := "https://azjankari.in/audio/song2.mp3"
	rec := doJSON(t, router, http.MethodPut, "/api/instrumentals/"+created.ID,
		map[string]string{"ringtone": newRingtone})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeInstrumental(t, rec)
	assert.Equal(t, newRingtone, updated.Ringtone)
	assert.Equal(t, "Desert Winds", updated.Title, "untouched fields must survive a partial update")

	rec = doJSON(t, router, http.MethodGet, "/api/instrumentals/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, newRingtone, decodeInstrumental(t, rec).Ringtone)
}

func TestUpdateClearsRingtone(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakePlayEventRepo{})

	created, err := repo.Create(context.Background(), &model.CreateInstrumentalRequest{
		Title:    "Desert Winds",
		Ringtone: "https://azjankari.in/audio/song2.mp3",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPut, "/api/instrumentals/"+created.ID,
		map[string]string{"ringtone": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeInstrumental(t, rec).Ringtone)
}

func TestUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakePlayEventRepo{})

	created, err := repo.Create(context.Background(), &model.CreateInstrumentalRequest{
		Title:    "Desert Winds",
		Ringtone: "https://azjankari.in/audio/song2.mp3",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPut, "/api/instrumentals/"+uuid.NewString(),
		map[string]string{"ringtone": "https://example.com/other.mp3"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The one existing record is untouched.
	survivor, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
	assert.Equal(t, "https://azjankari.in/audio/song2.mp3", survivor.Ringtone)
	assert.Len(t, repo.items, 1)
}

func TestPlayIncrementsCountAndRecordsEvent(t *testing.T) {
	repo := newFakeRepo()
	plays := &fakePlayEventRepo{}
	router := newTestRouter(repo, plays)

	created, err := repo.Create(context.Background(), &model.CreateInstrumentalRequest{Title: "Nasheed of Dawn"})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/instrumentals/%s/play", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID        string `json:"id"`
		PlayCount int64  `json:"play_count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, int64(1), resp.PlayCount)
	assert.Equal(t, []string{created.ID}, plays.recorded)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/instrumentals/%s/play", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(2), resp.PlayCount)
}

func TestPlayUnknownID(t *testing.T) {
	plays := &fakePlayEventRepo{}
	router := newTestRouter(newFakeRepo(), plays)

	rec := doJSON(t, router, http.MethodPost, "/api/instrumentals/"+uuid.NewString()+"/play", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, plays.recorded)
}

func TestCreateRequiresTitle(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakePlayEventRepo{})

	rec := doJSON(t, router, http.MethodPost, "/api/instrumentals", model.CreateInstrumentalRequest{
		Ringtone: "https://azjankari.in/audio/song2.mp3",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakePlayEventRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/instrumentals", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownInstrumental(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakePlayEventRepo{})

	rec := doJSON(t, router, http.MethodGet, "/api/instrumentals/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
