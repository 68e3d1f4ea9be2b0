package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/internal/daily"
	"github.com/example/tenkanji/internal/study"
	"github.com/example/tenkanji/pkg/models"
)

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) GetByInitials(_ context.Context, initials string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[initials]
	if !ok {
		return nil, apperr.NotFound("getUser", initials, "user not found")
	}
	return user, nil
}

func (f *fakeUsers) CreateIfMissing(_ context.Context, initials string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[initials]; ok {
		return user, nil
	}
	user := &models.User{Initials: initials, ChunkSize: 10}
	f.users[initials] = user
	return user, nil
}

func (f *fakeUsers) UpdateChunkSize(_ context.Context, initials string, chunkSize int) error {
	user, ok := f.users[initials]
	if !ok {
		return apperr.NotFound("updateSettings", initials, "user not found")
	}
	user.ChunkSize = chunkSize
	return nil
}

type fakeMastery struct{ count int }

func (f *fakeMastery) CountMastered(context.Context, string) (int, error) { return f.count, nil }

type fakeSelector struct {
	chunk   *study.Chunk
	entries []study.WordStatusEntry
	err     error
}

func (f *fakeSelector) SelectChunk(_ context.Context, initials string, _ int, _ study.Mode) (*study.Chunk, error) {
	if _, ok := models.NormalizeInitials(initials); !ok {
		return nil, apperr.Validation("selectChunk", initials, "initials must be 3 letters")
	}
	return f.chunk, f.err
}

func (f *fakeSelector) StatusList(_ context.Context, initials string) ([]study.WordStatusEntry, error) {
	if _, ok := models.NormalizeInitials(initials); !ok {
		return nil, apperr.Validation("wordsStatus", initials, "initials must be 3 letters")
	}
	return f.entries, f.err
}

type fakeRecorder struct {
	recorded [][]models.WordResult
	err      error
}

func (f *fakeRecorder) RecordResults(_ context.Context, _ string, results []models.WordResult) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, results)
	return nil
}

type fakeDaily struct {
	challenge *daily.Challenge
	completed *models.DailyChallenge
	err       error
}

func (f *fakeDaily) Today(context.Context, string) (*daily.Challenge, error) {
	return f.challenge, f.err
}

func (f *fakeDaily) Complete(_ context.Context, initials string, score int, results []models.WordResult) (*models.DailyChallenge, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(results) == 0 {
		return nil, apperr.Validation("completeDailyChallenge", initials, "results are required")
	}
	return f.completed, nil
}

type fakeStreaks struct{ streak int }

func (f *fakeStreaks) Current(context.Context, string, time.Time) int { return f.streak }

func newTestServer() (*Server, *fakeUsers, *fakeRecorder) {
	users := &fakeUsers{users: make(map[string]*models.User)}
	recorder := &fakeRecorder{}
	selector := &fakeSelector{
		chunk: &study.Chunk{
			Chunk:         []models.ChunkWord{{Word: models.Word{Word: "学校"}, ID: 3, Index: 3}},
			StartIndex:    3,
			TotalMastered: 2,
			TotalWords:    12,
		},
		entries: []study.WordStatusEntry{{Word: "学校", Status: models.StatusMastered}},
	}
	dailySvc := &fakeDaily{
		challenge: &daily.Challenge{Date: "2024-01-01", Chunk: []models.ChunkWord{}, TotalKanjiWords: 11},
		completed: &models.DailyChallenge{UserInitials: "ABC", ChallengeDate: "2024-01-01", Score: 7},
	}
	srv := New(users, &fakeMastery{count: 2}, selector, recorder, dailySvc, &fakeStreaks{streak: 4})
	return srv, users, recorder
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestLoginCreatesUser(t *testing.T) {
	srv, users, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodPost, "/api/login", `{"initials":"abc"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, users.users, "ABC")

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "ABC", user.Initials)
	assert.Equal(t, 10, user.ChunkSize)
}

func TestLoginRejectsBadInitials(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/login", `{"initials":"ab"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/login", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserProfile(t *testing.T) {
	srv, users, _ := newTestServer()
	users.users["ABC"] = &models.User{Initials: "ABC", ChunkSize: 15}

	rec := doRequest(t, srv, http.MethodGet, "/api/user/abc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "ABC", profile["initials"])
	assert.Equal(t, float64(2), profile["masteredCount"])
	assert.Equal(t, float64(1), profile["totalWords"])
	assert.Equal(t, float64(4), profile["streak"])
}

func TestGetUserNotFound(t *testing.T) {
	srv, _, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/user/XYZ", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSettings(t *testing.T) {
	srv, users, _ := newTestServer()
	users.users["ABC"] = &models.User{Initials: "ABC", ChunkSize: 10}

	rec := doRequest(t, srv, http.MethodPut, "/api/user/ABC/settings", `{"chunkSize":25}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, users.users["ABC"].ChunkSize)

	rec = doRequest(t, srv, http.MethodPut, "/api/user/ABC/settings", `{"chunkSize":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChunkPayloadShape(t *testing.T) {
	srv, _, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/words/chunk?initials=ABC&size=10&mode=new", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, float64(3), payload["startIndex"])
	assert.Equal(t, float64(2), payload["totalMastered"])
	assert.Equal(t, float64(12), payload["totalWords"])
	chunk, ok := payload["chunk"].([]any)
	require.True(t, ok)
	require.Len(t, chunk, 1)
	first := chunk[0].(map[string]any)
	assert.Equal(t, "学校", first["word"])
	assert.Equal(t, float64(3), first["id"])
	assert.Equal(t, float64(3), first["index"])
}

func TestGetChunkValidatesInitials(t *testing.T) {
	srv, _, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/words/chunk?initials=bogus1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordsStatus(t *testing.T) {
	srv, _, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/words/status?initials=ABC", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"word":"学校","status":2}]`, rec.Body.String())
}

func TestProgressRecords(t *testing.T) {
	srv, _, recorder := newTestServer()
	body := `{"initials":"ABC","results":[{"word":"学校","isCorrect":true},{"word":"山","isCorrect":false}]}`

	rec := doRequest(t, srv, http.MethodPost, "/api/progress", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, recorder.recorded, 1)
	assert.Len(t, recorder.recorded[0], 2)
}

func TestProgressStorageErrorIs500(t *testing.T) {
	srv, _, recorder := newTestServer()
	recorder.err = apperr.Storage("recordResults", "ABC", errors.New("db down"))

	rec := doRequest(t, srv, http.MethodPost, "/api/progress", `{"initials":"ABC","results":[{"word":"山","isCorrect":true}]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestGetDaily(t *testing.T) {
	srv, _, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodGet, "/api/daily?initials=ABC", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "2024-01-01", payload["date"])
	assert.Equal(t, float64(11), payload["totalKanjiWords"])
	assert.Equal(t, false, payload["completed"])
}

func TestCompleteDaily(t *testing.T) {
	srv, _, _ := newTestServer()
	body := `{"initials":"ABC","score":7,"results":[{"word":"学校","isCorrect":true}]}`

	rec := doRequest(t, srv, http.MethodPost, "/api/daily/complete", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload completeDailyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, "2024-01-01", payload.Date)
	assert.Equal(t, 7, payload.Score)
	assert.Equal(t, 4, payload.Streak)
}

func TestCompleteDailyValidation(t *testing.T) {
	srv, _, _ := newTestServer()
	rec := doRequest(t, srv, http.MethodPost, "/api/daily/complete", `{"initials":"ABC","score":0,"results":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
