package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/internal/study"
	"github.com/example/tenkanji/pkg/models"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError maps the error taxonomy onto HTTP status codes. Errors always
// go out as an {"error": ...} body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "time": s.now().UTC()})
}

type loginRequest struct {
	Initials string `json:"initials"`
}

// handleLogin registers the user on first login and returns the profile row.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("login", "", "invalid request body"))
		return
	}
	initials, ok := models.NormalizeInitials(req.Initials)
	if !ok {
		respondError(w, apperr.Validation("login", req.Initials, "initials must be 3 characters"))
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := s.users.CreateIfMissing(ctx, initials)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type userProfile struct {
	models.User
	MasteredCount int `json:"masteredCount"`
	TotalWords    int `json:"totalWords"`
	Streak        int `json:"streak"`
}

// handleGetUser returns the profile with mastery stats and the streak. The
// streak is advisory and never fails the response.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	initials, ok := models.NormalizeInitials(chi.URLParam(r, "initials"))
	if !ok {
		respondError(w, apperr.Validation("getUser", chi.URLParam(r, "initials"), "initials must be 3 characters"))
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := s.users.GetByInitials(ctx, initials)
	if err != nil {
		respondError(w, err)
		return
	}
	mastered, err := s.mastery.CountMastered(ctx, initials)
	if err != nil {
		respondError(w, err)
		return
	}
	statuses, err := s.selector.StatusList(ctx, initials)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, userProfile{
		User:          *user,
		MasteredCount: mastered,
		TotalWords:    len(statuses),
		Streak:        s.streaks.Current(ctx, initials, s.now()),
	})
}

type settingsRequest struct {
	ChunkSize int `json:"chunkSize"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	initials, ok := models.NormalizeInitials(chi.URLParam(r, "initials"))
	if !ok {
		respondError(w, apperr.Validation("updateSettings", chi.URLParam(r, "initials"), "initials must be 3 characters"))
		return
	}
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("updateSettings", initials, "invalid request body"))
		return
	}
	if req.ChunkSize <= 0 {
		respondError(w, apperr.Validation("updateSettings", initials, "chunkSize must be positive"))
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := s.users.UpdateChunkSize(ctx, initials, req.ChunkSize); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGetChunk(w http.ResponseWriter, r *http.Request) {
	initials := r.URL.Query().Get("initials")
	size := parseIntDefault(r.URL.Query().Get("size"), 0)
	mode := study.ModeNew
	if r.URL.Query().Get("mode") == string(study.ModeReview) {
		mode = study.ModeReview
	}
	log.Printf("[GET /words/chunk] mode=%s, size=%d, initials=%s", mode, size, initials)

	ctx, cancel := requestContext(r)
	defer cancel()
	chunk, err := s.selector.SelectChunk(ctx, initials, size, mode)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chunk)
}

func (s *Server) handleWordsStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	entries, err := s.selector.StatusList(ctx, r.URL.Query().Get("initials"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type progressRequest struct {
	Initials string              `json:"initials"`
	Results  []models.WordResult `json:"results"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("recordResults", "", "invalid request body"))
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := s.recorder.RecordResults(ctx, req.Initials, req.Results); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGetDaily(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	challenge, err := s.daily.Today(ctx, r.URL.Query().Get("initials"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, challenge)
}

type completeDailyRequest struct {
	Initials string              `json:"initials"`
	Score    int                 `json:"score"`
	Results  []models.WordResult `json:"results"`
}

type completeDailyResponse struct {
	Success bool   `json:"success"`
	Date    string `json:"date"`
	Score   int    `json:"score"`
	Streak  int    `json:"streak"`
}

func (s *Server) handleCompleteDaily(w http.ResponseWriter, r *http.Request) {
	var req completeDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("completeDailyChallenge", "", "invalid request body"))
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	challenge, err := s.daily.Complete(ctx, req.Initials, req.Score, req.Results)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, completeDailyResponse{
		Success: true,
		Date:    challenge.ChallengeDate,
		Score:   challenge.Score,
		Streak:  s.streaks.Current(ctx, challenge.UserInitials, s.now()),
	})
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
