package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PizzaHomicide/hypelist/internal/domain"
	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 1 << 20

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

// writeRepoError maps a repository failure to a status code
func writeRepoError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "anime not found")
		return
	}
	log.Error("Repository operation failed", "request_id", RequestIDFromContext(r.Context()), "error", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func decodeAnime(w http.ResponseWriter, r *http.Request) (domain.Anime, bool) {
	var anime domain.Anime
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&anime); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid anime: "+err.Error())
		return domain.Anime{}, false
	}
	return anime, true
}

func (s *Server) listAnime(w http.ResponseWriter, r *http.Request) {
	list, err := s.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) createAnime(w http.ResponseWriter, r *http.Request) {
	anime, ok := decodeAnime(w, r)
	if !ok {
		return
	}

	// The repository assigns IDs
	anime.ID = ""
	created, err := s.repo.Create(r.Context(), anime)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateAnime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	anime, ok := decodeAnime(w, r)
	if !ok {
		return
	}

	updated, err := s.repo.Update(r.Context(), id, anime)
	if err != nil {
		writeRepoError(w, r, err)
		return
	}
	if updated == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteAnime(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRepoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
