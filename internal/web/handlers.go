package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-vault/internal/faceauth"
	"github.com/kozaktomas/face-vault/internal/store"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.service.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not list users")
		return
	}
	if users == nil {
		users = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"count": len(users),
	})
}

func (s *Server) removeUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.service.RemoveUser(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, faceauth.ErrInvalidUserID):
		respondError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		respondError(w, http.StatusInternalServerError, "could not remove user")
	default:
		respondJSON(w, http.StatusOK, map[string]string{"removed": id})
	}
}

func (s *Server) clearUsers(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ClearUsers(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "could not clear users")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type enrollRequest struct {
	UserID string `json:"user_id"`
}

type enrollResponse struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
}

func (s *Server) enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	result, err := s.service.Enroll(r.Context(), req.UserID, nil)
	switch {
	case errors.Is(err, faceauth.ErrInvalidUserID):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, faceauth.ErrExtractionFailed):
		respondJSON(w, http.StatusUnprocessableEntity, enrollResponse{
			SessionID: result.SessionID,
			UserID:    result.UserID,
			Status:    result.Status.String(),
		})
	case err != nil:
		respondError(w, http.StatusInternalServerError, "enroll failed")
	default:
		respondJSON(w, http.StatusOK, enrollResponse{
			SessionID: result.SessionID,
			UserID:    result.UserID,
			Status:    result.Status.String(),
		})
	}
}

type authenticateResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Matched   bool   `json:"matched"`
	UserID    string `json:"user_id,omitempty"`
	Updated   bool   `json:"updated,omitempty"`
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.service.Authenticate(r.Context(), nil)
	switch {
	case errors.Is(err, faceauth.ErrExtractionFailed):
		respondJSON(w, http.StatusUnprocessableEntity, authenticateResponse{
			SessionID: outcome.SessionID,
			Status:    outcome.Status.String(),
		})
	case err != nil:
		respondError(w, http.StatusInternalServerError, "authentication failed")
	default:
		respondJSON(w, http.StatusOK, authenticateResponse{
			SessionID: outcome.SessionID,
			Status:    outcome.Status.String(),
			Matched:   outcome.Matched,
			UserID:    outcome.UserID,
			Updated:   outcome.Updated,
		})
	}
}
