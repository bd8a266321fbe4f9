package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/server/auth"
	"github.com/drivenpass/drivenpass/internal/server/models"
)

// ownerID returns the authenticated user id placed in the context by
// requireAuth.
func ownerID(r *http.Request) (int64, error) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return 0, common.ErrUnauthenticated
	}
	return userID, nil
}

// pathID parses the numeric {id} path segment; anything non-numeric is
// rejected before ownership logic runs.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be numeric: %w", common.ErrValidation)
	}
	return id, nil
}

type createCredentialRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (s *Server) handleCredentialList(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.credentials.ListForOwner(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCredentialGet(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	credential, err := s.credentials.GetByID(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, credential)
}

func (s *Server) handleCredentialCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req createCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("invalid body: %w", common.ErrValidation))
		return
	}
	if req.Title == "" || req.URL == "" || req.Username == "" || req.Password == "" {
		s.writeError(w, r, fmt.Errorf("title, url, username and password are required: %w", common.ErrValidation))
		return
	}

	created, err := s.credentials.Create(r.Context(), userID, &models.Credential{
		Title:    req.Title,
		URL:      req.URL,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: created.ID})
}

func (s *Server) handleCredentialDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.credentials.Delete(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
