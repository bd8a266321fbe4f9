package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/server/models"
)

type createNetworkRequest struct {
	Title    string `json:"title"`
	Network  string `json:"network"`
	Password string `json:"password"`
}

func (s *Server) handleNetworkList(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.networks.ListForOwner(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleNetworkGet(w http.ResponseWriter, r *http.Request) {
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

	network, err := s.networks.GetByID(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, network)
}

func (s *Server) handleNetworkCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := ownerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req createNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("invalid body: %w", common.ErrValidation))
		return
	}
	if req.Title == "" || req.Network == "" || req.Password == "" {
		s.writeError(w, r, fmt.Errorf("title, network and password are required: %w", common.ErrValidation))
		return
	}

	created, err := s.networks.Create(r.Context(), userID, &models.Network{
		Title:    req.Title,
		Network:  req.Network,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: created.ID})
}

func (s *Server) handleNetworkDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := s.networks.Delete(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
