package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/drivenpass/drivenpass/internal/common"
)

// minPasswordLength matches the sign-up schema enforced at the boundary.
const minPasswordLength = 10

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("invalid body: %w", common.ErrValidation))
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		s.writeError(w, r, fmt.Errorf("invalid email: %w", common.ErrValidation))
		return
	}
	if len(req.Password) < minPasswordLength {
		s.writeError(w, r, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, common.ErrValidation))
		return
	}

	user, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("invalid body: %w", common.ErrValidation))
		return
	}
	if req.Email == "" || req.Password == "" {
		s.writeError(w, r, fmt.Errorf("email and password are required: %w", common.ErrValidation))
		return
	}

	result, err := s.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
