// Package services contains server-side business logic. This file implements
// AuthService, which handles user registration and sign-in with
// server-persisted sessions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/server/auth"
	"github.com/drivenpass/drivenpass/internal/server/config"
	"github.com/drivenpass/drivenpass/internal/server/models"
	"github.com/drivenpass/drivenpass/internal/server/repositories/repomanager"
)

// UserInfo is the subset of a user account that is safe to return to clients.
// The password hash never leaves the service layer.
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SignInResult bundles the authenticated user and the session token issued
// for this sign-in.
type SignInResult struct {
	User  UserInfo `json:"user"`
	Token string   `json:"token"`
}

// AuthService provides account-related operations:
// - SignUp: create users with bcrypt-hashed passwords
// - SignIn: verify credentials, mint a JWT, and persist the session
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	bcryptCost  int
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.JWTSecret),
		bcryptCost:  cfg.BcryptCost,
	}
}

// SignUp creates a new account for the given email. The email must not be
// in use already; duplicates yield ErrConflict.
func (s *AuthService) SignUp(ctx context.Context, email string, password string) (*UserInfo, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrConflict
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return &UserInfo{ID: user.ID, Email: user.Email}, nil
}

// SignIn verifies the email/password pair and, on success, issues a token and
// stores a session for it. Unknown emails and wrong passwords both yield
// ErrUnauthorized so the response does not reveal which part was wrong.
func (s *AuthService) SignIn(ctx context.Context, email string, password string) (*SignInResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %v", err)
	}

	sessionRepo := s.repomanager.Sessions(s.db)
	if _, err := sessionRepo.Create(ctx, &models.Session{Token: token, UserID: user.ID}); err != nil {
		return nil, fmt.Errorf("error storing session: %v", err)
	}

	return &SignInResult{
		User:  UserInfo{ID: user.ID, Email: user.Email},
		Token: token,
	}, nil
}
