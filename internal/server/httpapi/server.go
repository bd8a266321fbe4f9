// Package httpapi exposes the vault over HTTP: account endpoints, bearer-token
// authentication, and per-owner credential and network resources.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/drivenpass/drivenpass/internal/logging"
	"github.com/drivenpass/drivenpass/internal/server/models"
	"github.com/drivenpass/drivenpass/internal/server/services"
)

// AuthService handles account registration and sign-in.
type AuthService interface {
	SignUp(ctx context.Context, email string, password string) (*services.UserInfo, error)
	SignIn(ctx context.Context, email string, password string) (*services.SignInResult, error)
}

// CredentialService manages site credentials for an owner.
type CredentialService interface {
	Create(ctx context.Context, userID int64, credential *models.Credential) (*models.Credential, error)
	ListForOwner(ctx context.Context, userID int64) ([]*models.Credential, error)
	GetByID(ctx context.Context, userID int64, id int64) (*models.Credential, error)
	Delete(ctx context.Context, userID int64, id int64) error
}

// NetworkService manages wifi network records for an owner.
type NetworkService interface {
	Create(ctx context.Context, userID int64, network *models.Network) (*models.Network, error)
	ListForOwner(ctx context.Context, userID int64) ([]*models.Network, error)
	GetByID(ctx context.Context, userID int64, id int64) (*models.Network, error)
	Delete(ctx context.Context, userID int64, id int64) error
}

// SessionStore looks up server-side sessions by token.
type SessionStore interface {
	FindByToken(ctx context.Context, token string) (*models.Session, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	auth        AuthService
	credentials CredentialService
	networks    NetworkService
	sessions    SessionStore
	jwtSecret   []byte
}

func NewServer(address string, l logging.Logger, as AuthService, cs CredentialService, ns NetworkService, ss SessionStore, secretKey string) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "http_server"),
		auth:        as,
		credentials: cs,
		networks:    ns,
		sessions:    ss,
		jwtSecret:   []byte(secretKey),
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
