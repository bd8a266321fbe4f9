package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/cryptox"
	"github.com/drivenpass/drivenpass/internal/dbx"
	"github.com/drivenpass/drivenpass/internal/server/models"
	"github.com/drivenpass/drivenpass/internal/server/repositories/repomanager"
)

// CredentialService manages site credentials for authenticated owners.
// Passwords are encrypted before they reach the repository and decrypted on
// the way out; ciphertext never leaves the service layer.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
}

// NewCredentialService constructs a CredentialService.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, cipher *cryptox.Cipher) *CredentialService {
	return &CredentialService{db: db, repomanager: m, cipher: cipher}
}

// Create stores a new credential for the owner. Titles are unique across all
// credentials; a taken title yields ErrConflict.
func (s *CredentialService) Create(ctx context.Context, userID int64, credential *models.Credential) (*models.Credential, error) {
	repo := s.repomanager.Credentials(s.db)

	if _, err := repo.FindByTitle(ctx, credential.Title); err == nil {
		return nil, common.ErrConflict
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	encrypted, err := s.cipher.Encrypt(credential.Password)
	if err != nil {
		return nil, fmt.Errorf("error encrypting password: %v", err)
	}

	created, err := repo.Create(ctx, &models.Credential{
		Title:    credential.Title,
		URL:      credential.URL,
		Username: credential.Username,
		Password: encrypted,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating credential: %v", err)
	}

	created.Password = credential.Password
	return created, nil
}

// ListForOwner returns all credentials belonging to the owner, with passwords
// decrypted.
func (s *CredentialService) ListForOwner(ctx context.Context, userID int64) ([]*models.Credential, error) {
	repo := s.repomanager.Credentials(s.db)

	list, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing credentials: %v", err)
	}

	for _, c := range list {
		plain, err := s.cipher.Decrypt(c.Password)
		if err != nil {
			return nil, err
		}
		c.Password = plain
	}

	return list, nil
}

// GetByID returns a single credential. Missing ids yield ErrNotFound;
// credentials owned by another user yield ErrUnauthorized.
func (s *CredentialService) GetByID(ctx context.Context, userID int64, id int64) (*models.Credential, error) {
	repo := s.repomanager.Credentials(s.db)

	credential, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	if credential.UserID != userID {
		return nil, common.ErrUnauthorized
	}

	plain, err := s.cipher.Decrypt(credential.Password)
	if err != nil {
		return nil, err
	}
	credential.Password = plain

	return credential, nil
}

// Delete removes a credential after verifying ownership. Lookup and delete
// run in one transaction so a concurrent delete cannot slip between them.
func (s *CredentialService) Delete(ctx context.Context, userID int64, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Credentials(tx)

		credential, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return common.ErrInternal
		}
		if credential.UserID != userID {
			return common.ErrUnauthorized
		}

		return repo.DeleteByID(ctx, id)
	})
}
