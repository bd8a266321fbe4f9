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

// NetworkService manages wifi network records for authenticated owners.
// Unlike credentials, network titles are not unique; owners may label several
// networks the same way.
type NetworkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
}

// NewNetworkService constructs a NetworkService.
func NewNetworkService(db *sql.DB, m repomanager.RepositoryManager, cipher *cryptox.Cipher) *NetworkService {
	return &NetworkService{db: db, repomanager: m, cipher: cipher}
}

// Create stores a new network record for the owner.
func (s *NetworkService) Create(ctx context.Context, userID int64, network *models.Network) (*models.Network, error) {
	repo := s.repomanager.Networks(s.db)

	encrypted, err := s.cipher.Encrypt(network.Password)
	if err != nil {
		return nil, fmt.Errorf("error encrypting password: %v", err)
	}

	created, err := repo.Create(ctx, &models.Network{
		Title:    network.Title,
		Network:  network.Network,
		Password: encrypted,
		UserID:   userID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating network: %v", err)
	}

	created.Password = network.Password
	return created, nil
}

// ListForOwner returns all networks belonging to the owner, with passwords
// decrypted.
func (s *NetworkService) ListForOwner(ctx context.Context, userID int64) ([]*models.Network, error) {
	repo := s.repomanager.Networks(s.db)

	list, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing networks: %v", err)
	}

	for _, n := range list {
		plain, err := s.cipher.Decrypt(n.Password)
		if err != nil {
			return nil, err
		}
		n.Password = plain
	}

	return list, nil
}

// GetByID returns a single network. Missing ids yield ErrNotFound; networks
// owned by another user yield ErrUnauthorized.
func (s *NetworkService) GetByID(ctx context.Context, userID int64, id int64) (*models.Network, error) {
	repo := s.repomanager.Networks(s.db)

	network, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	if network.UserID != userID {
		return nil, common.ErrUnauthorized
	}

	plain, err := s.cipher.Decrypt(network.Password)
	if err != nil {
		return nil, err
	}
	network.Password = plain

	return network, nil
}

// Delete removes a network after verifying ownership. Lookup and delete run
// in one transaction so a concurrent delete cannot slip between them.
func (s *NetworkService) Delete(ctx context.Context, userID int64, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Networks(tx)

		network, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return common.ErrInternal
		}
		if network.UserID != userID {
			return common.ErrUnauthorized
		}

		return repo.DeleteByID(ctx, id)
	})
}
