package networks

import (
	"context"

	"github.com/drivenpass/drivenpass/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, network *models.Network) (*models.Network, error)
	FindByID(ctx context.Context, id int64) (*models.Network, error)
	FindByUserID(ctx context.Context, userID int64) ([]*models.Network, error)
	DeleteByID(ctx context.Context, id int64) error
}
