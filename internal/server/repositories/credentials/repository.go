package credentials

import (
	"context"

	"github.com/drivenpass/drivenpass/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, credential *models.Credential) (*models.Credential, error)
	FindByID(ctx context.Context, id int64) (*models.Credential, error)
	FindByTitle(ctx context.Context, title string) (*models.Credential, error)
	FindByUserID(ctx context.Context, userID int64) ([]*models.Credential, error)
	DeleteByID(ctx context.Context, id int64) error
}
