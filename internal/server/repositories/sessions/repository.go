package sessions

import (
	"context"

	"github.com/drivenpass/drivenpass/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	FindByToken(ctx context.Context, token string) (*models.Session, error)
}
