package networks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/dbx"
	"github.com/drivenpass/drivenpass/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, network *models.Network) (*models.Network, error) {

	query :=
		`INSERT INTO networks (title, network, password, user_id)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		network.Title, network.Network, network.Password, network.UserID).Scan(&network.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return network, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Network, error) {
	query :=
		`SELECT id, title, network, password, user_id FROM networks
		 WHERE id = $1
		 `

	network := &models.Network{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&network.ID, &network.Title, &network.Network,
		&network.Password, &network.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return network, nil
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.Network, error) {
	query :=
		`SELECT id, title, network, password, user_id FROM networks
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Network, 0)
	for rows.Next() {
		network := &models.Network{}
		if err := rows.Scan(
			&network.ID, &network.Title, &network.Network,
			&network.Password, &network.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, network)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM networks
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
