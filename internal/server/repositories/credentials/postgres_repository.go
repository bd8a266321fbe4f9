package credentials

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

func (r *PostgresRepository) Create(ctx context.Context, credential *models.Credential) (*models.Credential, error) {

	query :=
		`INSERT INTO credentials (title, url, username, password, user_id)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		credential.Title, credential.URL, credential.Username, credential.Password, credential.UserID).Scan(&credential.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return credential, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Credential, error) {
	query :=
		`SELECT id, title, url, username, password, user_id FROM credentials
		 WHERE id = $1
		 `

	credential := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&credential.ID, &credential.Title, &credential.URL,
		&credential.Username, &credential.Password, &credential.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return credential, nil
}

func (r *PostgresRepository) FindByTitle(ctx context.Context, title string) (*models.Credential, error) {
	query :=
		`SELECT id, title, url, username, password, user_id FROM credentials
		 WHERE title = $1
		 `

	credential := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, title).Scan(
		&credential.ID, &credential.Title, &credential.URL,
		&credential.Username, &credential.Password, &credential.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return credential, nil
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID int64) ([]*models.Credential, error) {
	query :=
		`SELECT id, title, url, username, password, user_id FROM credentials
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Credential, 0)
	for rows.Next() {
		credential := &models.Credential{}
		if err := rows.Scan(
			&credential.ID, &credential.Title, &credential.URL,
			&credential.Username, &credential.Password, &credential.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM credentials
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
