package repomanager

import (
	"context"
	"database/sql"

	"github.com/drivenpass/drivenpass/internal/dbx"
	"github.com/drivenpass/drivenpass/internal/server/repositories/credentials"
	"github.com/drivenpass/drivenpass/internal/server/repositories/networks"
	"github.com/drivenpass/drivenpass/internal/server/repositories/sessions"
	"github.com/drivenpass/drivenpass/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	Networks(db dbx.DBTX) networks.Repository
}
