package repomanager

import (
	"context"
	"database/sql"

	"bookcatalog/internal/dbx"
	"bookcatalog/internal/server/repositories/authors"
	"bookcatalog/internal/server/repositories/books"
	"bookcatalog/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can
// run several repository calls inside one transaction, and exposes the
// schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Authors(db dbx.DBTX) authors.Repository
	Books(db dbx.DBTX) books.Repository
}
