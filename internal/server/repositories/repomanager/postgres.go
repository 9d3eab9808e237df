// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shoestock/internal/dbx"
	"github.com/dmitrijs2005/shoestock/internal/server/migrations"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/shoes"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/workers"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Workers returns a workers.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Workers(db dbx.DBTX) workers.Repository {
	return workers.NewPostgresRepository(db)
}

// Shoes returns a shoes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Shoes(db dbx.DBTX) shoes.Repository {
	return shoes.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
