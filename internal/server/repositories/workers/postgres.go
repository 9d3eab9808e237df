// Package workers provides a PostgreSQL-backed repository for worker accounts.
package workers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/dmitrijs2005/shoestock/internal/dbx"
	"github.com/dmitrijs2005/shoestock/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new worker row.
func (r *PostgresRepository) Create(ctx context.Context, worker *models.Worker) error {
	query := `
		INSERT INTO workers (worker_code, password_hash)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, worker.WorkerCode, worker.PasswordHash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByWorkerCode returns the worker with the given code.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByWorkerCode(ctx context.Context, workerCode string) (*models.Worker, error) {
	query := `
		SELECT worker_code, password_hash, created_at
		FROM workers
		WHERE worker_code = $1
	`
	worker := &models.Worker{}
	err := r.db.QueryRowContext(ctx, query, workerCode).
		Scan(&worker.WorkerCode, &worker.PasswordHash, &worker.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return worker, nil
}
