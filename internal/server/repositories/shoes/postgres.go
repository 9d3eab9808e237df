// Package shoes provides a PostgreSQL-backed repository for shoe records.
package shoes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/dmitrijs2005/shoestock/internal/dbx"
	"github.com/dmitrijs2005/shoestock/internal/server/models"
)

// PostgresRepository implements shoe storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `code, loc, name, type, image, created_at`

func scanShoe(rows *sql.Rows) (*models.Shoe, error) {
	var item models.Shoe
	if err := rows.Scan(&item.Code, &item.Loc, &item.Name, &item.Type, &item.Image, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) selectShoes(ctx context.Context, query string, args ...any) ([]*models.Shoe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select shoes: %w", err)
	}
	defer rows.Close()

	var result []*models.Shoe
	for rows.Next() {
		item, err := scanShoe(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindAll returns every shoe row in the store's native retrieval order.
// No ORDER BY is applied on purpose: callers rely on the backing store's
// own ordering.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*models.Shoe, error) {
	return r.selectShoes(ctx, `SELECT `+selectColumns+` FROM shoes`)
}

// FindByCode returns the shoe with exactly the given code.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*models.Shoe, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM shoes
		WHERE code = $1
	`
	shoe := &models.Shoe{}
	err := r.db.QueryRowContext(ctx, query, code).
		Scan(&shoe.Code, &shoe.Loc, &shoe.Name, &shoe.Type, &shoe.Image, &shoe.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return shoe, nil
}

// FindByType returns all shoes whose type equals shoeType exactly.
func (r *PostgresRepository) FindByType(ctx context.Context, shoeType string) ([]*models.Shoe, error) {
	return r.selectShoes(ctx, `SELECT `+selectColumns+` FROM shoes WHERE type = $1`, shoeType)
}

// FindByLocation returns all shoes stored at loc.
func (r *PostgresRepository) FindByLocation(ctx context.Context, loc int64) ([]*models.Shoe, error) {
	return r.selectShoes(ctx, `SELECT `+selectColumns+` FROM shoes WHERE loc = $1`, loc)
}

// Create inserts a new shoe row.
func (r *PostgresRepository) Create(ctx context.Context, shoe *models.Shoe) error {
	query := `
		INSERT INTO shoes (code, loc, name, type, image)
		VALUES ($1, $2, $3, $4, $5)
	`
	// an absent image is stored as NULL, not an empty bytea
	var image any
	if len(shoe.Image) > 0 {
		image = shoe.Image
	}

	if _, err := r.db.ExecContext(ctx, query, shoe.Code, shoe.Loc, shoe.Name, shoe.Type, image); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// UpdateName sets the name of the shoe with the given code.
func (r *PostgresRepository) UpdateName(ctx context.Context, code string, name string) error {
	return r.updateField(ctx, `UPDATE shoes SET name = $2 WHERE code = $1`, code, name)
}

// UpdateLocation sets the storage location of the shoe with the given code.
func (r *PostgresRepository) UpdateLocation(ctx context.Context, code string, loc int64) error {
	return r.updateField(ctx, `UPDATE shoes SET loc = $2 WHERE code = $1`, code, loc)
}

func (r *PostgresRepository) updateField(ctx context.Context, query string, code string, value any) error {
	res, err := r.db.ExecContext(ctx, query, code, value)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the shoe with the given code.
// If no row matched, it returns common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shoes WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
