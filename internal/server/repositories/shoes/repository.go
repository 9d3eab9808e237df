package shoes

import (
	"context"

	"github.com/dmitrijs2005/shoestock/internal/server/models"
)

type Repository interface {
	FindAll(ctx context.Context) ([]*models.Shoe, error)
	FindByCode(ctx context.Context, code string) (*models.Shoe, error)
	FindByType(ctx context.Context, shoeType string) ([]*models.Shoe, error)
	FindByLocation(ctx context.Context, loc int64) ([]*models.Shoe, error)
	Create(ctx context.Context, shoe *models.Shoe) error
	UpdateName(ctx context.Context, code string, name string) error
	UpdateLocation(ctx context.Context, code string, loc int64) error
	Delete(ctx context.Context, code string) error
}
