package workers

import (
	"context"

	"github.com/dmitrijs2005/shoestock/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, worker *models.Worker) error
	GetByWorkerCode(ctx context.Context, workerCode string) (*models.Worker, error)
}
