package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shoestock/internal/dbx"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/shoes"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/workers"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Workers(db dbx.DBTX) workers.Repository
	Shoes(db dbx.DBTX) shoes.Repository
}
