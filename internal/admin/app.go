// Package admin implements the maintenance CLI: worker registration,
// bulk imports from chat exports, and image backups. It talks to the
// database directly through the same services the server uses.
package admin

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/shoestock/internal/importer"
	"github.com/dmitrijs2005/shoestock/internal/logging"
	"github.com/dmitrijs2005/shoestock/internal/server/config"
	"github.com/dmitrijs2005/shoestock/internal/server/images"
	"github.com/dmitrijs2005/shoestock/internal/server/models"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shoestock/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	workerService *services.WorkerService
	shoeService   *services.ShoeService
	reader        *bufio.Reader
	out           io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		repomanager:   m,
		workerService: services.NewWorkerService(db, m, c),
		shoeService:   services.NewShoeService(db, m),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Register prompts for a worker code and password (no echo) and creates
// the account.
func (a *App) Register(ctx context.Context) error {

	fmt.Fprintln(a.out, "Enter worker code")
	workerCode, err := a.reader.ReadString('\n')
	if err != nil {
		return err
	}
	workerCode = strings.TrimSpace(workerCode)
	if workerCode == "" {
		return fmt.Errorf("worker code must not be empty")
	}

	fmt.Fprintln(a.out, "Enter password")
	password, err := readPassword()
	if err != nil {
		return err
	}

	if err := a.workerService.Register(ctx, workerCode, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Worker registered")
	return nil
}

// Import bulk-loads shoe records from a chat export folder, tagging
// every record with typeName.
func (a *App) Import(ctx context.Context, dir string, typeName string) error {

	if !models.ValidShoeType(typeName) {
		return fmt.Errorf("unknown shoe type %q", typeName)
	}

	imp := importer.NewImporter(a.shoeService, a.logger)
	result, err := imp.ImportFolder(ctx, dir, models.ShoeType(typeName))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d shoes (%d already existed, %d without images)\n",
		result.Added, result.Skipped, result.NoImages)
	return nil
}

// Backup uploads every stored shoe image to object storage.
func (a *App) Backup(ctx context.Context) error {

	uploader := images.NewUploader(a.config)
	count, err := uploader.BackupAll(ctx, a.repomanager.Shoes(a.db))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Backed up %d images\n", count)
	return nil
}
