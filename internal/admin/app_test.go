package admin

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/dmitrijs2005/shoestock/internal/dbx"
	"github.com/dmitrijs2005/shoestock/internal/server/config"
	"github.com/dmitrijs2005/shoestock/internal/server/models"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/shoes"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/workers"
	"github.com/dmitrijs2005/shoestock/internal/server/services"
	"golang.org/x/crypto/bcrypt"
)

type fakeWorkersRepo struct {
	workers map[string]*models.Worker
}

func (f *fakeWorkersRepo) Create(ctx context.Context, worker *models.Worker) error {
	f.workers[worker.WorkerCode] = worker
	return nil
}

func (f *fakeWorkersRepo) GetByWorkerCode(ctx context.Context, workerCode string) (*models.Worker, error) {
	w, ok := f.workers[workerCode]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return w, nil
}

type fakeRepoManager struct {
	w *fakeWorkersRepo
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (f *fakeRepoManager) Workers(db dbx.DBTX) workers.Repository {
	return f.w
}

func (f *fakeRepoManager) Shoes(db dbx.DBTX) shoes.Repository {
	return nil
}

func newTestApp(t *testing.T, input string) (*App, *fakeWorkersRepo, *bytes.Buffer) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error creating sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectCommit()

	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	repo := &fakeWorkersRepo{workers: make(map[string]*models.Worker)}
	out := &bytes.Buffer{}

	app := &App{
		config:        cfg,
		db:            db,
		workerService: services.NewWorkerService(db, &fakeRepoManager{w: repo}, cfg),
		reader:        bufio.NewReader(strings.NewReader(input)),
		out:           out,
	}
	return app, repo, out
}

func TestRegister(t *testing.T) {
	app, repo, out := newTestApp(t, "W-1\n")

	orig := readPassword
	readPassword = func() ([]byte, error) { return []byte("secret"), nil }
	defer func() { readPassword = orig }()

	if err := app.Register(context.Background()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	w, ok := repo.workers["W-1"]
	if !ok {
		t.Fatal("worker was not created")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(w.PasswordHash), []byte("secret")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
	if !strings.Contains(out.String(), "Worker registered") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestRegister_EmptyWorkerCode(t *testing.T) {
	app, _, _ := newTestApp(t, "\n")

	if err := app.Register(context.Background()); err == nil {
		t.Fatal("expected an error for an empty worker code")
	}
}

func TestImport_UnknownType(t *testing.T) {
	app, _, _ := newTestApp(t, "")

	err := app.Import(context.Background(), t.TempDir(), "Sneaker")
	if err == nil || !strings.Contains(err.Error(), "unknown shoe type") {
		t.Fatalf("expected an unknown type error, got %v", err)
	}
}
