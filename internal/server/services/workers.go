package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/dmitrijs2005/shoestock/internal/dbx"
	"github.com/dmitrijs2005/shoestock/internal/server/auth"
	"github.com/dmitrijs2005/shoestock/internal/server/config"
	"github.com/dmitrijs2005/shoestock/internal/server/models"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// TokenResult is what a successful login returns to the client:
// the signed token and its expiry as milliseconds since epoch.
type TokenResult struct {
	Token          string `json:"token"`
	ExpirationTime int64  `json:"expirationTime"`
}

// WorkerService registers worker accounts and authenticates logins.
type WorkerService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewWorkerService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *WorkerService {
	return &WorkerService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new worker account with a bcrypt hash of password.
// If a worker with this code already exists it returns common.ErrorConflict.
// The existence check and the insert run in one transaction.
func (s *WorkerService) Register(ctx context.Context, workerCode string, password string) error {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Workers(tx)

		_, err := repo.GetByWorkerCode(ctx, workerCode)
		if err == nil {
			return common.ErrorConflict
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching worker: %w", err)
		}

		return repo.Create(ctx, &models.Worker{WorkerCode: workerCode, PasswordHash: string(hash)})
	})

	return err
}

// Login authenticates a worker by code and password. On success it issues
// a fresh token; an unknown code or a hash mismatch both yield
// common.ErrorUnauthorized (bcrypt comparison is constant-time).
func (s *WorkerService) Login(ctx context.Context, workerCode string, password string) (*TokenResult, error) {

	repo := s.repomanager.Workers(s.db)

	worker, err := repo.GetByWorkerCode(ctx, workerCode)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(worker.WorkerCode, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenResult{
		Token:          token,
		ExpirationTime: auth.ExpirationUnixMilli(s.tokenValidityDuration),
	}, nil
}
