package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/dmitrijs2005/shoestock/internal/dbx"
	"github.com/dmitrijs2005/shoestock/internal/server/models"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/repomanager"
)

// maxListResults caps ListAll output; clients never need more than the
// first 20 records at once.
const maxListResults = 20

// ShoeDTO is the shape returned to API clients. Image carries the stored
// raw bytes; on the wire encoding/json renders it as base64 text,
// mirroring the write payload.
type ShoeDTO struct {
	Code  string  `json:"code"`
	Loc   *int64  `json:"loc"`
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Image []byte  `json:"image"`
}

// AddShoeRequest carries the fields accepted when creating a shoe record.
// Image, when non-empty, must be base64-encoded text.
type AddShoeRequest struct {
	Code  string
	Loc   *int64
	Name  *string
	Type  *string
	Image string
}

// ShoeService enforces the shoe-record business rules on top of the
// shoe repository.
type ShoeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewShoeService(db *sql.DB, m repomanager.RepositoryManager) *ShoeService {
	return &ShoeService{db: db, repomanager: m}
}

func makeShoeDTO(shoe *models.Shoe) *ShoeDTO {
	return &ShoeDTO{
		Code:  shoe.Code,
		Loc:   shoe.Loc,
		Name:  shoe.Name,
		Type:  shoe.Type,
		Image: shoe.Image,
	}
}

func makeShoeDTOs(shoes []*models.Shoe) []*ShoeDTO {
	result := make([]*ShoeDTO, 0, len(shoes))
	for _, shoe := range shoes {
		result = append(result, makeShoeDTO(shoe))
	}
	return result
}

// ListAll returns at most maxListResults records in the store's native
// retrieval order. No sort is imposed: the order clients observe is
// whatever the backing store yields.
func (s *ShoeService) ListAll(ctx context.Context) ([]*ShoeDTO, error) {
	repo := s.repomanager.Shoes(s.db)

	shoes, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing shoes: %w", err)
	}
	if len(shoes) > maxListResults {
		shoes = shoes[:maxListResults]
	}
	return makeShoeDTOs(shoes), nil
}

// FindByCodePrefix returns every record whose code starts with prefix
// (case-sensitive). Despite the name this is never a point lookup: it is
// a full scan plus filter, so partial codes match. Zero matches yield
// common.ErrorNotFound.
func (s *ShoeService) FindByCodePrefix(ctx context.Context, prefix string) ([]*ShoeDTO, error) {
	repo := s.repomanager.Shoes(s.db)

	shoes, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing shoes: %w", err)
	}

	var filtered []*models.Shoe
	for _, shoe := range shoes {
		if strings.HasPrefix(shoe.Code, prefix) {
			filtered = append(filtered, shoe)
		}
	}

	if len(filtered) == 0 {
		return nil, common.ErrorNotFound
	}
	return makeShoeDTOs(filtered), nil
}

// FindByType returns all records of the given type. typeName must match
// one of the ShoeType variants exactly (case-sensitive); anything else
// yields common.ErrorInvalidArgument. An empty result is a success.
func (s *ShoeService) FindByType(ctx context.Context, typeName string) ([]*ShoeDTO, error) {
	if !models.ValidShoeType(typeName) {
		return nil, common.ErrorInvalidArgument
	}

	repo := s.repomanager.Shoes(s.db)

	shoes, err := repo.FindByType(ctx, typeName)
	if err != nil {
		return nil, fmt.Errorf("error searching shoes by type: %w", err)
	}
	return makeShoeDTOs(shoes), nil
}

// FindByLocation returns all records stored at loc.
// Zero matches yield common.ErrorNotFound.
func (s *ShoeService) FindByLocation(ctx context.Context, loc int64) ([]*ShoeDTO, error) {
	repo := s.repomanager.Shoes(s.db)

	shoes, err := repo.FindByLocation(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("error searching shoes by location: %w", err)
	}
	if len(shoes) == 0 {
		return nil, common.ErrorNotFound
	}
	return makeShoeDTOs(shoes), nil
}

// UpdateName sets the name of an existing record. Name content is not
// validated. An unknown code yields common.ErrorNotFound.
func (s *ShoeService) UpdateName(ctx context.Context, code string, name string) error {
	repo := s.repomanager.Shoes(s.db)

	if _, err := repo.FindByCode(ctx, code); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error searching shoe: %w", err)
	}

	return repo.UpdateName(ctx, code, name)
}

// UpdateLocation sets the storage location of an existing record.
// An unknown code yields common.ErrorNotFound.
func (s *ShoeService) UpdateLocation(ctx context.Context, code string, loc int64) error {
	repo := s.repomanager.Shoes(s.db)

	if _, err := repo.FindByCode(ctx, code); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error searching shoe: %w", err)
	}

	return repo.UpdateLocation(ctx, code, loc)
}

// Add creates a new shoe record. A duplicate code yields
// common.ErrorConflict; an undecodable image yields
// common.ErrorInvalidArgument. The image, when present, arrives as
// base64 text and is stored as the decoded raw bytes. The existence
// check and the insert run in one transaction.
func (s *ShoeService) Add(ctx context.Context, req *AddShoeRequest) error {

	var image []byte
	if req.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return common.ErrorInvalidArgument
		}
		image = decoded
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Shoes(tx)

		_, err := repo.FindByCode(ctx, req.Code)
		if err == nil {
			return common.ErrorConflict
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching shoe: %w", err)
		}

		return repo.Create(ctx, &models.Shoe{
			Code:  req.Code,
			Loc:   req.Loc,
			Name:  req.Name,
			Type:  req.Type,
			Image: image,
		})
	})

	return err
}

// Delete removes the record with the given code.
// An unknown code yields common.ErrorNotFound.
func (s *ShoeService) Delete(ctx context.Context, code string) error {
	repo := s.repomanager.Shoes(s.db)

	if _, err := repo.FindByCode(ctx, code); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error searching shoe: %w", err)
	}

	return repo.Delete(ctx, code)
}
