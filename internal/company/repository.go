package company

import (
	"context"
	"database/sql"
	"errors"

	"jobboard-service/internal/apperr"

	"github.com/uptrace/bun"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Company, error) {
	co := new(Company)
	err := r.db.NewSelect().Model(co).Where("co.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Company not found")
		}
		return nil, err
	}
	return co, nil
}
