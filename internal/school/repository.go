package school

import (
	"context"
	"database/sql"
	"errors"

	"jobboard-service/internal/apperr"

	"github.com/uptrace/bun"
)

type Repository interface {
	List(ctx context.Context) ([]School, error)
	GetByID(ctx context.Context, id string) (*School, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]School, error) {
	var schools []School
	err := r.db.NewSelect().
		Model(&schools).
		Column("s.id", "s.name").
		OrderExpr("s.name ASC").
		Scan(ctx)
	return schools, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*School, error) {
	s := new(School)
	err := r.db.NewSelect().Model(s).Where("s.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("School not found")
		}
		return nil, err
	}
	return s, nil
}
