package auth

import (
	"context"
	"database/sql"

	"jobboard-service/internal/company"
	"jobboard-service/internal/school"
	"jobboard-service/internal/user"

	"github.com/uptrace/bun"
)

// Repository performs the multi-row signup writes. Each method is one
// transaction: the organization row and its admin user commit together or
// not at all.
type Repository interface {
	CreateUserWithSchool(ctx context.Context, u *user.User, s *school.School) error
	CreateUserWithCompany(ctx context.Context, u *user.User, co *company.Company) error
	CreateStudent(ctx context.Context, u *user.User) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUserWithSchool(ctx context.Context, u *user.User, s *school.School) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(s).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(u).Exec(ctx)
		return err
	})
}

func (r *repository) CreateUserWithCompany(ctx context.Context, u *user.User, co *company.Company) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(co).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(u).Exec(ctx)
		return err
	})
}

func (r *repository) CreateStudent(ctx context.Context, u *user.User) error {
	_, err := r.db.NewInsert().Model(u).Exec(ctx)
	return err
}
