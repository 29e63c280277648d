package user

import (
	"context"
	"database/sql"
	"errors"

	"jobboard-service/internal/apperr"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ListScoped returns users of one school, one company, or everyone when
	// both ids are empty.
	ListScoped(ctx context.Context, schoolID, companyID string) ([]User, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	_, err := r.db.NewInsert().Model(u).Exec(ctx)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	u := new(User)
	err := r.db.NewSelect().Model(u).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.UserNotFound()
		}
		return nil, err
	}
	return u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u := new(User)
	err := r.db.NewSelect().Model(u).Where("u.email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.UserNotFound()
		}
		return nil, err
	}
	return u, nil
}

func (r *repository) ListScoped(ctx context.Context, schoolID, companyID string) ([]User, error) {
	var users []User
	q := r.db.NewSelect().
		Model(&users).
		Column("u.id", "u.name", "u.email", "u.role", "u.role_in_organization", "u.created_at").
		OrderExpr("u.created_at DESC")
	if schoolID != "" {
		q = q.Where("u.school_id = ?", schoolID)
	}
	if companyID != "" {
		q = q.Where("u.company_id = ?", companyID)
	}
	err := q.Scan(ctx)
	return users, err
}
