package approval

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/job"
	"jobboard-service/internal/pagination"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Repository interface {
	// Decide records or updates one school's decision on a job. It returns
	// whether a new decision row was created, as opposed to an existing one
	// being changed in place.
	Decide(ctx context.Context, jobID, schoolID string, status Status, comments string) (*JobApproval, bool, error)
	// ListByJob returns one page of a job's decisions, newest first, with
	// the deciding school loaded.
	ListByJob(ctx context.Context, jobID string, p pagination.Params) ([]JobApproval, int, error)
	// ApprovedForSchool returns one page of the school's approved decisions
	// with the job and its company loaded.
	ApprovedForSchool(ctx context.Context, schoolID string, p pagination.Params) ([]JobApproval, int, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Decide(ctx context.Context, jobID, schoolID string, status Status, comments string) (*JobApproval, bool, error) {
	var decision *JobApproval
	var created bool

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Lock the job row so concurrent decisions for the same job
		// serialize and the counter stays exact.
		j := new(job.Job)
		err := tx.NewSelect().
			Model(j).
			Column("id", "is_approved", "approval_count").
			Where("j.id = ?", jobID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("Job not found")
			}
			return err
		}

		existing := new(JobApproval)
		err = tx.NewSelect().
			Model(existing).
			Where("a.job_id = ?", jobID).
			Where("a.school_id = ?", schoolID).
			Scan(ctx)
		switch {
		case err == nil:
			existing.Status = status
			existing.Comments = comments
			existing.UpdatedAt = time.Now()
			if _, err := tx.NewUpdate().
				Model(existing).
				Column("status", "comments", "updated_at").
				WherePK().
				Exec(ctx); err != nil {
				return err
			}
			decision = existing
		case errors.Is(err, sql.ErrNoRows):
			decision = &JobApproval{
				ID:       uuid.NewString(),
				JobID:    jobID,
				SchoolID: schoolID,
				Status:   status,
				Comments: comments,
			}
			if _, err := tx.NewInsert().Model(decision).Exec(ctx); err != nil {
				return err
			}
			created = true
			if _, err := tx.NewUpdate().
				Model((*job.Job)(nil)).
				Set("approval_count = approval_count + 1").
				Set("updated_at = current_timestamp").
				Where("j.id = ?", jobID).
				Exec(ctx); err != nil {
				return err
			}
		default:
			return err
		}

		// is_approved is sticky: the first approval sets it and later
		// rejections leave it alone.
		if status == StatusApproved && !j.IsApproved {
			if _, err := tx.NewUpdate().
				Model((*job.Job)(nil)).
				Set("is_approved = TRUE").
				Set("updated_at = current_timestamp").
				Where("j.id = ?", jobID).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return decision, created, nil
}

func (r *repository) ListByJob(ctx context.Context, jobID string, p pagination.Params) ([]JobApproval, int, error) {
	var approvals []JobApproval
	total, err := r.db.NewSelect().
		Model(&approvals).
		Relation("School").
		Where("a.job_id = ?", jobID).
		OrderExpr("a.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return approvals, total, nil
}

func (r *repository) ApprovedForSchool(ctx context.Context, schoolID string, p pagination.Params) ([]JobApproval, int, error) {
	var approvals []JobApproval
	total, err := r.db.NewSelect().
		Model(&approvals).
		Relation("Job").
		Relation("Job.Company").
		Where("a.school_id = ?", schoolID).
		Where("a.status = ?", StatusApproved).
		OrderExpr("a.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return approvals, total, nil
}
