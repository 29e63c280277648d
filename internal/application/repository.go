package application

import (
	"context"
	"database/sql"
	"errors"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/job"
	"jobboard-service/internal/pagination"

	"github.com/uptrace/bun"
)

type Repository interface {
	// Create inserts the application and bumps the job's application count
	// in one transaction. A second application by the same user fails with
	// ALREADY_APPLIED.
	Create(ctx context.Context, a *JobApplication) error
	// ListByUser returns one page of the user's applications, newest first,
	// with the job and its company loaded.
	ListByUser(ctx context.Context, userID string, p pagination.Params) ([]JobApplication, int, error)
	// ListByJob returns one page of a job's applications, newest first,
	// with the applicant and their school loaded. A non-empty schoolID
	// restricts rows to applicants of that school.
	ListByJob(ctx context.Context, jobID, schoolID string, p pagination.Params) ([]JobApplication, int, error)
	// HasApplied reports whether the user holds an application for the job.
	HasApplied(ctx context.Context, jobID, userID string) (bool, error)
	// SchoolDecision returns the status of the school's decision row for
	// the job, or ok=false when the school never decided.
	SchoolDecision(ctx context.Context, jobID, schoolID string) (string, bool, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *JobApplication) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Lock the job row so concurrent applications serialize and the
		// counter stays exact.
		exists, err := tx.NewSelect().
			Model((*job.Job)(nil)).
			Where("j.id = ?", a.JobID).
			For("UPDATE").
			Exists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Job not found")
		}

		applied, err := tx.NewSelect().
			Model((*JobApplication)(nil)).
			Where("ap.job_id = ?", a.JobID).
			Where("ap.user_id = ?", a.UserID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if applied {
			return apperr.AlreadyApplied()
		}

		if _, err := tx.NewInsert().Model(a).Exec(ctx); err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model((*job.Job)(nil)).
			Set("application_count = application_count + 1").
			Set("updated_at = current_timestamp").
			Where("j.id = ?", a.JobID).
			Exec(ctx)
		return err
	})
}

func (r *repository) ListByUser(ctx context.Context, userID string, p pagination.Params) ([]JobApplication, int, error) {
	var apps []JobApplication
	total, err := r.db.NewSelect().
		Model(&apps).
		Relation("Job").
		Relation("Job.Company").
		Where("ap.user_id = ?", userID).
		OrderExpr("ap.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *repository) ListByJob(ctx context.Context, jobID, schoolID string, p pagination.Params) ([]JobApplication, int, error) {
	var apps []JobApplication
	q := r.db.NewSelect().
		Model(&apps).
		Relation("User").
		Relation("User.School").
		Where("ap.job_id = ?", jobID).
		OrderExpr("ap.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset())

	if schoolID != "" {
		q = q.Where("ap.user_id IN (SELECT id FROM users WHERE school_id = ?)", schoolID)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *repository) HasApplied(ctx context.Context, jobID, userID string) (bool, error) {
	return r.db.NewSelect().
		Model((*JobApplication)(nil)).
		Where("ap.job_id = ?", jobID).
		Where("ap.user_id = ?", userID).
		Exists(ctx)
}

func (r *repository) SchoolDecision(ctx context.Context, jobID, schoolID string) (string, bool, error) {
	var status string
	err := r.db.NewSelect().
		Table("job_approvals").
		Column("status").
		Where("job_id = ?", jobID).
		Where("school_id = ?", schoolID).
		Scan(ctx, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return status, true, nil
}
