package job

import (
	"context"
	"database/sql"
	"errors"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/pagination"

	"github.com/uptrace/bun"
)

// ListFilter is the store-level translation of an authz.JobScope.
type ListFilter struct {
	Status             string
	CompanyID          string
	ApprovedBySchoolID string
}

type Repository interface {
	Create(ctx context.Context, j *Job) error
	// GetByID loads a job with its company projection.
	GetByID(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, j *Job) error
	// Delete removes a job and cascades its approvals and applications in
	// one transaction.
	Delete(ctx context.Context, id string) error
	// List returns one page of jobs, newest first, plus the total count.
	List(ctx context.Context, f ListFilter, p pagination.Params) ([]Job, int, error)
	// ApprovedBySchool reports whether the school has an approved decision
	// for the job.
	ApprovedBySchool(ctx context.Context, jobID, schoolID string) (bool, error)
	// SchoolDecisions batch-loads one school's decision rows for a set of
	// jobs, keyed by job id.
	SchoolDecisions(ctx context.Context, schoolID string, jobIDs []string) (map[string]SchoolDecision, error)
	// AppliedJobIDs batch-loads which of the given jobs the user applied
	// to, keyed by job id.
	AppliedJobIDs(ctx context.Context, userID string, jobIDs []string) (map[string]bool, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, j *Job) error {
	_, err := r.db.NewInsert().Model(j).Exec(ctx)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Job, error) {
	j := new(Job)
	err := r.db.NewSelect().
		Model(j).
		Relation("Company").
		Where("j.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Job not found")
		}
		return nil, err
	}
	return j, nil
}

func (r *repository) Update(ctx context.Context, j *Job) error {
	res, err := r.db.NewUpdate().
		Model(j).
		Column("title", "description", "expires_at", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("Job not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Table("job_applications").Where("job_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Table("job_approvals").Where("job_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewDelete().Model((*Job)(nil)).Where("j.id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.NotFound("Job not found")
		}
		return nil
	})
}

func (r *repository) List(ctx context.Context, f ListFilter, p pagination.Params) ([]Job, int, error) {
	var jobs []Job
	q := r.db.NewSelect().
		Model(&jobs).
		Relation("Company").
		OrderExpr("j.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset())

	if f.Status != "" {
		q = q.Where("j.status = ?", f.Status)
	}
	if f.CompanyID != "" {
		q = q.Where("j.company_id = ?", f.CompanyID)
	}
	if f.ApprovedBySchoolID != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM job_approvals a WHERE a.job_id = j.id AND a.school_id = ? AND a.status = 'approved')",
			f.ApprovedBySchoolID,
		)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *repository) ApprovedBySchool(ctx context.Context, jobID, schoolID string) (bool, error) {
	return r.db.NewSelect().
		Table("job_approvals").
		Where("job_id = ?", jobID).
		Where("school_id = ?", schoolID).
		Where("status = 'approved'").
		Exists(ctx)
}

func (r *repository) SchoolDecisions(ctx context.Context, schoolID string, jobIDs []string) (map[string]SchoolDecision, error) {
	decisions := make(map[string]SchoolDecision, len(jobIDs))
	if len(jobIDs) == 0 {
		return decisions, nil
	}

	var rows []struct {
		ID        string         `bun:"id"`
		JobID     string         `bun:"job_id"`
		Status    string         `bun:"status"`
		Comments  sql.NullString `bun:"comments"`
		CreatedAt sql.NullTime   `bun:"created_at"`
	}
	err := r.db.NewSelect().
		Table("job_approvals").
		Column("id", "job_id", "status", "comments", "created_at").
		Where("school_id = ?", schoolID).
		Where("job_id IN (?)", bun.In(jobIDs)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		decisions[row.JobID] = SchoolDecision{
			ID:        row.ID,
			Status:    row.Status,
			Comments:  row.Comments.String,
			CreatedAt: row.CreatedAt.Time,
		}
	}
	return decisions, nil
}

func (r *repository) AppliedJobIDs(ctx context.Context, userID string, jobIDs []string) (map[string]bool, error) {
	applied := make(map[string]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return applied, nil
	}

	var ids []string
	err := r.db.NewSelect().
		Table("job_applications").
		Column("job_id").
		Where("user_id = ?", userID).
		Where("job_id IN (?)", bun.In(jobIDs)).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}
