package approval

import (
	"time"

	"jobboard-service/internal/job"
	"jobboard-service/internal/school"

	"github.com/uptrace/bun"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// JobApproval is one school's decision on one job. The (job, school) pair
// is unique: a school changes its decision in place, it never gets a
// second row.
type JobApproval struct {
	bun.BaseModel `bun:"table:job_approvals,alias:a"`

	ID        string    `bun:"id,pk,type:uuid" json:"id"`
	JobID     string    `bun:"job_id,notnull,type:uuid,unique:job_approvals_job_school" json:"jobId"`
	SchoolID  string    `bun:"school_id,notnull,type:uuid,unique:job_approvals_job_school" json:"schoolId"`
	Status    Status    `bun:"status,notnull,default:'pending'" json:"status"`
	Comments  string    `bun:"comments,nullzero" json:"comments,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	School *school.School `bun:"rel:belongs-to,join:school_id=id" json:"-"`
	Job    *job.Job       `bun:"rel:belongs-to,join:job_id=id" json:"-"`
}

// View is an approval row annotated with the deciding school.
type View struct {
	ID        string      `json:"id"`
	JobID     string      `json:"jobId"`
	Status    Status      `json:"status"`
	Comments  string      `json:"comments,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	School    *school.Ref `json:"school,omitempty"`
}

func (a *JobApproval) View() *View {
	v := &View{
		ID:        a.ID,
		JobID:     a.JobID,
		Status:    a.Status,
		Comments:  a.Comments,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.School != nil {
		ref := a.School.Ref()
		v.School = &ref
	}
	return v
}
