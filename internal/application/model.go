package application

import (
	"time"

	"jobboard-service/internal/job"
	"jobboard-service/internal/user"

	"github.com/uptrace/bun"
)

const StatusApplied = "applied"

// JobApplication is one student's application to one job. The (job, user)
// pair is unique: applying twice is an error, never a second row.
type JobApplication struct {
	bun.BaseModel `bun:"table:job_applications,alias:ap"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	JobID       string    `bun:"job_id,notnull,type:uuid,unique:job_applications_job_user" json:"jobId"`
	UserID      string    `bun:"user_id,notnull,type:uuid,unique:job_applications_job_user" json:"userId"`
	Status      string    `bun:"status,notnull,default:'applied'" json:"status"`
	CoverLetter string    `bun:"cover_letter,nullzero" json:"coverLetter,omitempty"`
	Resume      string    `bun:"resume,nullzero" json:"resume,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	Job  *job.Job   `bun:"rel:belongs-to,join:job_id=id" json:"-"`
	User *user.User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// Receipt is the confirmation payload returned to the applicant.
type Receipt struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// StudentRow is one entry of a student's own application history.
type StudentRow struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Job         JobRef    `json:"job"`
}

// JobRef is the job projection embedded in application history rows.
type JobRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company,omitempty"`
}

// Row is the full applicant view returned to admins.
type Row struct {
	ID          string      `json:"id"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	CoverLetter string      `json:"coverLetter,omitempty"`
	Student     *StudentRef `json:"student"`
}

// StudentRef identifies one applicant, with their school when known.
type StudentRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	School string `json:"school,omitempty"`
}

// AnonymousRow is the stripped-down view applicants get of each other.
type AnonymousRow struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Applied       time.Time `json:"applied"`
	IsCurrentUser bool      `json:"isCurrentUser"`
}
