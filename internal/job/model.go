package job

import (
	"time"

	"jobboard-service/internal/company"

	"github.com/uptrace/bun"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusDraft   Status = "draft"
	StatusClosed  Status = "closed"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusExpired, StatusDraft, StatusClosed:
		return true
	}
	return false
}

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID          string     `bun:"id,pk,type:uuid" json:"id"`
	Title       string     `bun:"title,notnull" json:"title"`
	Description string     `bun:"description,notnull" json:"description"`
	ExpiresAt   *time.Time `bun:"expires_at,nullzero" json:"expiresAt,omitempty"`
	Status      Status     `bun:"status,notnull,default:'active'" json:"status"`
	CompanyID   string     `bun:"company_id,notnull,type:uuid" json:"companyId"`

	// Derived fields. Only the approval and application workflows may move
	// them, atomically with the row they count.
	IsApproved       bool `bun:"is_approved,notnull,default:false" json:"isApproved"`
	ApprovalCount    int  `bun:"approval_count,notnull,default:0" json:"approvalCount"`
	ApplicationCount int  `bun:"application_count,notnull,default:0" json:"applicationCount"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	Company *company.Company `bun:"rel:belongs-to,join:company_id=id" json:"-"`
}

// SchoolDecision is a school's own approval row attached to job views for
// school admins.
type SchoolDecision struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// View is the role-shaped projection of a job returned by the directory.
type View struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	ExpiresAt        *time.Time      `json:"expiresAt,omitempty"`
	Status           Status          `json:"status"`
	IsApproved       bool            `json:"isApproved"`
	ApprovalCount    int             `json:"approvalCount"`
	ApplicationCount int             `json:"applicationCount"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	Company          *company.Ref    `json:"company,omitempty"`
	SchoolApproval   *SchoolDecision `json:"schoolApproval,omitempty"`
	IsApplied        *bool           `json:"isApplied,omitempty"`
}

func (j *Job) View() *View {
	v := &View{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		ExpiresAt:        j.ExpiresAt,
		Status:           j.Status,
		IsApproved:       j.IsApproved,
		ApprovalCount:    j.ApprovalCount,
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
	if j.Company != nil {
		ref := j.Company.Ref()
		v.Company = &ref
	}
	return v
}
