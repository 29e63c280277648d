package user

import (
	"time"

	"jobboard-service/internal/authz"
	"jobboard-service/internal/company"
	"jobboard-service/internal/school"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                 string     `bun:"id,pk,type:uuid" json:"id"`
	Name               string     `bun:"name,notnull" json:"name"`
	Email              string     `bun:"email,notnull,unique" json:"email"`
	Password           string     `bun:"password,notnull" json:"-"`
	Role               authz.Role `bun:"role,notnull,default:'user'" json:"role"`
	RoleInOrganization string     `bun:"role_in_organization" json:"role_in_organization,omitempty"`
	SchoolID           string     `bun:"school_id,type:uuid,nullzero" json:"schoolId,omitempty"`
	CompanyID          string     `bun:"company_id,type:uuid,nullzero" json:"companyId,omitempty"`
	CreatedAt          time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt          time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	School  *school.School   `bun:"rel:belongs-to,join:school_id=id" json:"-"`
	Company *company.Company `bun:"rel:belongs-to,join:company_id=id" json:"-"`
}

// Principal derives the explicit authorization subject from a stored user.
func (u *User) Principal() *authz.Principal {
	return &authz.Principal{
		ID:        u.ID,
		Role:      u.Role,
		SchoolID:  u.SchoolID,
		CompanyID: u.CompanyID,
	}
}

// Ref is the projection of a user returned from management and auth
// endpoints.
type Ref struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  authz.Role `json:"role"`
}

func (u *User) Ref() Ref {
	return Ref{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
