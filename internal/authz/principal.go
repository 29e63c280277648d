package authz

// Role is the closed set of actor kinds the policy dispatches on.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSchoolAdmin  Role = "school_admin"
	RoleCompanyAdmin Role = "company_admin"
	// RoleStudent is the stored role value for students. The persisted
	// role string is "user" for historical reasons.
	RoleStudent Role = "user"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSchoolAdmin, RoleCompanyAdmin, RoleStudent:
		return true
	}
	return false
}

// Principal is the authenticated actor performing an action. A nil
// *Principal means anonymous access. Every operation takes it as an
// explicit parameter; there is no ambient request state.
type Principal struct {
	ID        string
	Role      Role
	SchoolID  string
	CompanyID string
}

func (p *Principal) Anonymous() bool { return p == nil }

func (p *Principal) Is(role Role) bool { return p != nil && p.Role == role }
