package auth

import (
	"regexp"

	"jobboard-service/internal/authz"
)

type SignupUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OrgData struct {
	Name string `json:"name"`
}

type SignupRequest struct {
	Type     string      `json:"type"`
	User     *SignupUser `json:"user"`
	School   *OrgData    `json:"school"`
	Company  *OrgData    `json:"company"`
	SchoolID string      `json:"schoolId"`
}

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// signupKind is one strategy per signup type: how to validate the request
// and which role the created user gets.
type signupKind struct {
	role     authz.Role
	validate func(*SignupRequest) map[string]string
}

var signupKinds = map[string]signupKind{
	"school": {
		role: authz.RoleSchoolAdmin,
		validate: func(req *SignupRequest) map[string]string {
			if req.School == nil {
				return map[string]string{"school": "School data is required"}
			}
			if req.School.Name == "" {
				return map[string]string{"schoolName": "School name is required"}
			}
			return nil
		},
	},
	"company": {
		role: authz.RoleCompanyAdmin,
		validate: func(req *SignupRequest) map[string]string {
			if req.Company == nil {
				return map[string]string{"company": "Company data is required"}
			}
			if req.Company.Name == "" {
				return map[string]string{"companyName": "Company name is required"}
			}
			return nil
		},
	},
	"student": {
		role: authz.RoleStudent,
		validate: func(req *SignupRequest) map[string]string {
			if req.SchoolID != "" && !uuidPattern.MatchString(req.SchoolID) {
				return map[string]string{"schoolId": "Invalid school ID format"}
			}
			return nil
		},
	},
}

// validateSignup checks the type-specific organization data and the common
// user fields, returning per-field details on failure.
func validateSignup(req *SignupRequest) (signupKind, map[string]string) {
	kind, ok := signupKinds[req.Type]
	if !ok {
		return signupKind{}, map[string]string{"type": "Unknown signup type: " + req.Type}
	}

	if errs := kind.validate(req); errs != nil {
		return signupKind{}, errs
	}

	switch {
	case req.User == nil:
		return signupKind{}, map[string]string{"user": "User data is required"}
	case req.User.Name == "":
		return signupKind{}, map[string]string{"name": "Name is required"}
	case req.User.Email == "":
		return signupKind{}, map[string]string{"email": "Email is required"}
	case req.User.Password == "":
		return signupKind{}, map[string]string{"password": "Password is required"}
	}

	return kind, nil
}
