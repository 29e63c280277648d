package user

import (
	"context"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/authz"
	"jobboard-service/internal/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateInput struct {
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Password           string     `json:"password"`
	Role               authz.Role `json:"role"`
	RoleInOrganization string     `json:"role_in_organization"`
}

type Service interface {
	// CreateUser adds a user inside the calling admin's organization,
	// subject to the role-creation matrix.
	CreateUser(ctx context.Context, in CreateInput, admin *authz.Principal) (*Ref, error)
	// GetUsers lists users scoped to the caller's organization; admins see
	// everyone.
	GetUsers(ctx context.Context, admin *authz.Principal) ([]User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateUser(ctx context.Context, in CreateInput, admin *authz.Principal) (*Ref, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.MissingFields("Please provide name, email and password")
	}

	role := in.Role
	if role == "" {
		role = authz.RoleStudent
	}

	if !authz.CanCreateRole(admin.Role, role) {
		return nil, apperr.PermissionDenied("You don't have permission to create a user with role: " + string(role))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Server()
	}

	roleInOrg := in.RoleInOrganization
	if roleInOrg == "" {
		roleInOrg = "staff"
	}

	u := &User{
		ID:                 uuid.NewString(),
		Name:               in.Name,
		Email:              in.Email,
		Password:           string(hashed),
		Role:               role,
		RoleInOrganization: roleInOrg,
	}

	// The new user inherits the creating admin's organization.
	switch {
	case admin.SchoolID != "" && (admin.Role == authz.RoleSchoolAdmin || admin.Role == authz.RoleAdmin):
		u.SchoolID = admin.SchoolID
	case admin.CompanyID != "" && (admin.Role == authz.RoleCompanyAdmin || admin.Role == authz.RoleAdmin):
		u.CompanyID = admin.CompanyID
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if _, ok := db.IsUniqueViolation(err); ok {
			return nil, apperr.Duplicate("email")
		}
		return nil, err
	}

	ref := u.Ref()
	return &ref, nil
}

func (s *service) GetUsers(ctx context.Context, admin *authz.Principal) ([]User, error) {
	if d := authz.CanListUsers(admin); !d.Allowed {
		return nil, d.Err()
	}

	var schoolID, companyID string
	switch admin.Role {
	case authz.RoleSchoolAdmin:
		schoolID = admin.SchoolID
	case authz.RoleCompanyAdmin:
		companyID = admin.CompanyID
	}

	return s.repo.ListScoped(ctx, schoolID, companyID)
}
