package auth

import (
	"context"
	"strings"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/authz"
	"jobboard-service/internal/company"
	"jobboard-service/internal/db"
	"jobboard-service/internal/school"
	"jobboard-service/internal/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthResponse is the token plus the signed-in identity with its owning
// organization projection.
type AuthResponse struct {
	Token string                 `json:"token"`
	Data  map[string]interface{} `json:"data"`
}

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, email, password string) (*AuthResponse, error)
	Me(ctx context.Context, p *authz.Principal) (map[string]interface{}, error)
}

type service struct {
	repo      Repository
	users     user.Repository
	schools   school.Repository
	companies company.Repository
	tokens    *TokenProvider
}

func NewService(repo Repository, users user.Repository, schools school.Repository, companies company.Repository, tokens *TokenProvider) Service {
	return &service{
		repo:      repo,
		users:     users,
		schools:   schools,
		companies: companies,
		tokens:    tokens,
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Type == "" {
		req.Type = "school"
	}

	kind, details := validateSignup(&req)
	if details != nil {
		return nil, apperr.Validation("Validation error", details)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Server()
	}

	u := &user.User{
		ID:                 uuid.NewString(),
		Name:               req.User.Name,
		Email:              req.User.Email,
		Password:           string(hashed),
		Role:               kind.role,
		RoleInOrganization: "staff",
	}

	data := map[string]interface{}{}

	switch req.Type {
	case "school":
		sc := &school.School{ID: uuid.NewString(), Name: req.School.Name}
		u.SchoolID = sc.ID
		err = s.repo.CreateUserWithSchool(ctx, u, sc)
		data["school"] = sc.Ref()
	case "company":
		co := &company.Company{ID: uuid.NewString(), Name: req.Company.Name}
		u.CompanyID = co.ID
		err = s.repo.CreateUserWithCompany(ctx, u, co)
		data["company"] = co.Ref()
	case "student":
		u.SchoolID = req.SchoolID
		err = s.repo.CreateStudent(ctx, u)
	}

	if err != nil {
		return nil, translateSignupError(err)
	}

	token, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Server()
	}

	data["user"] = u.Ref()
	return &AuthResponse{Token: token, Data: data}, nil
}

func (s *service) Signin(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, apperr.MissingCredentials("Please provide email and password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.CodeUserNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, apperr.InvalidCredentials()
	}

	token, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Server()
	}

	data, err := s.identityData(ctx, u)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, Data: data}, nil
}

func (s *service) Me(ctx context.Context, p *authz.Principal) (map[string]interface{}, error) {
	u, err := s.users.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return s.identityData(ctx, u)
}

// identityData builds {user, school|company} for the given stored user.
func (s *service) identityData(ctx context.Context, u *user.User) (map[string]interface{}, error) {
	data := map[string]interface{}{"user": u.Ref()}

	switch {
	case u.SchoolID != "":
		sc, err := s.schools.GetByID(ctx, u.SchoolID)
		if err == nil {
			data["school"] = sc.Ref()
		} else if !apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
	case u.CompanyID != "":
		co, err := s.companies.GetByID(ctx, u.CompanyID)
		if err == nil {
			data["company"] = co.Ref()
		} else if !apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
	}

	return data, nil
}

// translateSignupError maps unique-constraint violations from the signup
// transaction to the duplicate-entry taxonomy with a best-effort field name.
func translateSignupError(err error) error {
	constraint, ok := db.IsUniqueViolation(err)
	if !ok {
		return err
	}
	if strings.Contains(constraint, "email") {
		return apperr.Duplicate("email")
	}
	return apperr.Duplicate("name")
}
