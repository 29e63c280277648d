package auth_test

import (
	"context"
	"testing"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/auth"
	"jobboard-service/internal/authz"
	"jobboard-service/internal/company"
	"jobboard-service/internal/school"
	"jobboard-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// In-memory stores standing in for the signup and lookup repositories.
type store struct {
	users     map[string]*user.User // by email
	schools   map[string]*school.School
	companies map[string]*company.Company
}

func newStore() *store {
	return &store{
		users:     map[string]*user.User{},
		schools:   map[string]*school.School{},
		companies: map[string]*company.Company{},
	}
}

func (s *store) CreateUserWithSchool(ctx context.Context, u *user.User, sc *school.School) error {
	if _, ok := s.users[u.Email]; ok {
		return apperr.Duplicate("email")
	}
	s.schools[sc.ID] = sc
	s.users[u.Email] = u
	return nil
}

func (s *store) CreateUserWithCompany(ctx context.Context, u *user.User, co *company.Company) error {
	if _, ok := s.users[u.Email]; ok {
		return apperr.Duplicate("email")
	}
	s.companies[co.ID] = co
	s.users[u.Email] = u
	return nil
}

func (s *store) CreateStudent(ctx context.Context, u *user.User) error {
	if _, ok := s.users[u.Email]; ok {
		return apperr.Duplicate("email")
	}
	s.users[u.Email] = u
	return nil
}

var _ auth.Repository = (*store)(nil)

func (s *store) Create(ctx context.Context, u *user.User) error { return s.CreateStudent(ctx, u) }

func (s *store) GetByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.UserNotFound()
}

func (s *store) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, apperr.UserNotFound()
	}
	return u, nil
}

func (s *store) ListScoped(ctx context.Context, schoolID, companyID string) ([]user.User, error) {
	return nil, nil
}

var _ user.Repository = (*store)(nil)

func (s *store) List(ctx context.Context) ([]school.School, error) { return nil, nil }

func (s *store) GetSchoolByID(ctx context.Context, id string) (*school.School, error) {
	sc, ok := s.schools[id]
	if !ok {
		return nil, apperr.NotFound("School not found")
	}
	return sc, nil
}

type schoolStore struct{ *store }

func (s schoolStore) GetByID(ctx context.Context, id string) (*school.School, error) {
	return s.GetSchoolByID(ctx, id)
}

var _ school.Repository = schoolStore{}

type companyStore struct{ *store }

func (s companyStore) GetByID(ctx context.Context, id string) (*company.Company, error) {
	co, ok := s.companies[id]
	if !ok {
		return nil, apperr.NotFound("Company not found")
	}
	return co, nil
}

var _ company.Repository = companyStore{}

func setup() (*store, auth.Service) {
	st := newStore()
	tokens := auth.NewTokenProvider("test-secret", 60)
	svc := auth.NewService(st, st, schoolStore{st}, companyStore{st}, tokens)
	return st, svc
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("School_Success", func(t *testing.T) {
		st, svc := setup()

		resp, err := svc.Signup(ctx, auth.SignupRequest{
			Type:   "school",
			User:   &auth.SignupUser{Name: "Ada", Email: "ada@example.com", Password: "secret123"},
			School: &auth.OrgData{Name: "Lovelace High"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)

		u := st.users["ada@example.com"]
		require.NotNil(t, u)
		assert.Equal(t, authz.RoleSchoolAdmin, u.Role)
		assert.NotEmpty(t, u.SchoolID)
		assert.NotEqual(t, "secret123", u.Password, "password must be hashed")

		ref, ok := resp.Data["school"].(school.Ref)
		require.True(t, ok)
		assert.Equal(t, "Lovelace High", ref.Name)
	})

	t.Run("Company_Success", func(t *testing.T) {
		st, svc := setup()

		resp, err := svc.Signup(ctx, auth.SignupRequest{
			Type:    "company",
			User:    &auth.SignupUser{Name: "Grace", Email: "grace@example.com", Password: "secret123"},
			Company: &auth.OrgData{Name: "Hopper Inc"},
		})
		require.NoError(t, err)
		assert.Equal(t, authz.RoleCompanyAdmin, st.users["grace@example.com"].Role)
		_, ok := resp.Data["company"].(company.Ref)
		assert.True(t, ok)
	})

	t.Run("Student_Success", func(t *testing.T) {
		st, svc := setup()

		_, err := svc.Signup(ctx, auth.SignupRequest{
			Type:     "student",
			User:     &auth.SignupUser{Name: "Linus", Email: "linus@example.com", Password: "secret123"},
			SchoolID: "7d7a5e6f-0b65-4f3e-9a9e-1c2b3d4e5f60",
		})
		require.NoError(t, err)
		u := st.users["linus@example.com"]
		assert.Equal(t, authz.RoleStudent, u.Role)
		assert.Equal(t, "7d7a5e6f-0b65-4f3e-9a9e-1c2b3d4e5f60", u.SchoolID)
	})

	t.Run("DefaultType_IsSchool", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.Signup(ctx, auth.SignupRequest{
			User: &auth.SignupUser{Name: "Ada", Email: "ada@example.com", Password: "x"},
		})
		require.Error(t, err)
		e := apperr.From(err)
		assert.Equal(t, apperr.CodeValidation, e.Code)
		assert.Contains(t, e.Details, "school")
	})

	t.Run("Student_BadSchoolID", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.Signup(ctx, auth.SignupRequest{
			Type:     "student",
			User:     &auth.SignupUser{Name: "L", Email: "l@example.com", Password: "x"},
			SchoolID: "not-a-uuid",
		})
		require.Error(t, err)
		assert.Contains(t, apperr.From(err).Details, "schoolId")
	})

	t.Run("MissingUserFields", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.Signup(ctx, auth.SignupRequest{
			Type:   "school",
			User:   &auth.SignupUser{Name: "Ada", Email: "ada@example.com"},
			School: &auth.OrgData{Name: "X"},
		})
		require.Error(t, err)
		assert.Contains(t, apperr.From(err).Details, "password")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, svc := setup()

		req := auth.SignupRequest{
			Type:   "school",
			User:   &auth.SignupUser{Name: "Ada", Email: "ada@example.com", Password: "secret123"},
			School: &auth.OrgData{Name: "Lovelace High"},
		}
		_, err := svc.Signup(ctx, req)
		require.NoError(t, err)

		req.School = &auth.OrgData{Name: "Other School"}
		_, err = svc.Signup(ctx, req)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.CodeDuplicateEntry))
	})
}

func TestSignin(t *testing.T) {
	ctx := context.Background()

	signupOne := func(svc auth.Service) {
		_, err := svc.Signup(ctx, auth.SignupRequest{
			Type:   "school",
			User:   &auth.SignupUser{Name: "Ada", Email: "ada@example.com", Password: "secret123"},
			School: &auth.OrgData{Name: "Lovelace High"},
		})
		if err != nil {
			panic(err)
		}
	}

	t.Run("Success", func(t *testing.T) {
		_, svc := setup()
		signupOne(svc)

		resp, err := svc.Signin(ctx, "ada@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)

		ref, ok := resp.Data["user"].(user.Ref)
		require.True(t, ok)
		assert.Equal(t, "ada@example.com", ref.Email)
		_, ok = resp.Data["school"].(school.Ref)
		assert.True(t, ok, "identity payload includes the owning school")
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.Signin(ctx, "", "")
		assert.True(t, apperr.Is(err, apperr.CodeMissingCredentials))
	})

	t.Run("UnknownEmail_SameErrorAsBadPassword", func(t *testing.T) {
		_, svc := setup()
		signupOne(svc)

		_, err := svc.Signin(ctx, "nobody@example.com", "secret123")
		assert.True(t, apperr.Is(err, apperr.CodeInvalidCredentials))

		_, err = svc.Signin(ctx, "ada@example.com", "wrong")
		assert.True(t, apperr.Is(err, apperr.CodeInvalidCredentials))
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()

	st, svc := setup()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	st.companies["co-1"] = &company.Company{ID: "co-1", Name: "Acme"}
	st.users["ca@example.com"] = &user.User{
		ID: "u1", Name: "CA", Email: "ca@example.com", Password: string(hashed),
		Role: authz.RoleCompanyAdmin, CompanyID: "co-1",
	}

	data, err := svc.Me(ctx, &authz.Principal{ID: "u1", Role: authz.RoleCompanyAdmin, CompanyID: "co-1"})
	require.NoError(t, err)
	ref, ok := data["company"].(company.Ref)
	require.True(t, ok)
	assert.Equal(t, "Acme", ref.Name)
}

func TestTokenProvider(t *testing.T) {
	tokens := auth.NewTokenProvider("test-secret", 60)

	t.Run("Roundtrip", func(t *testing.T) {
		token, err := tokens.Generate("u1", authz.RoleStudent)
		require.NoError(t, err)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Subject)
		assert.Equal(t, authz.RoleStudent, claims.Role)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := tokens.Generate("u1", authz.RoleStudent)
		require.NoError(t, err)

		other := auth.NewTokenProvider("other-secret", 60)
		_, err = other.Parse(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := auth.NewTokenProvider("test-secret", -1)
		token, err := expired.Generate("u1", authz.RoleStudent)
		require.NoError(t, err)

		_, err = tokens.Parse(token)
		assert.Error(t, err)
	})
}
