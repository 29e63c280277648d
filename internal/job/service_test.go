package job_test

import (
	"context"
	"testing"
	"time"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/authz"
	"jobboard-service/internal/job"
	"jobboard-service/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock repository
type mockRepo struct {
	jobs       map[string]*job.Job
	approvals  map[string]map[string]bool // jobID -> schoolID -> approved
	applied    map[string]map[string]bool // userID -> jobID
	decisions  map[string]map[string]job.SchoolDecision
	lastFilter job.ListFilter
	created    *job.Job
	deleted    string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		jobs:      map[string]*job.Job{},
		approvals: map[string]map[string]bool{},
		applied:   map[string]map[string]bool{},
		decisions: map[string]map[string]job.SchoolDecision{},
	}
}

func (m *mockRepo) Create(ctx context.Context, j *job.Job) error {
	m.created = j
	m.jobs[j.ID] = j
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, apperr.NotFound("Job not found")
	}
	return j, nil
}

func (m *mockRepo) Update(ctx context.Context, j *job.Job) error {
	if _, ok := m.jobs[j.ID]; !ok {
		return apperr.NotFound("Job not found")
	}
	m.jobs[j.ID] = j
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.jobs[id]; !ok {
		return apperr.NotFound("Job not found")
	}
	delete(m.jobs, id)
	m.deleted = id
	return nil
}

func (m *mockRepo) List(ctx context.Context, f job.ListFilter, p pagination.Params) ([]job.Job, int, error) {
	m.lastFilter = f
	var out []job.Job
	for _, j := range m.jobs {
		if f.Status != "" && string(j.Status) != f.Status {
			continue
		}
		if f.CompanyID != "" && j.CompanyID != f.CompanyID {
			continue
		}
		if f.ApprovedBySchoolID != "" && !m.approvals[j.ID][f.ApprovedBySchoolID] {
			continue
		}
		out = append(out, *j)
	}
	return out, len(out), nil
}

func (m *mockRepo) ApprovedBySchool(ctx context.Context, jobID, schoolID string) (bool, error) {
	return m.approvals[jobID][schoolID], nil
}

func (m *mockRepo) SchoolDecisions(ctx context.Context, schoolID string, jobIDs []string) (map[string]job.SchoolDecision, error) {
	out := map[string]job.SchoolDecision{}
	for _, id := range jobIDs {
		if d, ok := m.decisions[id][schoolID]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func (m *mockRepo) AppliedJobIDs(ctx context.Context, userID string, jobIDs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range jobIDs {
		if m.applied[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

var _ job.Repository = (*mockRepo)(nil)

func seedJob(repo *mockRepo, id, companyID string, status job.Status) *job.Job {
	j := &job.Job{
		ID:          id,
		Title:       "Backend Engineer",
		Description: "Go services",
		Status:      status,
		CompanyID:   companyID,
		CreatedAt:   time.Now(),
	}
	repo.jobs[id] = j
	return j
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("CompanyAdmin_Success", func(t *testing.T) {
		repo := newMockRepo()
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "u1", Role: authz.RoleCompanyAdmin, CompanyID: "company-1"}
		v, err := svc.Create(ctx, job.CreateInput{Title: "Intern", Description: "Summer role"}, p)
		require.NoError(t, err)
		assert.Equal(t, "Intern", v.Title)
		assert.Equal(t, job.StatusActive, v.Status)
		require.NotNil(t, repo.created)
		assert.Equal(t, "company-1", repo.created.CompanyID)
		assert.NotEmpty(t, repo.created.ID)
	})

	t.Run("Student_Denied", func(t *testing.T) {
		svc := job.NewService(newMockRepo(), nil)

		p := &authz.Principal{ID: "u1", Role: authz.RoleStudent}
		_, err := svc.Create(ctx, job.CreateInput{Title: "x", Description: "y"}, p)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.CodePermissionDenied))
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := job.NewService(newMockRepo(), nil)

		p := &authz.Principal{ID: "u1", Role: authz.RoleCompanyAdmin, CompanyID: "company-1"}
		_, err := svc.Create(ctx, job.CreateInput{Title: "only title"}, p)
		assert.True(t, apperr.Is(err, apperr.CodeMissingFields))
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := job.NewService(newMockRepo(), nil)

		p := &authz.Principal{ID: "u1", Role: authz.RoleCompanyAdmin, CompanyID: "company-1"}
		_, err := svc.Create(ctx, job.CreateInput{Title: "x", Description: "y", Status: "archived"}, p)
		assert.True(t, apperr.Is(err, apperr.CodeValidation))
	})
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous_ActiveOnly", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		seedJob(repo, "j2", "company-1", job.StatusDraft)
		svc := job.NewService(repo, nil)

		result, err := svc.List(ctx, job.ListQuery{Page: pagination.Params{Page: 1, Limit: 10}}, nil)
		require.NoError(t, err)
		assert.Len(t, result.Jobs, 1)
		assert.Equal(t, "active", repo.lastFilter.Status)
	})

	t.Run("Student_SchoolApprovalFilterAndIsApplied", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		seedJob(repo, "j2", "company-1", job.StatusActive)
		repo.approvals["j1"] = map[string]bool{"school-1": true}
		repo.applied["student-1"] = map[string]bool{"j1": true}
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "student-1", Role: authz.RoleStudent, SchoolID: "school-1"}
		result, err := svc.List(ctx, job.ListQuery{Page: pagination.Params{Page: 1, Limit: 10}}, p)
		require.NoError(t, err)
		require.Len(t, result.Jobs, 1)
		assert.Equal(t, "j1", result.Jobs[0].ID)
		require.NotNil(t, result.Jobs[0].IsApplied)
		assert.True(t, *result.Jobs[0].IsApplied)
	})

	t.Run("SchoolAdmin_DecisionAnnotation", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusDraft)
		repo.decisions["j1"] = map[string]job.SchoolDecision{
			"school-1": {ID: "a1", Status: "rejected", Comments: "not relevant"},
		}
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "sa1", Role: authz.RoleSchoolAdmin, SchoolID: "school-1"}
		result, err := svc.List(ctx, job.ListQuery{Page: pagination.Params{Page: 1, Limit: 10}}, p)
		require.NoError(t, err)
		require.Len(t, result.Jobs, 1)
		require.NotNil(t, result.Jobs[0].SchoolApproval)
		assert.Equal(t, "rejected", result.Jobs[0].SchoolApproval.Status)
	})

	t.Run("CompanyAdmin_OwnJobsOnly", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusDraft)
		seedJob(repo, "j2", "company-2", job.StatusActive)
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "ca1", Role: authz.RoleCompanyAdmin, CompanyID: "company-1"}
		result, err := svc.List(ctx, job.ListQuery{Page: pagination.Params{Page: 1, Limit: 10}}, p)
		require.NoError(t, err)
		require.Len(t, result.Jobs, 1)
		assert.Equal(t, "j1", result.Jobs[0].ID)
	})
}

func TestServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		svc := job.NewService(newMockRepo(), nil)
		_, err := svc.Get(ctx, "missing", nil)
		assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	})

	t.Run("Student_UnapprovedJobHidden", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "s1", Role: authz.RoleStudent, SchoolID: "school-1"}
		_, err := svc.Get(ctx, "j1", p)
		assert.True(t, apperr.Is(err, apperr.CodeJobNotApproved))
	})

	t.Run("Student_ApprovedJobVisible", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		repo.approvals["j1"] = map[string]bool{"school-1": true}
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "s1", Role: authz.RoleStudent, SchoolID: "school-1"}
		v, err := svc.Get(ctx, "j1", p)
		require.NoError(t, err)
		require.NotNil(t, v.IsApplied)
		assert.False(t, *v.IsApplied)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("PatchKeepsUnsetFields", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "ca1", Role: authz.RoleCompanyAdmin, CompanyID: "company-1"}
		v, err := svc.Update(ctx, "j1", job.UpdateInput{Title: "Senior Backend Engineer"}, p)
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", v.Title)
		assert.Equal(t, "Go services", v.Description)
	})

	t.Run("OtherCompany_Denied", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "ca2", Role: authz.RoleCompanyAdmin, CompanyID: "company-2"}
		_, err := svc.Update(ctx, "j1", job.UpdateInput{Title: "hijack"}, p)
		assert.True(t, apperr.Is(err, apperr.CodePermissionDenied))
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "ca1", Role: authz.RoleCompanyAdmin, CompanyID: "company-1"}
		_, err := svc.Update(ctx, "j1", job.UpdateInput{Status: "archived"}, p)
		assert.True(t, apperr.Is(err, apperr.CodeValidation))
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner_Success", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "ca1", Role: authz.RoleCompanyAdmin, CompanyID: "company-1"}
		msg, err := svc.Delete(ctx, "j1", p)
		require.NoError(t, err)
		assert.Equal(t, "Job deleted successfully", msg)
		assert.Equal(t, "j1", repo.deleted)
	})

	t.Run("SchoolAdmin_Denied", func(t *testing.T) {
		repo := newMockRepo()
		seedJob(repo, "j1", "company-1", job.StatusActive)
		svc := job.NewService(repo, nil)

		p := &authz.Principal{ID: "sa1", Role: authz.RoleSchoolAdmin, SchoolID: "school-1"}
		_, err := svc.Delete(ctx, "j1", p)
		assert.True(t, apperr.Is(err, apperr.CodePermissionDenied))
	})
}
