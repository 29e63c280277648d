package job

import (
	"context"
	"time"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/authz"
	"jobboard-service/internal/events"
	"jobboard-service/internal/pagination"

	"github.com/google/uuid"
)

type CreateInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Status      Status     `json:"status"`
}

// UpdateInput is a present-and-truthy patch: non-zero fields replace the
// stored value, zero fields keep it. An empty string cannot clear a field;
// that is the documented contract, not an oversight.
type UpdateInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Status      Status     `json:"status"`
}

type ListQuery struct {
	Status Status
	// ApprovedOnly restricts a school admin's listing to jobs their school
	// approved.
	ApprovedOnly bool
	Page         pagination.Params
}

type ListResult struct {
	Jobs       []*View          `json:"jobs"`
	Pagination pagination.Block `json:"pagination"`
}

type Service interface {
	Create(ctx context.Context, in CreateInput, p *authz.Principal) (*View, error)
	List(ctx context.Context, q ListQuery, p *authz.Principal) (*ListResult, error)
	Get(ctx context.Context, id string, p *authz.Principal) (*View, error)
	Update(ctx context.Context, id string, patch UpdateInput, p *authz.Principal) (*View, error)
	Delete(ctx context.Context, id string, p *authz.Principal) (string, error)
}

type service struct {
	repo     Repository
	producer *events.Producer
}

func NewService(repo Repository, producer *events.Producer) Service {
	return &service{repo: repo, producer: producer}
}

func (s *service) Create(ctx context.Context, in CreateInput, p *authz.Principal) (*View, error) {
	if d := authz.CanCreateJob(p); !d.Allowed {
		return nil, d.Err()
	}

	if in.Title == "" || in.Description == "" {
		return nil, apperr.MissingFields("Please provide title and description")
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return nil, apperr.Validation("Validation error", map[string]string{"status": "Invalid job status"})
	}

	j := &Job{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		ExpiresAt:   in.ExpiresAt,
		Status:      status,
		CompanyID:   p.CompanyID,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}

	s.producer.Publish(events.EventJobCreated, map[string]string{
		"job_id":     j.ID,
		"company_id": j.CompanyID,
	})

	return j.View(), nil
}

func (s *service) List(ctx context.Context, q ListQuery, p *authz.Principal) (*ListResult, error) {
	scope := authz.JobListScope(p, q.ApprovedOnly)

	filter := ListFilter{Status: string(q.Status)}
	if scope.OnlyStatus != "" {
		filter.Status = scope.OnlyStatus
	}
	filter.CompanyID = scope.CompanyID
	filter.ApprovedBySchoolID = scope.ApprovedBySchoolID

	jobs, total, err := s.repo.List(ctx, filter, q.Page)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(jobs))
	ids := make([]string, 0, len(jobs))
	for i := range jobs {
		views = append(views, jobs[i].View())
		ids = append(ids, jobs[i].ID)
	}

	// Annotations are batched: one lookup per concern for the whole page,
	// never one query per row.
	if scope.AnnotateSchoolID != "" {
		decisions, err := s.repo.SchoolDecisions(ctx, scope.AnnotateSchoolID, ids)
		if err != nil {
			return nil, err
		}
		for _, v := range views {
			if d, ok := decisions[v.ID]; ok {
				decision := d
				v.SchoolApproval = &decision
			}
		}
	}

	if scope.AnnotateAppliedUserID != "" {
		applied, err := s.repo.AppliedJobIDs(ctx, scope.AnnotateAppliedUserID, ids)
		if err != nil {
			return nil, err
		}
		for _, v := range views {
			isApplied := applied[v.ID]
			v.IsApplied = &isApplied
		}
	}

	return &ListResult{
		Jobs:       views,
		Pagination: pagination.NewBlock(total, q.Page),
	}, nil
}

func (s *service) Get(ctx context.Context, id string, p *authz.Principal) (*View, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	facts := authz.JobFacts{Status: string(j.Status), CompanyID: j.CompanyID}
	if p.Is(authz.RoleStudent) && p.SchoolID != "" {
		approved, err := s.repo.ApprovedBySchool(ctx, j.ID, p.SchoolID)
		if err != nil {
			return nil, err
		}
		facts.ApprovedBySchool = approved
	}

	if d := authz.CanViewJob(p, facts); !d.Allowed {
		return nil, d.Err()
	}

	v := j.View()

	if p.Is(authz.RoleStudent) {
		applied, err := s.repo.AppliedJobIDs(ctx, p.ID, []string{j.ID})
		if err != nil {
			return nil, err
		}
		isApplied := applied[j.ID]
		v.IsApplied = &isApplied
	}

	if p.Is(authz.RoleSchoolAdmin) && p.SchoolID != "" {
		decisions, err := s.repo.SchoolDecisions(ctx, p.SchoolID, []string{j.ID})
		if err != nil {
			return nil, err
		}
		if d, ok := decisions[j.ID]; ok {
			v.SchoolApproval = &d
		}
	}

	return v, nil
}

func (s *service) Update(ctx context.Context, id string, patch UpdateInput, p *authz.Principal) (*View, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := authz.CanMutateJob(p, j.CompanyID); !d.Allowed {
		return nil, apperr.PermissionDenied("You do not have permission to update this job")
	}

	if patch.Title != "" {
		j.Title = patch.Title
	}
	if patch.Description != "" {
		j.Description = patch.Description
	}
	if patch.ExpiresAt != nil {
		j.ExpiresAt = patch.ExpiresAt
	}
	if patch.Status != "" {
		if !ValidStatus(patch.Status) {
			return nil, apperr.Validation("Validation error", map[string]string{"status": "Invalid job status"})
		}
		j.Status = patch.Status
	}
	j.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, j); err != nil {
		return nil, err
	}

	return j.View(), nil
}

func (s *service) Delete(ctx context.Context, id string, p *authz.Principal) (string, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if d := authz.CanMutateJob(p, j.CompanyID); !d.Allowed {
		return "", apperr.PermissionDenied("You do not have permission to delete this job")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}

	return "Job deleted successfully", nil
}
