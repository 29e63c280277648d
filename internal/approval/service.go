package approval

import (
	"context"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/authz"
	"jobboard-service/internal/events"
	"jobboard-service/internal/job"
	"jobboard-service/internal/pagination"
)

type ApproveInput struct {
	Status   Status `json:"status"`
	Comments string `json:"comments"`
}

type ListResult struct {
	Approvals  []*View          `json:"approvals"`
	Pagination pagination.Block `json:"pagination"`
}

// ApprovedJobsResult is the per-school listing of jobs the school approved.
type ApprovedJobsResult struct {
	ApprovedJobs []*job.View      `json:"approvedJobs"`
	Pagination   pagination.Block `json:"pagination"`
}

type Service interface {
	// Approve records or revises the caller school's decision on a job.
	Approve(ctx context.Context, jobID string, in ApproveInput, p *authz.Principal) (string, error)
	GetJobApprovals(ctx context.Context, jobID string, page pagination.Params, p *authz.Principal) (*ListResult, error)
	GetSchoolApprovedJobs(ctx context.Context, page pagination.Params, p *authz.Principal) (*ApprovedJobsResult, error)
}

type service struct {
	repo     Repository
	jobs     job.Repository
	producer *events.Producer
}

func NewService(repo Repository, jobs job.Repository, producer *events.Producer) Service {
	return &service{repo: repo, jobs: jobs, producer: producer}
}

func (s *service) Approve(ctx context.Context, jobID string, in ApproveInput, p *authz.Principal) (string, error) {
	if d := authz.CanRecordApproval(p); !d.Allowed {
		return "", d.Err()
	}

	status := in.Status
	if status == "" {
		status = StatusApproved
	}
	if status != StatusApproved && status != StatusRejected {
		return "", apperr.Validation("Validation error", map[string]string{"status": "Status must be approved or rejected"})
	}

	decision, created, err := s.repo.Decide(ctx, jobID, p.SchoolID, status, in.Comments)
	if err != nil {
		return "", err
	}

	s.producer.Publish(events.EventApprovalRecorded, map[string]string{
		"job_id":    jobID,
		"school_id": p.SchoolID,
		"status":    string(decision.Status),
		"created":   boolString(created),
	})

	return "Job approval status updated", nil
}

func (s *service) GetJobApprovals(ctx context.Context, jobID string, page pagination.Params, p *authz.Principal) (*ListResult, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanViewApprovals(p, j.CompanyID); !d.Allowed {
		return nil, d.Err()
	}

	approvals, total, err := s.repo.ListByJob(ctx, jobID, page)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(approvals))
	for i := range approvals {
		views = append(views, approvals[i].View())
	}

	return &ListResult{
		Approvals:  views,
		Pagination: pagination.NewBlock(total, page),
	}, nil
}

func (s *service) GetSchoolApprovedJobs(ctx context.Context, page pagination.Params, p *authz.Principal) (*ApprovedJobsResult, error) {
	if d := authz.CanViewSchoolApprovedJobs(p); !d.Allowed {
		return nil, d.Err()
	}

	approvals, total, err := s.repo.ApprovedForSchool(ctx, p.SchoolID, page)
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.View, 0, len(approvals))
	for i := range approvals {
		if approvals[i].Job != nil {
			jobs = append(jobs, approvals[i].Job.View())
		}
	}

	return &ApprovedJobsResult{
		ApprovedJobs: jobs,
		Pagination:   pagination.NewBlock(total, page),
	}, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
