package application

import (
	"context"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/authz"
	"jobboard-service/internal/db"
	"jobboard-service/internal/events"
	"jobboard-service/internal/job"
	"jobboard-service/internal/pagination"

	"github.com/google/uuid"
)

type ApplyInput struct {
	CoverLetter string `json:"coverLetter"`
	Resume      string `json:"resume"`
}

// HistoryResult is a student's own application history.
type HistoryResult struct {
	Applications []StudentRow     `json:"applications"`
	Pagination   pagination.Block `json:"pagination"`
}

// ListResult is the admin view of one job's applications.
type ListResult struct {
	Applications []Row            `json:"applications"`
	Pagination   pagination.Block `json:"pagination"`
}

// AccessibleResult adds the job summary to the applicant listing.
// Applications holds []Row for admins and []AnonymousRow for students.
type AccessibleResult struct {
	Applications interface{}      `json:"applications"`
	Pagination   pagination.Block `json:"pagination"`
	JobInfo      JobInfo          `json:"jobInfo"`
}

type JobInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	TotalApplicants int    `json:"totalApplicants"`
}

type Service interface {
	Apply(ctx context.Context, jobID string, in ApplyInput, p *authz.Principal) (*Receipt, error)
	// StudentApplications lists the caller's own applications.
	StudentApplications(ctx context.Context, page pagination.Params, p *authz.Principal) (*HistoryResult, error)
	// JobApplications is the plain admin listing of a job's applications.
	JobApplications(ctx context.Context, jobID string, page pagination.Params, p *authz.Principal) (*ListResult, error)
	// AccessibleApplications is the broader applicant view, anonymized for
	// students.
	AccessibleApplications(ctx context.Context, jobID string, page pagination.Params, p *authz.Principal) (*AccessibleResult, error)
}

type service struct {
	repo     Repository
	jobs     job.Repository
	producer *events.Producer
	// requireApproved is the configured strictness of the school admin
	// applications gate.
	requireApproved bool
}

func NewService(repo Repository, jobs job.Repository, producer *events.Producer, requireApproved bool) Service {
	return &service{repo: repo, jobs: jobs, producer: producer, requireApproved: requireApproved}
}

func (s *service) Apply(ctx context.Context, jobID string, in ApplyInput, p *authz.Principal) (*Receipt, error) {
	if d := authz.CanApply(p); !d.Allowed {
		return nil, d.Err()
	}

	a := &JobApplication{
		ID:          uuid.NewString(),
		JobID:       jobID,
		UserID:      p.ID,
		Status:      StatusApplied,
		CoverLetter: in.CoverLetter,
		Resume:      in.Resume,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		// The unique index backs up the in-transaction check; a race that
		// slips past it still surfaces as ALREADY_APPLIED.
		if _, ok := db.IsUniqueViolation(err); ok {
			return nil, apperr.AlreadyApplied()
		}
		return nil, err
	}

	s.producer.Publish(events.EventApplicationSubmitted, map[string]string{
		"job_id":  jobID,
		"user_id": p.ID,
	})

	return &Receipt{ID: a.ID, Status: a.Status, CreatedAt: a.CreatedAt}, nil
}

func (s *service) StudentApplications(ctx context.Context, page pagination.Params, p *authz.Principal) (*HistoryResult, error) {
	apps, total, err := s.repo.ListByUser(ctx, p.ID, page)
	if err != nil {
		return nil, err
	}

	rows := make([]StudentRow, 0, len(apps))
	for i := range apps {
		a := &apps[i]
		row := StudentRow{
			ID:          a.ID,
			Status:      a.Status,
			CreatedAt:   a.CreatedAt,
			CoverLetter: a.CoverLetter,
		}
		if a.Job != nil {
			row.Job = JobRef{ID: a.Job.ID, Title: a.Job.Title}
			if a.Job.Company != nil {
				row.Job.Company = a.Job.Company.Name
			}
		}
		rows = append(rows, row)
	}

	return &HistoryResult{
		Applications: rows,
		Pagination:   pagination.NewBlock(total, page),
	}, nil
}

func (s *service) JobApplications(ctx context.Context, jobID string, page pagination.Params, p *authz.Principal) (*ListResult, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	rule := authz.JobApplicationsRule(p, s.requireApproved)
	if err := s.enforce(ctx, rule, j, p); err != nil {
		return nil, err
	}

	apps, total, err := s.repo.ListByJob(ctx, jobID, rule.SchoolFilter, page)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Applications: fullRows(apps),
		Pagination:   pagination.NewBlock(total, page),
	}, nil
}

func (s *service) AccessibleApplications(ctx context.Context, jobID string, page pagination.Params, p *authz.Principal) (*AccessibleResult, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	rule := authz.AccessibleApplicationsRule(p)
	if err := s.enforce(ctx, rule, j, p); err != nil {
		return nil, err
	}

	apps, total, err := s.repo.ListByJob(ctx, jobID, rule.SchoolFilter, page)
	if err != nil {
		return nil, err
	}

	var rows interface{}
	if rule.Anonymize {
		anon := make([]AnonymousRow, 0, len(apps))
		for i := range apps {
			a := &apps[i]
			status := a.Status
			if status == StatusApplied {
				status = "Applied"
			}
			anon = append(anon, AnonymousRow{
				ID:            a.ID,
				Status:        status,
				Applied:       a.CreatedAt,
				IsCurrentUser: a.UserID == p.ID,
			})
		}
		rows = anon
	} else {
		rows = fullRows(apps)
	}

	return &AccessibleResult{
		Applications: rows,
		Pagination:   pagination.NewBlock(total, page),
		JobInfo:      JobInfo{ID: j.ID, Title: j.Title, TotalApplicants: total},
	}, nil
}

// enforce evaluates an ApplicationsRule against the stored facts it names,
// in the rule's order: base decision, ownership, school decision, own
// application.
func (s *service) enforce(ctx context.Context, rule authz.ApplicationsRule, j *job.Job, p *authz.Principal) error {
	if !rule.Allowed {
		return rule.Err()
	}

	if rule.NeedOwnership && j.CompanyID != p.CompanyID {
		return apperr.PermissionDenied("You can only view applications for your company's jobs")
	}

	if rule.NeedSchoolApproval != authz.ApprovalNotRequired {
		status, ok, err := s.repo.SchoolDecision(ctx, j.ID, p.SchoolID)
		if err != nil {
			return err
		}
		approved := ok && (rule.NeedSchoolApproval == authz.ApprovalExists || status == "approved")
		if !approved {
			return apperr.NotApproved("This job is not approved by your school")
		}
	}

	if rule.NeedApplicant {
		applied, err := s.repo.HasApplied(ctx, j.ID, p.ID)
		if err != nil {
			return err
		}
		if !applied {
			return apperr.PermissionDenied("You can only view applications for jobs you have applied to")
		}
	}

	return nil
}

func fullRows(apps []JobApplication) []Row {
	rows := make([]Row, 0, len(apps))
	for i := range apps {
		a := &apps[i]
		row := Row{
			ID:          a.ID,
			Status:      a.Status,
			CreatedAt:   a.CreatedAt,
			CoverLetter: a.CoverLetter,
		}
		if a.User != nil {
			ref := StudentRef{ID: a.User.ID, Name: a.User.Name, Email: a.User.Email}
			if a.User.School != nil {
				ref.School = a.User.School.Name
			}
			row.Student = &ref
		}
		rows = append(rows, row)
	}
	return rows
}
