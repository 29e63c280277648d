// Package authz is the authorization policy for jobs, approvals and
// applications. It is pure: functions map a Principal and already-fetched
// facts to decision values, never touching the store themselves. The role
// behavior matrix lives here and nowhere else; workflow services only
// evaluate what this package tells them to.
package authz

import "jobboard-service/internal/apperr"

// Decision is the allow/deny outcome of a policy check. Denials carry the
// stable code and message the transport layer renders.
type Decision struct {
	Allowed bool
	Code    apperr.Code
	Reason  string
}

var Allow = Decision{Allowed: true}

func Deny(code apperr.Code, reason string) Decision {
	return Decision{Code: code, Reason: reason}
}

// Err converts a denial to its taxonomy error. Allowed decisions return nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Code {
	case apperr.CodeInvalidUser:
		return apperr.InvalidUser(d.Reason)
	case apperr.CodeNotApproved:
		return apperr.NotApproved(d.Reason)
	case apperr.CodeJobNotApproved:
		return apperr.JobNotApproved(d.Reason)
	default:
		return apperr.PermissionDenied(d.Reason)
	}
}

// JobScope describes the slice of the job directory a principal may see and
// how rows must be shaped for them. Zero fields mean "no restriction" /
// "no annotation".
type JobScope struct {
	// OnlyStatus restricts listed jobs to one status.
	OnlyStatus string
	// CompanyID restricts listed jobs to one owning company.
	CompanyID string
	// ApprovedBySchoolID restricts listed jobs to those with an approved
	// decision from the given school.
	ApprovedBySchoolID string
	// AnnotateSchoolID asks for the given school's own decision row to be
	// attached to each job as schoolApproval.
	AnnotateSchoolID string
	// AnnotateAppliedUserID asks for an isApplied flag per job, computed
	// against the given user's applications in one batched lookup.
	AnnotateAppliedUserID string
}

// JobListScope encodes the list-filter column of the role matrix.
// approvedOnly is the school_admin option to restrict the listing to jobs
// their school has approved.
func JobListScope(p *Principal, approvedOnly bool) JobScope {
	switch {
	case p.Anonymous():
		return JobScope{OnlyStatus: "active"}
	case p.Role == RoleStudent:
		s := JobScope{OnlyStatus: "active", AnnotateAppliedUserID: p.ID}
		if p.SchoolID != "" {
			s.ApprovedBySchoolID = p.SchoolID
		}
		return s
	case p.Role == RoleCompanyAdmin && p.CompanyID != "":
		return JobScope{CompanyID: p.CompanyID}
	case p.Role == RoleSchoolAdmin:
		s := JobScope{AnnotateSchoolID: p.SchoolID}
		if approvedOnly {
			s.ApprovedBySchoolID = p.SchoolID
		}
		return s
	case p.Role == RoleAdmin:
		return JobScope{}
	default:
		return JobScope{OnlyStatus: "active"}
	}
}

// JobFacts are the stored facts CanViewJob needs. ApprovedBySchool is the
// caller's answer to "has the principal's school approved this job"; it is
// only consulted for students with a school.
type JobFacts struct {
	Status           string
	CompanyID        string
	ApprovedBySchool bool
}

// CanViewJob applies the single-row visibility rule, mirroring the list
// filter for one job.
func CanViewJob(p *Principal, facts JobFacts) Decision {
	if p.Is(RoleAdmin) {
		return Allow
	}
	if p.Anonymous() || p.Role == RoleStudent {
		if facts.Status != "active" {
			return Deny(apperr.CodePermissionDenied, "Access to this job is restricted")
		}
		if !p.Anonymous() && p.SchoolID != "" && !facts.ApprovedBySchool {
			return Deny(apperr.CodeJobNotApproved, "This job is not approved by your school")
		}
		return Allow
	}
	if p.Role == RoleCompanyAdmin && facts.CompanyID != p.CompanyID {
		return Deny(apperr.CodePermissionDenied, "You do not have permission to view this job")
	}
	if p.Role == RoleCompanyAdmin || p.Role == RoleSchoolAdmin {
		return Allow
	}
	return Deny(apperr.CodePermissionDenied, "Access to this job is restricted")
}

// CanCreateJob: company admins with a company, or admins.
func CanCreateJob(p *Principal) Decision {
	if p.Is(RoleAdmin) {
		return Allow
	}
	if p.Is(RoleCompanyAdmin) && p.CompanyID != "" {
		return Allow
	}
	return Deny(apperr.CodePermissionDenied, "Only company admins can create jobs")
}

// CanMutateJob guards update and delete: a company admin may only touch
// jobs of its own company; an admin may touch any.
func CanMutateJob(p *Principal, ownerCompanyID string) Decision {
	if p.Is(RoleAdmin) {
		return Allow
	}
	if p.Is(RoleCompanyAdmin) {
		if ownerCompanyID == p.CompanyID {
			return Allow
		}
		return Deny(apperr.CodePermissionDenied, "You do not have permission to modify this job")
	}
	return Deny(apperr.CodePermissionDenied, "You do not have permission to modify this job")
}

// CanRecordApproval: school admins only, and they must belong to a school.
func CanRecordApproval(p *Principal) Decision {
	if !p.Is(RoleSchoolAdmin) {
		return Deny(apperr.CodePermissionDenied, "Only school admins can approve jobs")
	}
	if p.SchoolID == "" {
		return Deny(apperr.CodeInvalidUser, "School admin must be associated with a school")
	}
	return Allow
}

// CanViewApprovals: company admins only for their own jobs; school admins
// and admins unrestricted.
func CanViewApprovals(p *Principal, ownerCompanyID string) Decision {
	if p.Anonymous() || p.Role == RoleStudent {
		return Deny(apperr.CodePermissionDenied, "You do not have permission to view this job's approvals")
	}
	if p.Role == RoleCompanyAdmin && ownerCompanyID != p.CompanyID {
		return Deny(apperr.CodePermissionDenied, "You do not have permission to view this job's approvals")
	}
	return Allow
}

// CanViewSchoolApprovedJobs gates the per-school approved-jobs listing.
func CanViewSchoolApprovedJobs(p *Principal) Decision {
	if p.Is(RoleSchoolAdmin) {
		return Allow
	}
	return Deny(apperr.CodePermissionDenied, "Only school admins can view approved jobs")
}

// CanApply: students only.
func CanApply(p *Principal) Decision {
	if p.Is(RoleStudent) {
		return Allow
	}
	return Deny(apperr.CodePermissionDenied, "Only students can apply for jobs")
}

// ApprovalRequirement says what kind of approval row a school admin needs
// before seeing a job's applications.
type ApprovalRequirement int

const (
	ApprovalNotRequired ApprovalRequirement = iota
	// ApprovalExists: any decision row from the school, regardless of status.
	ApprovalExists
	// ApprovalApproved: a decision row with status approved.
	ApprovalApproved
)

// ApplicationsRule is the data-access recipe for an application listing:
// the gate to evaluate and the row shaping to apply. The workflow service
// fetches the facts the rule names and enforces them in order.
type ApplicationsRule struct {
	Decision
	// NeedOwnership: deny with PERMISSION_DENIED unless the job belongs to
	// the principal's company.
	NeedOwnership bool
	// NeedSchoolApproval: deny with NOT_APPROVED unless the principal's
	// school has the required decision row for the job.
	NeedSchoolApproval ApprovalRequirement
	// NeedApplicant: deny with PERMISSION_DENIED unless the principal has
	// an application for the job themselves.
	NeedApplicant bool
	// SchoolFilter restricts the returned rows to applicants of this school.
	SchoolFilter string
	// Anonymize strips applicant identity from the returned rows.
	Anonymize bool
}

// JobApplicationsRule is the matrix row for the plain per-job application
// listing. requireApproved carries the configurable policy choice: whether
// a school admin's gate demands status=approved or mere existence of their
// decision row.
func JobApplicationsRule(p *Principal, requireApproved bool) ApplicationsRule {
	switch {
	case p.Is(RoleAdmin):
		return ApplicationsRule{Decision: Allow}
	case p.Is(RoleCompanyAdmin):
		return ApplicationsRule{Decision: Allow, NeedOwnership: true}
	case p.Is(RoleSchoolAdmin):
		need := ApprovalExists
		if requireApproved {
			need = ApprovalApproved
		}
		return ApplicationsRule{
			Decision:           Allow,
			NeedSchoolApproval: need,
			SchoolFilter:       p.SchoolID,
		}
	default:
		return ApplicationsRule{
			Decision: Deny(apperr.CodePermissionDenied, "You do not have permission to view these applications"),
		}
	}
}

// AccessibleApplicationsRule is the matrix row for the broader applicant
// view: students see an anonymized list of a job they applied to, school
// admins see their own school's applicants behind an approved decision,
// company admins see everything for their own jobs.
func AccessibleApplicationsRule(p *Principal) ApplicationsRule {
	switch {
	case p.Is(RoleStudent):
		return ApplicationsRule{Decision: Allow, NeedApplicant: true, Anonymize: true}
	case p.Is(RoleSchoolAdmin):
		return ApplicationsRule{
			Decision:           Allow,
			NeedSchoolApproval: ApprovalApproved,
			SchoolFilter:       p.SchoolID,
		}
	case p.Is(RoleCompanyAdmin):
		return ApplicationsRule{Decision: Allow, NeedOwnership: true}
	case p.Is(RoleAdmin):
		return ApplicationsRule{Decision: Allow}
	default:
		return ApplicationsRule{Decision: Deny(apperr.CodePermissionDenied, "Unauthorized access")}
	}
}

// CanCreateRole is the admin user-creation matrix: admins may create any
// role, organization admins may only create students.
func CanCreateRole(adminRole, newRole Role) bool {
	switch adminRole {
	case RoleAdmin:
		return ValidRole(newRole)
	case RoleSchoolAdmin, RoleCompanyAdmin:
		return newRole == RoleStudent
	default:
		return false
	}
}

// CanListUsers scopes the user directory: organization admins see their own
// organization, admins see everyone.
func CanListUsers(p *Principal) Decision {
	if p.Is(RoleAdmin) || p.Is(RoleSchoolAdmin) || p.Is(RoleCompanyAdmin) {
		return Allow
	}
	return Deny(apperr.CodePermissionDenied, "You don't have permission to view users")
}
