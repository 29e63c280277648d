package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	signups               metric.Int64Counter
	jobsCreated           metric.Int64Counter
	jobsListViewed        metric.Int64Counter
	applicationsSubmitted metric.Int64Counter
	approvalsRecorded     metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.signups, err = meter.Int64Counter(
		"jobboard.signups",
		metric.WithDescription("Total number of signups (school, company or student)"),
		metric.WithUnit("{signup}"),
	)
	if err != nil {
		return nil, err
	}

	m.jobsCreated, err = meter.Int64Counter(
		"jobboard.jobs.created",
		metric.WithDescription("Total number of jobs created"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, err
	}

	m.jobsListViewed, err = meter.Int64Counter(
		"jobboard.jobs.list_viewed",
		metric.WithDescription("Total number of times the job directory was listed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.applicationsSubmitted, err = meter.Int64Counter(
		"jobboard.applications.submitted",
		metric.WithDescription("Total number of job applications submitted"),
		metric.WithUnit("{application}"),
	)
	if err != nil {
		return nil, err
	}

	m.approvalsRecorded, err = meter.Int64Counter(
		"jobboard.approvals.recorded",
		metric.WithDescription("Total number of school approval decisions recorded"),
		metric.WithUnit("{approval}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordSignup(ctx context.Context) {
	if m != nil && m.signups != nil {
		m.signups.Add(ctx, 1)
	}
}

func (m *Metrics) RecordJobCreated(ctx context.Context) {
	if m != nil && m.jobsCreated != nil {
		m.jobsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordJobsListViewed(ctx context.Context) {
	if m != nil && m.jobsListViewed != nil {
		m.jobsListViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordApplicationSubmitted(ctx context.Context) {
	if m != nil && m.applicationsSubmitted != nil {
		m.applicationsSubmitted.Add(ctx, 1)
	}
}

func (m *Metrics) RecordApprovalRecorded(ctx context.Context) {
	if m != nil && m.approvalsRecorded != nil {
		m.approvalsRecorded.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
