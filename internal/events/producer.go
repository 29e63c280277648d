// Package events publishes domain events to NATS after successful commits.
// The producer is optional: a nil *Producer silently drops events, so the
// service runs fine without a broker.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	EventJobCreated           = "job.created"
	EventApprovalRecorded     = "job.approval_recorded"
	EventApplicationSubmitted = "application.submitted"
)

type Event struct {
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurredAt"`
	Payload    map[string]string `json:"payload,omitempty"`
}

type Producer struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

func NewProducer(url string, subject string, logger *slog.Logger) (*Producer, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return &Producer{
		conn:    nc,
		subject: subject,
		logger:  logger,
	}, nil
}

// Publish sends one event. Failures are logged, not propagated: event
// delivery never fails a committed workflow operation.
func (p *Producer) Publish(name string, payload map[string]string) {
	if p == nil {
		return
	}

	event := Event{
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	valueBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "event", name, "error", err)
		return
	}

	if err := p.conn.Publish(p.subject, valueBytes); err != nil {
		p.logger.Error("failed to publish event to NATS", "event", name, "error", err)
		return
	}

	p.logger.Info("event published", "event", name, "subject", p.subject)
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	p.conn.Close()
	return nil
}
