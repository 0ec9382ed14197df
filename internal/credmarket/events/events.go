// Package events publishes domain events after state changes commit.
// Publishing is best effort; callers log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/aussiebroadwan/credmarket/pkg/idx"
)

type Type string

const (
	CompanyCreated    Type = "company.created"
	CompanyApproved   Type = "company.approved"
	CompanyRejected   Type = "company.rejected"
	CompanyWaitlisted Type = "company.waitlisted"

	UserRegistered    Type = "user.registered"
	UserVerified      Type = "user.verified"
	UserApproved      Type = "user.approved"
	UserStatusChanged Type = "user.status_changed"
)

// Event is the envelope written to the bus. AggregateID is the company or
// user id and doubles as the partition key.
type Event struct {
	ID          string         `json:"id"`
	Type        Type           `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Data        map[string]any `json:"data,omitempty"`
}

// New stamps an event with a fresh id.
func New(t Type, aggregateID string, at time.Time, data map[string]any) Event {
	return Event{
		ID:          idx.NewAt(at).String(),
		Type:        t,
		AggregateID: aggregateID,
		OccurredAt:  at.UTC(),
		Data:        data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}
