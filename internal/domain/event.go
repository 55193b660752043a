// Package domain defines the events emitted after contract invocations and
// the dispatcher that routes them to in-process handlers.
//
// Events are published only once the invocation's transaction outcome is
// known. They are notifications, not a source of truth: campaign state lives
// in host storage.
//
// Import Path: ezcrow.dev/crowdfund/internal/domain
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ezcrow.dev/crowdfund/internal/pkg/amount"
)

// EventType defines the type of domain event.
type EventType string

const (
	// Campaign events
	EventCampaignInitialized EventType = "CAMPAIGN_INITIALIZED"
	EventDonationRecorded    EventType = "DONATION_RECORDED"
	EventUpdatePosted        EventType = "UPDATE_POSTED"
	EventCommentAdded        EventType = "COMMENT_ADDED"
	EventMilestoneAdded      EventType = "MILESTONE_ADDED"

	// Token events
	EventTokenMinted EventType = "TOKEN_MINTED"

	// Failure of any write invocation
	EventInvocationFailed EventType = "INVOCATION_FAILED"
)

// AllEventTypes lists every event type in declaration order.
func AllEventTypes() []EventType {
	return []EventType{
		EventCampaignInitialized,
		EventDonationRecorded,
		EventUpdatePosted,
		EventCommentAdded,
		EventMilestoneAdded,
		EventTokenMinted,
		EventInvocationFailed,
	}
}

// Aggregate types.
const (
	AggregateCampaign = "campaign"
	AggregateToken    = "token"
)

// DomainEvent represents an immutable domain event.
type DomainEvent struct {
	EventID       string    `json:"event_id"`
	EventType     EventType `json:"event_type"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   string    `json:"aggregate_id"`
	Payload       []byte    `json:"payload"`
	CreatedBy     string    `json:"created_by"`
	LedgerTime    uint64    `json:"ledger_time"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEvent builds an event with a fresh time-ordered ID.
func NewEvent(eventType EventType, aggregateType, aggregateID, createdBy string, ledgerTime uint64, payload []byte) *DomainEvent {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &DomainEvent{
		EventID:       id.String(),
		EventType:     eventType,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Payload:       payload,
		CreatedBy:     createdBy,
		LedgerTime:    ledgerTime,
		CreatedAt:     time.Now().UTC(),
	}
}

// CampaignInitializedPayload is the payload for EventCampaignInitialized.
type CampaignInitializedPayload struct {
	Owner    string     `json:"owner"`
	Goal     amount.Int `json:"goal"`
	Deadline uint64     `json:"deadline"`
	Token    string     `json:"token"`
	Category string     `json:"category"`
}

// ToJSON converts payload to JSON bytes.
func (p CampaignInitializedPayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// DonationPayload is the payload for EventDonationRecorded.
type DonationPayload struct {
	Donor       string     `json:"donor"`
	Amount      amount.Int `json:"amount"`
	TotalRaised amount.Int `json:"total_raised"`
}

// ToJSON converts payload to JSON bytes.
func (p DonationPayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// TextPayload is the payload for update, comment and milestone events.
type TextPayload struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	// Index is the position of the new entry in its list.
	Index int `json:"index"`
}

// ToJSON converts payload to JSON bytes.
func (p TextPayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// MintPayload is the payload for EventTokenMinted.
type MintPayload struct {
	To      string     `json:"to"`
	Amount  amount.Int `json:"amount"`
	Balance amount.Int `json:"balance"`
}

// ToJSON converts payload to JSON bytes.
func (p MintPayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// FailurePayload is the payload for EventInvocationFailed.
type FailurePayload struct {
	Operation string `json:"operation"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// ToJSON converts payload to JSON bytes.
func (p FailurePayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}
