// Package transport defines request and response DTOs for the
// prospects HTTP API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateProspectRequest captures a new prospect.
type CreateProspectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	Industry    string `json:"industry" validate:"omitempty,industry"`
	Persona     string `json:"persona" validate:"omitempty,max=100"`
	Source      string `json:"source" validate:"omitempty,max=100"`
	TextContent string `json:"textContent" validate:"omitempty,max=20000"`
	LastCTAType string `json:"lastCtaType" validate:"omitempty,max=100"`
}

// UpdateProspectRequest patches a prospect. Nil fields are untouched.
type UpdateProspectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	Email       *string `json:"email" validate:"omitempty,email,max=254"`
	Industry    *string `json:"industry" validate:"omitempty,industry"`
	Persona     *string `json:"persona" validate:"omitempty,max=100"`
	TextContent *string `json:"textContent" validate:"omitempty,max=20000"`
	LastCTAType *string `json:"lastCtaType" validate:"omitempty,max=100"`
}

// UpdateStatsRequest overwrites the prospect's behavioral aggregates.
// The ingestion layer computes these; the API stores them verbatim.
type UpdateStatsRequest struct {
	EngagementEvents     *int     `json:"engagementEvents" validate:"omitempty,min=0"`
	BusinessInterestHits *int     `json:"businessInterestHits" validate:"omitempty,min=0"`
	PainPointHits        *int     `json:"painPointHits" validate:"omitempty,min=0"`
	LifeEventHits        *int     `json:"lifeEventHits" validate:"omitempty,min=0"`
	LeadershipSignals    *int     `json:"leadershipSignals" validate:"omitempty,min=0"`
	RelationshipDepth    *int     `json:"relationshipDepth" validate:"omitempty,min=0,max=10"`
	ReplyRate            *float64 `json:"replyRate" validate:"omitempty,min=0,max=1"`
	MedianReplyMinutes   *float64 `json:"medianReplyMinutes" validate:"omitempty,min=0"`
	EmotionalTrendSlope  *float64 `json:"emotionalTrendSlope" validate:"omitempty,min=-1,max=1"`
}

// ListProspectsRequest filters the prospect list.
type ListProspectsRequest struct {
	Industry    string `form:"industry" validate:"omitempty,industry"`
	Temperature string `form:"temperature" validate:"omitempty,oneof=cold warm hot"`
	Limit       int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset      int    `form:"offset" validate:"omitempty,min=0"`
}

// CaptureMessageRequest appends one message to the prospect's history.
type CaptureMessageRequest struct {
	Sender string    `json:"sender" validate:"required,oneof=user owner"`
	Text   string    `json:"message" validate:"required,max=10000"`
	SentAt time.Time `json:"sentAt" validate:"omitempty"`
}

// CaptureClickRequest records one link interaction.
type CaptureClickRequest struct {
	Type       string    `json:"type" validate:"required,max=100"`
	OccurredAt time.Time `json:"occurredAt" validate:"omitempty"`
}

// CaptureTimelineEventRequest records one behavioral event.
type CaptureTimelineEventRequest struct {
	OccurredAt        time.Time `json:"occurredAt" validate:"omitempty"`
	Source            string    `json:"source" validate:"required,max=100"`
	Type              string    `json:"type" validate:"required,max=100"`
	Sentiment         float64   `json:"sentiment" validate:"omitempty,min=-1,max=1"`
	OpportunitySignal bool      `json:"opportunitySignal"`
	PainPointSignal   bool      `json:"painPointSignal"`
	Keywords          []string  `json:"keywords" validate:"omitempty,max=20,dive,max=100"`
}

// CaptureGraphRequest records observed interactions between people in
// the user's network. ConnectionID must identify a real person; the
// graph never invents connections.
type CaptureGraphRequest struct {
	Captures []GraphCaptureDTO `json:"captures" validate:"required,min=1,max=100,dive"`
}

// GraphCaptureDTO is one captured interaction pair.
type GraphCaptureDTO struct {
	PersonName        string    `json:"personName" validate:"required,max=200"`
	ConnectionName    string    `json:"connectionName" validate:"required,max=200"`
	ConnectionID      string    `json:"connectionId" validate:"required,max=100"`
	InteractionType   string    `json:"interactionType" validate:"required,max=100"`
	InteractionCount  int       `json:"interactionCount" validate:"omitempty,min=1"`
	OpportunitySignal bool      `json:"opportunitySignal"`
	CapturedAt        time.Time `json:"capturedAt" validate:"omitempty"`
}

// RecordOutcomeRequest closes the loop on a prospect.
type RecordOutcomeRequest struct {
	Outcome    string   `json:"outcome" validate:"required,oneof=won lost positive_reply no_response"`
	StepsTaken []string `json:"stepsTaken" validate:"omitempty,max=50,dive,max=200"`
}

// ProspectResponse is the API view of a prospect.
type ProspectResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone,omitempty"`
	Email              string     `json:"email,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	Persona            string     `json:"persona,omitempty"`
	Source             string     `json:"source,omitempty"`
	LastCTAType        string     `json:"lastCtaType,omitempty"`
	CurrentScore       *int       `json:"currentScore,omitempty"`
	CurrentTemperature string     `json:"currentTemperature,omitempty"`
	ScoredAt           *time.Time `json:"scoredAt,omitempty"`
	Outcome            string     `json:"outcome,omitempty"`
	ClosedAt           *time.Time `json:"closedAt,omitempty"`
	LastInteractionAt  *time.Time `json:"lastInteractionAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ListProspectsResponse is a paginated prospect list.
type ListProspectsResponse struct {
	Prospects []ProspectResponse `json:"prospects"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
