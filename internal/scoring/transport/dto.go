// Package transport defines the request and response shapes of the
// scoring HTTP API.
package transport

import (
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/engine"

	"github.com/google/uuid"
)

// MessageDTO mirrors domain.Message on the wire.
type MessageDTO struct {
	Sender    string    `json:"sender" validate:"required,oneof=user owner"`
	Message   string    `json:"message" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// GraphCaptureDTO mirrors domain.GraphCapture on the wire.
type GraphCaptureDTO struct {
	PersonName        string    `json:"personName" validate:"required"`
	ConnectionName    string    `json:"connectionName" validate:"required"`
	ConnectionID      string    `json:"connectionId" validate:"required"`
	InteractionType   string    `json:"interactionType"`
	InteractionCount  int       `json:"interactionCount" validate:"min=0"`
	OpportunitySignal bool      `json:"opportunitySignal"`
	CapturedAt        time.Time `json:"capturedAt"`
}

// ScoreProspectRequest is the body of POST /prospects/:id/score.
type ScoreProspectRequest struct {
	Version           int               `json:"version" validate:"required,min=1,max=5"`
	ActiveIndustry    string            `json:"activeIndustry,omitempty" validate:"omitempty,industry"`
	TextContent       string            `json:"textContent,omitempty"`
	LastMessages      []MessageDTO      `json:"lastMessages,omitempty" validate:"dive"`
	LastCTAType       string            `json:"lastCTAType,omitempty"`
	CaptureData       []GraphCaptureDTO `json:"captureData,omitempty" validate:"dive"`
	IncludePersonaFit bool              `json:"includePersonaFit,omitempty"`
	IncludeCTAFit     bool              `json:"includeCTAFit,omitempty"`
	IncludeEmotional  bool              `json:"includeEmotional,omitempty"`
	HorizonDays       int               `json:"horizonDays,omitempty" validate:"omitempty,min=1,max=90"`
	Debug             bool              `json:"debug,omitempty"`
	DryRun            bool              `json:"dryRun,omitempty"`
}

// ToScoreInput maps the request onto the immutable scorer input.
func (r ScoreProspectRequest) ToScoreInput(prospectID, userID uuid.UUID) domain.ScoreInput {
	active, _ := domain.ParseIndustry(r.ActiveIndustry)
	if r.ActiveIndustry == "" {
		active = ""
	}

	messages := make([]domain.Message, len(r.LastMessages))
	for i, m := range r.LastMessages {
		messages[i] = domain.Message{Sender: m.Sender, Text: m.Message, Timestamp: m.Timestamp}
	}
	captures := make([]domain.GraphCapture, len(r.CaptureData))
	for i, gc := range r.CaptureData {
		captures[i] = domain.GraphCapture{
			PersonName:        gc.PersonName,
			ConnectionName:    gc.ConnectionName,
			ConnectionID:      gc.ConnectionID,
			InteractionType:   gc.InteractionType,
			InteractionCount:  gc.InteractionCount,
			OpportunitySignal: gc.OpportunitySignal,
			CapturedAt:        gc.CapturedAt,
		}
	}

	return domain.ScoreInput{
		ProspectID:     prospectID,
		UserID:         userID,
		ActiveIndustry: active,
		TextContent:    r.TextContent,
		LastMessages:   messages,
		LastCTAType:    r.LastCTAType,
		CaptureData:    captures,
	}
}

// Version returns the typed engine version.
func (r ScoreProspectRequest) EngineVersion() engine.Version {
	return engine.Version(r.Version)
}

// ScoreHistoryEntry is one row of GET /prospects/:id/score/history.
type ScoreHistoryEntry struct {
	Version         int       `json:"version"`
	Score           int       `json:"score"`
	LeadTemperature string    `json:"leadTemperature"`
	ComputedAt      time.Time `json:"computedAt"`
}
