// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"scoutscore_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Prospect Domain Events
// =============================================================================

// ProspectCreated is published when a new prospect is captured.
type ProspectCreated struct {
	BaseEvent
	ProspectID uuid.UUID `json:"prospectId"`
	UserID     uuid.UUID `json:"userId"`
	Industry   string    `json:"industry,omitempty"`
	Source     string    `json:"source,omitempty"`
}

func (e ProspectCreated) EventName() string { return "prospects.prospect.created" }

// SignalCaptured is published when new behavioral data lands on a
// prospect: a message, a click, a timeline event, or a graph capture.
// Handlers use it to schedule a rescore.
type SignalCaptured struct {
	BaseEvent
	ProspectID uuid.UUID `json:"prospectId"`
	UserID     uuid.UUID `json:"userId"`
	SignalType string    `json:"signalType"` // "message", "click", "timeline_event", "graph_capture"
}

func (e SignalCaptured) EventName() string { return "prospects.signal.captured" }

// OutcomeRecorded is published when the user records a won/lost/reply
// outcome. The scoring side listens to nudge the user's feature
// weights.
type OutcomeRecorded struct {
	BaseEvent
	ProspectID uuid.UUID `json:"prospectId"`
	UserID     uuid.UUID `json:"userId"`
	Outcome    string    `json:"outcome"`
}

func (e OutcomeRecorded) EventName() string { return "prospects.outcome.recorded" }

// =============================================================================
// Scoring Domain Events
// =============================================================================

// ProspectScored is published after a recompute persists a new fused
// score.
type ProspectScored struct {
	BaseEvent
	ProspectID      uuid.UUID `json:"prospectId"`
	UserID          uuid.UUID `json:"userId"`
	Version         int       `json:"version"`
	Score           int       `json:"score"`
	LeadTemperature string    `json:"leadTemperature"`
}

func (e ProspectScored) EventName() string { return "scoring.prospect.scored" }
