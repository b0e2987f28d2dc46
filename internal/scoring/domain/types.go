package domain

import (
	"time"

	"github.com/google/uuid"
)

// Temperature buckets a score into outreach urgency classes.
// WarmingUp only appears in the v4 momentum model's 4-state read;
// orchestrated final temperatures are cold/warm/hot.
type Temperature string

const (
	TemperatureCold      Temperature = "cold"
	TemperatureWarmingUp Temperature = "warming_up"
	TemperatureWarm      Temperature = "warm"
	TemperatureHot       Temperature = "hot"
)

// IntentSignal classifies what the prospect's language is asking for.
type IntentSignal string

const (
	IntentPriceCheck IntentSignal = "price_check"
	IntentInterest   IntentSignal = "interest"
	IntentInfoOnly   IntentSignal = "info_only"
)

// TrendDirection describes behavioral momentum over the last two
// 30-day windows.
type TrendDirection string

const (
	TrendWarmingUp   TrendDirection = "warming_up"
	TrendCoolingDown TrendDirection = "cooling_down"
	TrendVolatile    TrendDirection = "volatile"
	TrendStable      TrendDirection = "stable"
)

// Outcome is a recorded result for a prospect, used to nudge the
// per-user v2 feature weights.
type Outcome string

const (
	OutcomeWon           Outcome = "won"
	OutcomeLost          Outcome = "lost"
	OutcomePositiveReply Outcome = "positive_reply"
	OutcomeNoResponse    Outcome = "no_response"
)

// Message is one entry of the prospect's message history.
type Message struct {
	Sender    string    `json:"sender"` // "user" (the prospect) or "owner"
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// TimelineEvent is a single observed behavioral event, ordered by time
// within an analysis window.
type TimelineEvent struct {
	Timestamp         time.Time `json:"timestamp"`
	Source            string    `json:"source"`
	Type              string    `json:"type"`
	Sentiment         float64   `json:"sentiment,omitempty"` // -1..1
	OpportunitySignal bool      `json:"opportunitySignal,omitempty"`
	PainPointSignal   bool      `json:"painPointSignal,omitempty"`
	Keywords          []string  `json:"keywords,omitempty"`
}

// GraphCapture is one captured interaction between two named people,
// supplied by the ingestion layer. ConnectionID must identify a real
// person; the engine never fabricates connections.
type GraphCapture struct {
	PersonName        string    `json:"personName"`
	ConnectionName    string    `json:"connectionName"`
	ConnectionID      string    `json:"connectionId"`
	InteractionType   string    `json:"interactionType"`
	InteractionCount  int       `json:"interactionCount"`
	OpportunitySignal bool      `json:"opportunitySignal"`
	CapturedAt        time.Time `json:"capturedAt"`
}

// ScoreInput is the immutable per-invocation input to every scorer.
type ScoreInput struct {
	ProspectID     uuid.UUID      `json:"prospectId"`
	UserID         uuid.UUID      `json:"userId"`
	Industry       Industry       `json:"industry,omitempty"`
	ActiveIndustry Industry       `json:"activeIndustry,omitempty"`
	TextContent    string         `json:"textContent,omitempty"`
	LastMessages   []Message      `json:"lastMessages,omitempty"`
	LastCTAType    string         `json:"lastCTAType,omitempty"`
	CaptureData    []GraphCapture `json:"captureData,omitempty"`
	Now            time.Time      `json:"-"` // clock injection for tests; zero means time.Now
}

// At returns the reference time for recency calculations.
func (in ScoreInput) At() time.Time {
	if in.Now.IsZero() {
		return time.Now().UTC()
	}
	return in.Now
}

// ObjectionSignals flags explicit objections detected in text.
type ObjectionSignals struct {
	HasBudgetObjection bool `json:"hasBudgetObjection"`
	HasTimingObjection bool `json:"hasTimingObjection"`
	HasApprovalBlocker bool `json:"hasApprovalBlocker"`
}

// Any reports whether at least one objection was detected.
func (o ObjectionSignals) Any() bool {
	return o.HasBudgetObjection || o.HasTimingObjection || o.HasApprovalBlocker
}

// BaseScore is the output of any v1-v5 base scorer.
type BaseScore struct {
	Version                  int               `json:"version"`
	Industry                 Industry          `json:"industry,omitempty"`
	Score                    int               `json:"score"`
	LeadTemperature          Temperature       `json:"leadTemperature"`
	IntentSignal             IntentSignal      `json:"intentSignal,omitempty"`
	ConversionLikelihood     int               `json:"conversionLikelihood"`
	RecommendedCTA           string            `json:"recommendedCTA,omitempty"`
	Breakdown                map[string]float64 `json:"breakdown,omitempty"`
	Insights                 []string          `json:"insights,omitempty"`
	ObjectionSignals         ObjectionSignals  `json:"objectionSignals"`
	IndustryIsolationApplied bool              `json:"industryIsolationApplied"`
}

// PersonaFit is the v6 overlay result.
type PersonaFit struct {
	PersonaProfile  string   `json:"personaProfile"`
	PersonaFitScore int      `json:"personaFitScore"`
	Notes           []string `json:"notes,omitempty"`
}

// CTAFit is the v7 overlay result.
type CTAFit struct {
	CTAFitScore      int      `json:"ctaFitScore"`
	LastCTAType      string   `json:"lastCTAType,omitempty"`
	SuggestedCTAType string   `json:"suggestedCTAType,omitempty"`
	Notes            []string `json:"notes,omitempty"`
}

// EmotionalState labels the dominant emotion read from recent messages.
type EmotionalState string

const (
	EmotionAnxious   EmotionalState = "anxious"
	EmotionSkeptical EmotionalState = "skeptical"
	EmotionConfused  EmotionalState = "confused"
	EmotionExcited   EmotionalState = "excited"
	EmotionHopeful   EmotionalState = "hopeful"
	EmotionNeutral   EmotionalState = "neutral"
)

// ToneAdjustment tells the message layer how to shift outreach tone.
type ToneAdjustment string

const (
	ToneMoreReassuring ToneAdjustment = "more_reassuring"
	ToneMoreClarifying ToneAdjustment = "more_clarifying"
	ToneMoreConfident  ToneAdjustment = "more_confident"
	ToneSofter         ToneAdjustment = "softer"
	ToneNone           ToneAdjustment = "none"
)

// EmotionalRead is the v8 overlay result.
type EmotionalRead struct {
	EmotionalState EmotionalState `json:"emotionalState"`
	TrustScore     int            `json:"trustScore"`
	RiskFlags      []string       `json:"riskFlags,omitempty"`
	ToneAdjustment ToneAdjustment `json:"toneAdjustment"`
}

// OverlaySkip records why an enabled overlay was not computed.
type OverlaySkip struct {
	Overlay string `json:"overlay"`
	Reason  string `json:"reason"`
}

// DebugBreakdown carries machine-readable fusion internals when the
// caller asks for them.
type DebugBreakdown struct {
	BaseWeight         float64            `json:"baseWeight"`
	OverlayWeight      float64            `json:"overlayWeight"`
	OverlayAdjustments map[string]float64 `json:"overlayAdjustments"`
	RiskPenalty        float64            `json:"riskPenalty"`
	WeightsUsed        map[string]float64 `json:"weightsUsed,omitempty"`
	Skips              []OverlaySkip      `json:"skips,omitempty"`
}

// FinalScore is the orchestrated fusion of a base score and whatever
// overlays were computed.
type FinalScore struct {
	Success                  bool            `json:"success"`
	Base                     BaseScore       `json:"base"`
	PersonaFit               *PersonaFit     `json:"v6,omitempty"`
	CTAFit                   *CTAFit         `json:"v7,omitempty"`
	Emotional                *EmotionalRead  `json:"v8,omitempty"`
	FinalScore               int             `json:"finalScore"`
	FinalLeadTemperature     Temperature     `json:"finalLeadTemperature"`
	FinalIntentSignal        IntentSignal    `json:"finalIntentSignal,omitempty"`
	FinalRecommendedCTA      string          `json:"finalRecommendedCTA,omitempty"`
	FinalInsights            []string        `json:"finalInsights,omitempty"`
	IndustryIsolationApplied bool            `json:"industryIsolationApplied"`
	Debug                    *DebugBreakdown `json:"debugBreakdown,omitempty"`
}

// TemperatureFor buckets an orchestrated 0-100 score.
func TemperatureFor(score int) Temperature {
	switch {
	case score >= 75:
		return TemperatureHot
	case score >= 50:
		return TemperatureWarm
	default:
		return TemperatureCold
	}
}

// Clamp100 restricts v to the 0-100 integer range.
func Clamp100(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v + 0.5)
	}
}

// Clamp01 restricts v to the 0-1 probability range.
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
