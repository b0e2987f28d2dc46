package engine

import (
	"time"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

// ClickEvent is one recorded click/engagement action used by the v3
// heat scorer.
type ClickEvent struct {
	Type      string    `json:"type"` // cta_click, link_click, profile_view, reaction
	Timestamp time.Time `json:"timestamp"`
}

// Stats are the persisted per-prospect aggregates the feature
// extractors read. The repository assembles them; engines never touch
// storage directly.
type Stats struct {
	EngagementEvents       int     // total captured interactions
	BusinessInterestHits   int     // opportunity-keyword matches on record
	PainPointHits          int     // pain-keyword matches on record
	LifeEventHits          int     // job change, new baby, move, etc.
	LeadershipSignals      int     // group admin, organizer, team lead markers
	RelationshipDepth      int     // 0-100, how far the relationship has progressed
	ReplyRate              float64 // 0-1, share of outreach that got a reply
	MedianReplyMinutes     float64 // typical reply latency, 0 = unknown
	LastInteractionDaysAgo int

	// Behavioral inputs derived by the timeline analyzer.
	EngagementMomentum  float64 // 0-100
	OpportunityMomentum float64 // 0-100
	PainIntensity       float64 // 0-100
	EmotionalTrendSlope float64 // -1..1 over the last 30 days
	TrendDirection      domain.TrendDirection

	// Social graph inputs derived by the graph analyzer.
	GraphCentrality float64 // 0-1
	SocialInfluence float64 // 0-1

	Clicks []ClickEvent
}

// V5Signals are the upstream sub-engine outputs the composite scorer
// fuses. The orchestrator fills them from the timeline, graph,
// predictor, and pattern engines; any missing signal arrives as its
// neutral default.
type V5Signals struct {
	BehavioralMomentum   float64 // 0-100
	SocialInfluence      float64 // 0-100
	OpportunityReadiness float64 // 0-1
	PatternMatch         int     // 0-100
}

// Snapshot is the full input to a base scorer: the immutable request
// plus whatever stored aggregates and upstream signals are available.
// ProspectName is the stored display name; the graph analyzers key
// nodes by normalized name, not by prospect UUID.
type Snapshot struct {
	Input        domain.ScoreInput
	ProspectName string
	Stats        Stats
	Weights      tables.FeatureWeights // per-user v2 weights; zero value = use defaults
	V5           V5Signals
}
