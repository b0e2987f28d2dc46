package engine

import (
	"strings"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

// FeatureValues are the seven 0-100 sub-scores of the v2 model.
type FeatureValues struct {
	Engagement       float64
	BusinessInterest float64
	PainPoint        float64
	LifeEvent        float64
	Responsiveness   float64
	Leadership       float64
	Relationship     float64
}

// ScoreV2 is the weighted feature vector strategy: seven sub-scores
// built from stored profile aggregates, blended with the user's
// persisted weight vector, penalized for staleness, and overridden by
// explicit objections when present.
func (e *Engine) ScoreV2(snap Snapshot) domain.BaseScore {
	weights := snap.Weights
	if weights.Sum() <= 0 {
		weights = e.tables.DefaultFeatures
	}
	weights = weights.Normalize()

	values := ExtractFeatures(snap.Stats)
	raw := values.Engagement*weights.Engagement +
		values.BusinessInterest*weights.BusinessInterest +
		values.PainPoint*weights.PainPoint +
		values.LifeEvent*weights.LifeEvent +
		values.Responsiveness*weights.Responsiveness +
		values.Leadership*weights.Leadership +
		values.Relationship*weights.Relationship

	decay := decayPenalty(snap.Stats.LastInteractionDaysAgo)
	score := domain.Clamp100(raw * (1 - decay))

	objections := e.DetectObjections(snap.Input)
	cta := ctaForScore(score)
	insights := []string{}
	switch {
	case objections.HasBudgetObjection:
		cta = "address_price_concerns"
		insights = append(insights, "budget objection raised, lead with affordability")
	case objections.HasTimingObjection:
		cta = "schedule_future_followup"
		insights = append(insights, "timing objection raised, book a future touchpoint")
	case objections.HasApprovalBlocker:
		cta = "equip_decision_conversation"
		insights = append(insights, "decision involves another person, arm them for that conversation")
	}
	if decay > 0 {
		insights = append(insights, "score reduced for inactivity")
	}

	return domain.BaseScore{
		Version:              int(V2),
		Industry:             snap.Input.Industry,
		Score:                score,
		LeadTemperature:      bucket(score),
		ConversionLikelihood: score,
		RecommendedCTA:       cta,
		ObjectionSignals:     objections,
		Breakdown: map[string]float64{
			"engagement":       values.Engagement,
			"businessInterest": values.BusinessInterest,
			"painPoint":        values.PainPoint,
			"lifeEvent":        values.LifeEvent,
			"responsiveness":   values.Responsiveness,
			"leadership":       values.Leadership,
			"relationship":     values.Relationship,
			"decayPenalty":     decay * 100,
		},
		Insights: insights,
	}
}

// ExtractFeatures turns stored aggregates into the seven 0-100
// sub-scores.
func ExtractFeatures(s Stats) FeatureValues {
	return FeatureValues{
		Engagement:       cap100(float64(s.EngagementEvents) * 10),
		BusinessInterest: cap100(float64(s.BusinessInterestHits) * 20),
		PainPoint:        cap100(float64(s.PainPointHits) * 20),
		LifeEvent:        cap100(float64(s.LifeEventHits) * 25),
		Responsiveness:   responsiveness(s),
		Leadership:       cap100(float64(s.LeadershipSignals) * 25),
		Relationship:     cap100(float64(s.RelationshipDepth)),
	}
}

// responsiveness blends reply rate with reply latency: a prospect who
// always answers within the hour reads near 100.
func responsiveness(s Stats) float64 {
	score := s.ReplyRate * 70
	switch {
	case s.MedianReplyMinutes == 0:
		// latency unknown, rate carries the full signal
		score = s.ReplyRate * 100
	case s.MedianReplyMinutes <= 30:
		score += 30
	case s.MedianReplyMinutes <= 120:
		score += 15
	case s.MedianReplyMinutes <= 24*60:
		score += 5
	}
	return cap100(score)
}

// decayPenalty is the staleness haircut applied to the raw weighted
// score before bucketing.
func decayPenalty(daysSinceLast int) float64 {
	switch {
	case daysSinceLast <= 30:
		return 0
	case daysSinceLast <= 60:
		return 0.05
	case daysSinceLast <= 90:
		return 0.10
	default:
		return 0.20
	}
}

// DetectObjections scans the prospect's language for explicit budget,
// timing, and approval blockers.
func (e *Engine) DetectObjections(input domain.ScoreInput) domain.ObjectionSignals {
	text := strings.ToLower(input.TextContent + " " + prospectText(input.LastMessages))
	kw := e.tables.Keywords
	return domain.ObjectionSignals{
		HasBudgetObjection: containsAny(text, kw.BudgetPhrases),
		HasTimingObjection: containsAny(text, kw.TimingPhrases),
		HasApprovalBlocker: containsAny(text, kw.ApprovalPhrases),
	}
}

func ctaForScore(score int) string {
	switch {
	case score >= 80:
		return "close_deal"
	case score >= 50:
		return "book_call"
	default:
		return "soft_intro"
	}
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func cap100(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

// weightNudges maps an outcome onto the percentage nudge applied to
// every feature whose value exceeded the evidence threshold when the
// outcome landed. Positive outcomes reinforce, negative ones dampen.
var weightNudges = map[domain.Outcome]float64{
	domain.OutcomeWon:           +0.05,
	domain.OutcomeLost:          -0.03,
	domain.OutcomePositiveReply: +0.02,
	domain.OutcomeNoResponse:    -0.01,
}

// nudgeThreshold is the feature value above which a feature is
// considered to have contributed to the outcome.
const nudgeThreshold = 70.0

// AdjustWeightsFromOutcome returns a new weight vector nudged toward
// (or away from) the features that were strong when the outcome was
// recorded, renormalized to sum 1.0. Unknown outcomes return the
// input unchanged.
func AdjustWeightsFromOutcome(current tables.FeatureWeights, values FeatureValues, outcome domain.Outcome) tables.FeatureWeights {
	nudge, ok := weightNudges[outcome]
	if !ok {
		return current
	}

	adjust := func(weight, value float64) float64 {
		if value <= nudgeThreshold {
			return weight
		}
		adjusted := weight * (1 + nudge)
		if adjusted < 0 {
			return 0
		}
		return adjusted
	}

	next := tables.FeatureWeights{
		Engagement:       adjust(current.Engagement, values.Engagement),
		BusinessInterest: adjust(current.BusinessInterest, values.BusinessInterest),
		PainPoint:        adjust(current.PainPoint, values.PainPoint),
		LifeEvent:        adjust(current.LifeEvent, values.LifeEvent),
		Responsiveness:   adjust(current.Responsiveness, values.Responsiveness),
		Leadership:       adjust(current.Leadership, values.Leadership),
		Relationship:     adjust(current.Relationship, values.Relationship),
	}
	return next.Normalize()
}
