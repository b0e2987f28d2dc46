package engine

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
)

// v3 rolling window and per-action heat points. CTA clicks are the
// strongest buying signal we capture without a conversation.
const v3WindowDays = 14

var clickPoints = map[string]float64{
	"cta_click":    20,
	"link_click":   15,
	"reply":        15,
	"profile_view": 5,
	"reaction":     5,
}

const defaultClickPoints = 8.0

// ScoreV3 is the CTA/click heat strategy: recent click and engagement
// events inside a rolling 14-day window, each weighted by action type
// and linear recency.
func (e *Engine) ScoreV3(snap Snapshot) domain.BaseScore {
	now := snap.Input.At()

	total := 0.0
	counted := 0
	for _, click := range snap.Stats.Clicks {
		ageDays := now.Sub(click.Timestamp).Hours() / 24
		if ageDays < 0 || ageDays > v3WindowDays {
			continue
		}
		points, ok := clickPoints[click.Type]
		if !ok {
			points = defaultClickPoints
		}
		total += points * (1 - ageDays/v3WindowDays)
		counted++
	}

	score := domain.Clamp100(total)

	// v3 runs hotter thresholds than the other strategies: click heat
	// is bursty, so 70 already means sustained recent activity.
	temp := domain.TemperatureCold
	switch {
	case score >= 70:
		temp = domain.TemperatureHot
	case score >= 40:
		temp = domain.TemperatureWarm
	}

	insights := []string{}
	if counted == 0 {
		insights = append(insights, "no click activity in the last 14 days")
	} else {
		insights = append(insights, fmt.Sprintf("%d engagement action(s) in the last 14 days", counted))
	}

	return domain.BaseScore{
		Version:              int(V3),
		Industry:             snap.Input.Industry,
		Score:                score,
		LeadTemperature:      temp,
		ConversionLikelihood: score,
		RecommendedCTA:       ctaForScore(score),
		Breakdown: map[string]float64{
			"clickHeat":    total,
			"recentClicks": float64(counted),
		},
		Insights: insights,
	}
}
