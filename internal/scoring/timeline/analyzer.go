// Package timeline turns a time-ordered behavioral event stream into
// trend and momentum metrics over the most recent 30 days versus the
// prior 30 days.
package timeline

import (
	"sort"
	"time"

	"scoutscore_backend/internal/scoring/domain"
)

const (
	windowDays = 30
	// pointsPerEvent scales a fully fresh matching event; the linear
	// recency decay reduces it toward zero at the window edge.
	pointsPerEvent = 10.0
	// noInteractionDays is reported when the stream is empty.
	noInteractionDays = 999
)

// Analysis is the analyzer's output. All momentum values are 0-100.
type Analysis struct {
	OpportunityMomentum    float64               `json:"opportunityMomentum"`
	PainPointIntensity     float64               `json:"painPointIntensity"`
	EngagementMomentum     float64               `json:"engagementMomentum"`
	TrendDirection         domain.TrendDirection `json:"trendDirection"`
	LastInteractionDaysAgo int                   `json:"lastInteractionDaysAgo"`
	RecentEventCount       int                   `json:"recentEventCount"`
}

// Analyze computes momentum metrics from events relative to now.
// The function is pure: it never mutates the input slice.
func Analyze(events []domain.TimelineEvent, now time.Time) Analysis {
	sorted := make([]domain.TimelineEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var recent, prior []domain.TimelineEvent
	windowStart := now.AddDate(0, 0, -windowDays)
	priorStart := now.AddDate(0, 0, -2*windowDays)
	for _, ev := range sorted {
		switch {
		case !ev.Timestamp.Before(windowStart) && !ev.Timestamp.After(now):
			recent = append(recent, ev)
		case !ev.Timestamp.Before(priorStart) && ev.Timestamp.Before(windowStart):
			prior = append(prior, ev)
		}
	}

	a := Analysis{
		OpportunityMomentum:    momentum(recent, now, opportunityMatch),
		PainPointIntensity:     momentum(recent, now, painMatch),
		EngagementMomentum:     momentum(recent, now, anyMatch),
		LastInteractionDaysAgo: lastInteractionDays(sorted, now),
		RecentEventCount:       len(recent),
	}

	a.TrendDirection = trend(a, prior, windowStart)
	return a
}

func opportunityMatch(ev domain.TimelineEvent) bool { return ev.OpportunitySignal }
func painMatch(ev domain.TimelineEvent) bool        { return ev.PainPointSignal }
func anyMatch(domain.TimelineEvent) bool            { return true }

// momentum is the recency-weighted sum of matching events: each event
// contributes pointsPerEvent scaled by a linear decay that reaches zero
// at the 30-day window edge. Capped at 100.
func momentum(events []domain.TimelineEvent, ref time.Time, match func(domain.TimelineEvent) bool) float64 {
	total := 0.0
	for _, ev := range events {
		if !match(ev) {
			continue
		}
		ageDays := ref.Sub(ev.Timestamp).Hours() / 24
		weight := 1 - ageDays/windowDays
		if weight <= 0 {
			continue
		}
		total += pointsPerEvent * weight
	}
	if total > 100 {
		return 100
	}
	return total
}

// trend compares combined opportunity+engagement momentum between the
// two windows. Fewer than 3 recent events always reads stable.
func trend(recent Analysis, prior []domain.TimelineEvent, windowStart time.Time) domain.TrendDirection {
	if recent.RecentEventCount < 3 {
		return domain.TrendStable
	}

	priorCombined := momentum(prior, windowStart, opportunityMatch) + momentum(prior, windowStart, anyMatch)
	recentCombined := recent.OpportunityMomentum + recent.EngagementMomentum
	delta := recentCombined - priorCombined

	switch {
	case (delta > 40 || delta < -40) && recent.RecentEventCount > 10:
		return domain.TrendVolatile
	case delta > 20:
		return domain.TrendWarmingUp
	case delta < -20:
		return domain.TrendCoolingDown
	default:
		return domain.TrendStable
	}
}

func lastInteractionDays(sorted []domain.TimelineEvent, now time.Time) int {
	if len(sorted) == 0 {
		return noInteractionDays
	}
	last := sorted[len(sorted)-1].Timestamp
	days := int(now.Sub(last).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
