// Package engine implements the five base scoring strategies (v1-v5)
// over a raw feature snapshot. Every strategy takes the same immutable
// input and returns a BaseScore; they differ in which signals they
// trust and how they blend them.
package engine

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

// Version selects a base scoring strategy.
type Version int

const (
	V1 Version = 1 // keyword heuristic
	V2 Version = 2 // weighted feature vector with learned weights
	V3 Version = 3 // CTA/click heat
	V4 Version = 4 // 7-dimension momentum model
	V5 Version = 5 // industry-aware composite
)

// Valid reports whether v names a known strategy.
func (v Version) Valid() bool { return v >= V1 && v <= V5 }

// Engine evaluates base scores against the loaded scoring tables.
type Engine struct {
	tables *tables.Tables
}

// New creates a scoring engine bound to a table set.
func New(t *tables.Tables) *Engine {
	return &Engine{tables: t}
}

// Tables exposes the table set for callers that need weight metadata
// in debug output.
func (e *Engine) Tables() *tables.Tables { return e.tables }

// Score dispatches to the selected strategy.
func (e *Engine) Score(version Version, snap Snapshot) (domain.BaseScore, error) {
	switch version {
	case V1:
		return e.ScoreV1(snap.Input), nil
	case V2:
		return e.ScoreV2(snap), nil
	case V3:
		return e.ScoreV3(snap), nil
	case V4:
		return e.ScoreV4(snap), nil
	case V5:
		return e.ScoreV5(snap), nil
	default:
		return domain.BaseScore{}, domain.NewScoringError(domain.FailureConfiguration, "engine",
			fmt.Errorf("unknown scorer version %d", version))
	}
}

// bucket applies the standard hot/warm/cold thresholds (80/50).
func bucket(score int) domain.Temperature {
	switch {
	case score >= 80:
		return domain.TemperatureHot
	case score >= 50:
		return domain.TemperatureWarm
	default:
		return domain.TemperatureCold
	}
}
