// Package tables holds the data side of the scoring engine: weight
// profiles, persona libraries, CTA definitions, emotional keyword sets,
// and the curated conversion pattern library. Everything here is data,
// not code: operators can override any table with YAML files without
// recompiling (see Load).
package tables

import (
	"fmt"

	"scoutscore_backend/internal/scoring/domain"
)

// V5Weights is the 5-dimension weight group used by the industry-aware
// composite scorer. Each industry's weights must sum to 1.0.
type V5Weights struct {
	BaseScore            float64 `yaml:"baseScore"`
	BehavioralMomentum   float64 `yaml:"behavioralMomentum"`
	SocialInfluence      float64 `yaml:"socialInfluence"`
	OpportunityReadiness float64 `yaml:"opportunityReadiness"`
	PatternMatch         float64 `yaml:"patternMatch"`
}

// Sum returns the total of the weight group.
func (w V5Weights) Sum() float64 {
	return w.BaseScore + w.BehavioralMomentum + w.SocialInfluence + w.OpportunityReadiness + w.PatternMatch
}

// V4Weights is the 7-dimension weight group of the momentum model.
// Must sum to 1.0.
type V4Weights struct {
	Engagement         float64 `yaml:"engagement"`
	Opportunity        float64 `yaml:"opportunity"`
	PainPoints         float64 `yaml:"painPoints"`
	SocialGraph        float64 `yaml:"socialGraph"`
	BehaviorMomentum   float64 `yaml:"behaviorMomentum"`
	RelationshipWarmth float64 `yaml:"relationshipWarmth"`
	Freshness          float64 `yaml:"freshness"`
}

// Sum returns the total of the weight group.
func (w V4Weights) Sum() float64 {
	return w.Engagement + w.Opportunity + w.PainPoints + w.SocialGraph +
		w.BehaviorMomentum + w.RelationshipWarmth + w.Freshness
}

// FeatureWeights is the 7-feature weight group used by the v2 weighted
// feature vector. The default is also the starting point of every
// user's persisted weight vector before outcome nudges.
type FeatureWeights struct {
	Engagement       float64 `yaml:"engagement"`
	BusinessInterest float64 `yaml:"businessInterest"`
	PainPoint        float64 `yaml:"painPoint"`
	LifeEvent        float64 `yaml:"lifeEvent"`
	Responsiveness   float64 `yaml:"responsiveness"`
	Leadership       float64 `yaml:"leadership"`
	Relationship     float64 `yaml:"relationship"`
}

// Sum returns the total of the weight group.
func (w FeatureWeights) Sum() float64 {
	return w.Engagement + w.BusinessInterest + w.PainPoint + w.LifeEvent +
		w.Responsiveness + w.Leadership + w.Relationship
}

// Normalize rescales the weights to sum 1.0. A zero vector is returned
// unchanged.
func (w FeatureWeights) Normalize() FeatureWeights {
	sum := w.Sum()
	if sum <= 0 {
		return w
	}
	return FeatureWeights{
		Engagement:       w.Engagement / sum,
		BusinessInterest: w.BusinessInterest / sum,
		PainPoint:        w.PainPoint / sum,
		LifeEvent:        w.LifeEvent / sum,
		Responsiveness:   w.Responsiveness / sum,
		Leadership:       w.Leadership / sum,
		Relationship:     w.Relationship / sum,
	}
}

// Persona describes one buyer persona for an industry: the language
// that identifies it and how to speak to it.
type Persona struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Phrases  []string `yaml:"phrases"`
	Notes    string   `yaml:"notes"`
}

// CTADefinition describes one call-to-action and the lead temperatures
// it is appropriate for.
type CTADefinition struct {
	ID           string               `yaml:"id"`
	Label        string               `yaml:"label"`
	Temperatures []domain.Temperature `yaml:"temperatures"`
}

// ValidFor reports whether the CTA is appropriate at the temperature.
func (c CTADefinition) ValidFor(t domain.Temperature) bool {
	for _, temp := range c.Temperatures {
		if temp == t {
			return true
		}
	}
	return false
}

// ExclusiveTo reports whether the CTA is valid for exactly one
// temperature, which happens to be t.
func (c CTADefinition) ExclusiveTo(t domain.Temperature) bool {
	return len(c.Temperatures) == 1 && c.Temperatures[0] == t
}

// EmotionSet is the keyword/phrase signature of one emotional state.
type EmotionSet struct {
	State    domain.EmotionalState `yaml:"state"`
	Keywords []string              `yaml:"keywords"`
	Phrases  []string              `yaml:"phrases"`
}

// RiskFamily is a named set of risk-flag keywords.
type RiskFamily struct {
	Flag     string   `yaml:"flag"`
	Keywords []string `yaml:"keywords"`
}

// ConversionPattern is one historically successful conversion sequence
// for a persona/industry pairing.
type ConversionPattern struct {
	ID                string          `yaml:"id"`
	Industry          domain.Industry `yaml:"industry,omitempty"`
	Persona           string          `yaml:"persona,omitempty"`
	Steps             []string        `yaml:"steps"`
	SuccessRate       float64         `yaml:"successRate"`
	AvgTimeToCloseDays int            `yaml:"avgTimeToCloseDays"`
	BestDaysOfWeek    []string        `yaml:"bestDaysOfWeek"`
	BestTimesOfDay    []string        `yaml:"bestTimesOfDay"`
}

// KeywordSets groups the plain keyword lists used by the v1 heuristic
// and the v2 objection detector.
type KeywordSets struct {
	Pain           []string `yaml:"pain"`
	Opportunity    []string `yaml:"opportunity"`
	Price          []string `yaml:"price"`
	BudgetPhrases  []string `yaml:"budgetPhrases"`
	TimingPhrases  []string `yaml:"timingPhrases"`
	ApprovalPhrases []string `yaml:"approvalPhrases"`
	TrustPositive  []string `yaml:"trustPositive"`
	TrustNegative  []string `yaml:"trustNegative"`
}

// Tables is the full scoring configuration surface.
type Tables struct {
	V5ByIndustry      map[domain.Industry]V5Weights  `yaml:"v5Weights"`
	V5Neutral         V5Weights                      `yaml:"v5Neutral"`
	DefaultFeatures   FeatureWeights                 `yaml:"defaultFeatures"`
	V4                V4Weights                      `yaml:"v4Weights"`
	PersonasByIndustry map[domain.Industry][]Persona `yaml:"personas"`
	GenericPersonas   []Persona                      `yaml:"genericPersonas"`
	CTAsByIndustry    map[domain.Industry][]CTADefinition `yaml:"ctas"`
	GenericCTAs       []CTADefinition                `yaml:"genericCTAs"`
	Emotions          []EmotionSet                   `yaml:"emotions"`
	RiskFamilies      []RiskFamily                   `yaml:"riskFamilies"`
	Keywords          KeywordSets                    `yaml:"keywords"`
	CuratedPatterns   []ConversionPattern            `yaml:"curatedPatterns"`
}

// V5For returns the 5-dimension weights for an industry, falling back
// to the neutral profile when the industry has no entry.
func (t *Tables) V5For(industry domain.Industry) V5Weights {
	if w, ok := t.V5ByIndustry[industry]; ok {
		return w
	}
	return t.V5Neutral
}

// PersonasFor returns the persona library for an industry, falling back
// to the generic persona set for industries without one.
func (t *Tables) PersonasFor(industry domain.Industry) ([]Persona, bool) {
	if p, ok := t.PersonasByIndustry[industry]; ok && len(p) > 0 {
		return p, true
	}
	return t.GenericPersonas, false
}

// CTAsFor returns the CTA definitions for an industry, falling back to
// the generic set. The boolean reports whether an industry-specific
// table existed.
func (t *Tables) CTAsFor(industry domain.Industry) ([]CTADefinition, bool) {
	if c, ok := t.CTAsByIndustry[industry]; ok && len(c) > 0 {
		return c, true
	}
	return t.GenericCTAs, false
}

// Validate checks the weight-sum invariant for every weight group.
func (t *Tables) Validate() error {
	const tolerance = 0.01
	check := func(name string, sum float64) error {
		if sum < 1.0-tolerance || sum > 1.0+tolerance {
			return fmt.Errorf("weight group %s sums to %.4f, want 1.0 ± %.2f", name, sum, tolerance)
		}
		return nil
	}

	if err := check("v5.neutral", t.V5Neutral.Sum()); err != nil {
		return err
	}
	for ind, w := range t.V5ByIndustry {
		if err := check("v5."+string(ind), w.Sum()); err != nil {
			return err
		}
	}
	if err := check("features.default", t.DefaultFeatures.Sum()); err != nil {
		return err
	}
	if err := check("v4", t.V4.Sum()); err != nil {
		return err
	}
	for _, p := range t.CuratedPatterns {
		if p.SuccessRate < 0 || p.SuccessRate > 1 {
			return fmt.Errorf("pattern %s success rate %.2f out of [0,1]", p.ID, p.SuccessRate)
		}
	}
	return nil
}
