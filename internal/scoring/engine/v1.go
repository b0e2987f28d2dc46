package engine

import (
	"fmt"
	"strings"

	"scoutscore_backend/internal/scoring/domain"
)

// v1 scoring constants: a neutral 50 base nudged by keyword evidence.
const (
	v1Base              = 50
	v1PainPoints        = 8
	v1OpportunityPoints = 10
)

// ScoreV1 is the keyword heuristic: count pain, opportunity, and price
// keyword hits in the raw text and derive score and intent from the
// mix. It needs no stored data, which makes it the scorer of last
// resort for brand-new prospects.
func (e *Engine) ScoreV1(input domain.ScoreInput) domain.BaseScore {
	text := strings.ToLower(input.TextContent)
	if text == "" {
		text = strings.ToLower(prospectText(input.LastMessages))
	}

	kw := e.tables.Keywords
	painHits := countHits(text, kw.Pain)
	opportunityHits := countHits(text, kw.Opportunity)
	priceHits := countHits(text, kw.Price)

	score := domain.Clamp100(float64(v1Base + v1PainPoints*painHits + v1OpportunityPoints*opportunityHits))

	intent := domain.IntentInfoOnly
	cta := "soft_intro"
	switch {
	case priceHits > 0:
		intent = domain.IntentPriceCheck
		cta = "show_price"
	case opportunityHits > painHits:
		intent = domain.IntentInterest
		cta = "value_story"
	}

	insights := []string{}
	if painHits > 0 {
		insights = append(insights, fmt.Sprintf("%d pain point mention(s) detected", painHits))
	}
	if opportunityHits > 0 {
		insights = append(insights, fmt.Sprintf("%d opportunity signal(s) detected", opportunityHits))
	}
	if priceHits > 0 {
		insights = append(insights, "asking about price")
	}

	return domain.BaseScore{
		Version:              int(V1),
		Industry:             input.Industry,
		Score:                score,
		LeadTemperature:      bucket(score),
		IntentSignal:         intent,
		ConversionLikelihood: score,
		RecommendedCTA:       cta,
		Breakdown: map[string]float64{
			"painHits":        float64(painHits),
			"opportunityHits": float64(opportunityHits),
			"priceHits":       float64(priceHits),
		},
		Insights: insights,
	}
}

// prospectText concatenates the prospect's own messages, ignoring the
// owner's side of the thread.
func prospectText(messages []domain.Message) string {
	var b strings.Builder
	for _, m := range messages {
		if m.Sender != "user" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(m.Text)
	}
	return b.String()
}

// countHits counts how many keywords appear in text at least once.
func countHits(text string, keywords []string) int {
	if text == "" {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}
