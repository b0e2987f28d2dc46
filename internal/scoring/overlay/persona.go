// Package overlay implements the three independent overlay scorers
// layered atop a base score: persona fit (v6), CTA fit (v7), and
// emotional/trust state (v8). Each is a pure function of the score
// input, the base score, and the resolved industry; none depends on
// the others.
package overlay

import (
	"fmt"
	"strings"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

// Persona match scoring: phrases are stronger evidence than single
// keywords, and a runner-up close enough to the winner blurs the read.
const (
	personaKeywordPoints = 15
	personaPhrasePoints  = 25
	personaSecondWindow  = 30
	personaFloor         = 30
	genericPersonaFit    = 50
	genericPersonaName   = "generic"
)

// PersonaFit matches the prospect's recent language against the
// industry's persona library. Industries without a curated library
// fall back to the generic persona set; that is a designed case, not
// an error.
func PersonaFit(t *tables.Tables, input domain.ScoreInput, industry domain.Industry) domain.PersonaFit {
	personas, industrySpecific := t.PersonasFor(industry)
	text := strings.ToLower(recentProspectText(input.LastMessages, 0))
	if text == "" {
		text = strings.ToLower(input.TextContent)
	}

	type match struct {
		persona tables.Persona
		score   int
	}
	matches := make([]match, 0, len(personas))
	for _, p := range personas {
		score := 0
		for _, kw := range p.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				score += personaKeywordPoints
			}
		}
		for _, ph := range p.Phrases {
			if strings.Contains(text, strings.ToLower(ph)) {
				score += personaPhrasePoints
			}
		}
		matches = append(matches, match{persona: p, score: score})
	}

	best := match{}
	second := match{}
	for _, m := range matches {
		switch {
		case m.score > best.score:
			second = best
			best = m
		case m.score > second.score:
			second = m
		}
	}

	notes := []string{}
	if !industrySpecific {
		notes = append(notes, fmt.Sprintf("no persona library for industry %q, generic set used", industry))
	}

	if best.score < personaFloor {
		notes = append(notes, "not enough language signal for a confident persona read")
		return domain.PersonaFit{
			PersonaProfile:  genericPersonaName,
			PersonaFitScore: genericPersonaFit,
			Notes:           notes,
		}
	}

	fit := best.score
	profile := best.persona.Name
	if second.score > 0 && best.score-second.score <= personaSecondWindow {
		fit = (best.score + second.score) / 2
		notes = append(notes, fmt.Sprintf("secondary persona %q is close, blended read", second.persona.Name))
	}
	if best.persona.Notes != "" {
		notes = append(notes, best.persona.Notes)
	}

	return domain.PersonaFit{
		PersonaProfile:  profile,
		PersonaFitScore: domain.Clamp100(float64(fit)),
		Notes:           notes,
	}
}

// recentProspectText concatenates the prospect's own messages, most
// recent last. limit 0 means all.
func recentProspectText(messages []domain.Message, limit int) string {
	var own []string
	for _, m := range messages {
		if m.Sender == "user" {
			own = append(own, m.Text)
		}
	}
	if limit > 0 && len(own) > limit {
		own = own[len(own)-limit:]
	}
	return strings.Join(own, " ")
}
