package overlay

import (
	"strings"

	"scoutscore_backend/internal/scoring/domain"
	"scoutscore_backend/internal/scoring/tables"
)

// Emotional read parameters. The dominant-state threshold keeps weak
// single-keyword hits from overriding a neutral baseline.
const (
	emotionKeywordPoints = 10
	emotionPhrasePoints  = 20
	emotionMinDominant   = 15
	trustBaseline        = 65
	trustPositivePoints  = 5
	trustNegativePoints  = 10
	scamRepeatPenalty    = 20
	scamRepeatThreshold  = 2
	emotionalWindowSize  = 5
)

// EmotionalRead scans the prospect's last messages for emotional state,
// trust level, and risk flags, and derives the tone adjustment the
// message layer should apply.
func EmotionalRead(t *tables.Tables, input domain.ScoreInput) domain.EmotionalRead {
	text := strings.ToLower(recentProspectText(input.LastMessages, emotionalWindowSize))
	if text == "" {
		text = strings.ToLower(input.TextContent)
	}

	state := dominantEmotion(t.Emotions, text)
	trust := trustScore(t.Keywords, text)
	flags := riskFlags(t.RiskFamilies, text)

	return domain.EmotionalRead{
		EmotionalState: state,
		TrustScore:     trust,
		RiskFlags:      flags,
		ToneAdjustment: toneFor(state, trust, flags),
	}
}

func dominantEmotion(sets []tables.EmotionSet, text string) domain.EmotionalState {
	best := domain.EmotionNeutral
	bestScore := 0
	for _, set := range sets {
		score := 0
		for _, kw := range set.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				score += emotionKeywordPoints
			}
		}
		for _, ph := range set.Phrases {
			if strings.Contains(text, strings.ToLower(ph)) {
				score += emotionPhrasePoints
			}
		}
		if score > bestScore {
			best = set.State
			bestScore = score
		}
	}
	if bestScore < emotionMinDominant {
		return domain.EmotionNeutral
	}
	return best
}

func trustScore(kw tables.KeywordSets, text string) int {
	trust := trustBaseline
	for _, p := range kw.TrustPositive {
		if strings.Contains(text, strings.ToLower(p)) {
			trust += trustPositivePoints
		}
	}
	for _, n := range kw.TrustNegative {
		if strings.Contains(text, strings.ToLower(n)) {
			trust -= trustNegativePoints
		}
	}
	// Repeated scam language is a stronger signal than one negative hit.
	if strings.Count(text, "scam") >= scamRepeatThreshold {
		trust -= scamRepeatPenalty
	}
	return domain.Clamp100(float64(trust))
}

func riskFlags(families []tables.RiskFamily, text string) []string {
	var flags []string
	for _, fam := range families {
		for _, kw := range fam.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				flags = append(flags, fam.Flag)
				break
			}
		}
	}
	return flags
}

// toneFor resolves the single tone adjustment by priority: reassurance
// for low trust or anxiety, clarification for confusion, confidence for
// trusting excitement, softer for commitment or money fears.
func toneFor(state domain.EmotionalState, trust int, flags []string) domain.ToneAdjustment {
	switch {
	case trust < 50, state == domain.EmotionAnxious, state == domain.EmotionSkeptical:
		return domain.ToneMoreReassuring
	case state == domain.EmotionConfused:
		return domain.ToneMoreClarifying
	case state == domain.EmotionExcited && trust >= 70:
		return domain.ToneMoreConfident
	case hasFlag(flags, "fear_of_commitment"), hasFlag(flags, "financial_concern"):
		return domain.ToneSofter
	default:
		return domain.ToneNone
	}
}

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
