package domain

import "fmt"

// FailureKind categorizes scoring failures so the orchestrator and
// tests can assert on which sub-engine failed instead of inferring it
// from a neutral default score.
type FailureKind int

const (
	// FailureUnknown is the zero value.
	FailureUnknown FailureKind = iota
	// FailureDataUnavailable means profile or event data was missing;
	// the engine substitutes a neutral default and continues.
	FailureDataUnavailable
	// FailureOverlay means an overlay computation failed; the overlay
	// is omitted from fusion.
	FailureOverlay
	// FailureIndustryMismatch means activeIndustry disagreed with the
	// prospect's industry; neutral weights were forced.
	FailureIndustryMismatch
	// FailureConfiguration means an overlay was enabled without its
	// required industry; the overlay is skipped.
	FailureConfiguration
	// FailureTotal means the input itself was unresolvable (prospect
	// does not exist). The whole request gets a success:false result.
	FailureTotal
)

func (k FailureKind) String() string {
	switch k {
	case FailureDataUnavailable:
		return "data_unavailable"
	case FailureOverlay:
		return "overlay_computation"
	case FailureIndustryMismatch:
		return "industry_mismatch"
	case FailureConfiguration:
		return "configuration"
	case FailureTotal:
		return "total_failure"
	default:
		return "unknown"
	}
}

// ScoringError is a typed scoring failure.
type ScoringError struct {
	Kind   FailureKind
	Engine string // which sub-engine failed, e.g. "v8", "timeline"
	Err    error
}

func (e *ScoringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Engine, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Engine, e.Kind)
}

func (e *ScoringError) Unwrap() error { return e.Err }

// NewScoringError builds a typed scoring failure.
func NewScoringError(kind FailureKind, engine string, err error) *ScoringError {
	return &ScoringError{Kind: kind, Engine: engine, Err: err}
}

// KindOf extracts the failure kind from an error, FailureUnknown when
// the error is not a *ScoringError.
func KindOf(err error) FailureKind {
	if e, ok := err.(*ScoringError); ok {
		return e.Kind
	}
	return FailureUnknown
}
