// Package domain holds the scoring bounded context's core types.
// Engines, tables, and the orchestrator all depend on this package;
// it depends on nothing inside the module.
package domain

import "fmt"

// Industry is the closed set of verticals the scoring tables know about.
// Unknown strings parse to IndustryOther so a missing table entry is a
// designed case rather than a silent map miss.
type Industry string

const (
	IndustryMLM        Industry = "mlm"
	IndustryInsurance  Industry = "insurance"
	IndustryRealEstate Industry = "real_estate"
	IndustryEcommerce  Industry = "ecommerce"
	IndustryClinic     Industry = "clinic"
	IndustryLoans      Industry = "loans"
	IndustryAuto       Industry = "auto"
	IndustryFranchise  Industry = "franchise"
	IndustryCoaching   Industry = "coaching"
	IndustrySaaS       Industry = "saas"
	IndustryTravel     Industry = "travel"
	IndustryBeauty     Industry = "beauty"
	IndustryOther      Industry = "other"
)

// Industries lists every known industry, IndustryOther last.
var Industries = []Industry{
	IndustryMLM,
	IndustryInsurance,
	IndustryRealEstate,
	IndustryEcommerce,
	IndustryClinic,
	IndustryLoans,
	IndustryAuto,
	IndustryFranchise,
	IndustryCoaching,
	IndustrySaaS,
	IndustryTravel,
	IndustryBeauty,
	IndustryOther,
}

// ParseIndustry maps a raw string onto the closed enum.
// The second return reports whether the value was recognized;
// unrecognized values come back as IndustryOther.
func ParseIndustry(raw string) (Industry, bool) {
	for _, ind := range Industries {
		if string(ind) == raw {
			return ind, true
		}
	}
	return IndustryOther, false
}

// Valid reports whether the industry is one of the known values.
func (i Industry) Valid() bool {
	_, ok := ParseIndustry(string(i))
	return ok && Industry(string(i)) == i
}

func (i Industry) String() string { return string(i) }

// IsolationCheck decides whether industry-specific tables may be used.
// When an active industry is declared and disagrees with the prospect's
// industry, the neutral profile must be used and industry-gated lookups
// skipped. The mismatch is reported, not averaged away.
func IsolationCheck(industry, activeIndustry Industry) (useIndustry Industry, isolated bool) {
	if industry == "" {
		return IndustryOther, false
	}
	if activeIndustry != "" && activeIndustry != industry {
		return IndustryOther, true
	}
	return industry, false
}

// MustParseIndustry is a test/config helper that panics on unknown input.
func MustParseIndustry(raw string) Industry {
	ind, ok := ParseIndustry(raw)
	if !ok {
		panic(fmt.Sprintf("unknown industry %q", raw))
	}
	return ind
}
