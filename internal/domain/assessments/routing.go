package assessments

import (
	"strings"

	"assessment-app/internal/domain/pricing"
)

// Processing paths
const (
	PathAI     = "ai"
	PathManual = "manual"
)

// Result pages, keyed primarily by tier with price thresholds as fallback.
const (
	ResultsBasic    = "/results/basic"
	ResultsStandard = "/results/standard"
	ResultsPremium  = "/results/premium"
)

type Decision struct {
	Path       string `json:"path"`
	NextStatus string `json:"nextStatus"`
	Redirect   string `json:"redirect"`
}

// ManualProcessingFor is the write-time rule for the ManualProcessing flag:
// anything above the basic tier, or priced at 100 and up, goes to a clerk.
func ManualProcessingFor(tier string, price float64) bool {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case pricing.TierStandard, pricing.TierPremium:
		return true
	}
	return price >= 100
}

// Decide routes a paid assessment. The tier, price and flag signals overlap
// on purpose — tier and price can disagree on rows created before the repair
// rule existed, and any one signal is enough to send the work to a clerk.
func Decide(tier string, price float64, manualProcessing bool) Decision {
	if manualProcessing || ManualProcessingFor(tier, price) {
		return Decision{
			Path:       PathManual,
			NextStatus: StatusPendingReview,
			Redirect:   ResultPage(tier, price),
		}
	}
	return Decision{
		Path:       PathAI,
		NextStatus: StatusInProgress,
		Redirect:   ResultPage(tier, price),
	}
}

// ResultPage picks the result-page variant. An explicit tier always wins;
// the price thresholds only apply when the tier is absent or unrecognized.
// This precedence is load-bearing for rows where tier and price disagree.
func ResultPage(tier string, price float64) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case pricing.TierPremium:
		return ResultsPremium
	case pricing.TierStandard:
		return ResultsStandard
	case pricing.TierBasic:
		return ResultsBasic
	}
	switch {
	case price >= 250:
		return ResultsPremium
	case price >= 100:
		return ResultsStandard
	default:
		return ResultsBasic
	}
}
