package pricing

import "strings"

// Tier constants (single source of truth)
const (
	TierBasic    = "basic"
	TierStandard = "standard"
	TierPremium  = "premium"
)

// BasicPrice is the fallback for every unknown tier or type code.
const BasicPrice = 50.0

var tierPrices = map[string]float64{
	TierBasic:    50,
	TierStandard: 100,
	TierPremium:  250,
}

// Per-assessment-type table. Kept for display and legacy records; the tier
// table is authoritative for new purchases.
var typePrices = map[string]float64{
	"career-interest":  50,
	"personality":      50,
	"work-values":      50,
	"aptitude":         100,
	"skills":           100,
	"learning-style":   100,
	"entrepreneurship": 250,
}

// TierPrice returns the base price for a tier. Unknown tiers silently fall
// back to the basic price — callers never see an error here.
func TierPrice(tier string) float64 {
	if p, ok := tierPrices[strings.ToLower(strings.TrimSpace(tier))]; ok {
		return p
	}
	return BasicPrice
}

// TypePrice returns the base price for an assessment type code, with the same
// silent basic-price fallback as TierPrice.
func TypePrice(code string) float64 {
	if p, ok := typePrices[strings.ToLower(strings.TrimSpace(code))]; ok {
		return p
	}
	return BasicPrice
}
