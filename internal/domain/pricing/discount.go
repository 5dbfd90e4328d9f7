package pricing

import "errors"

// ErrInvalidInput is returned for a negative base price or a percentage
// outside 0–100. Nothing is computed past that point.
var ErrInvalidInput = errors.New("invalid discount input")

type Discount struct {
	OriginalPrice  float64 `json:"originalPrice"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalPrice     float64 `json:"finalPrice"`
	// Savings always equals DiscountAmount; both names are exposed for
	// caller convenience.
	Savings float64 `json:"savings"`
}

// CalculateDiscount applies a percentage discount with an optional absolute
// cap. DiscountAmount and FinalPrice are each rounded to 2 decimals half-up,
// independently of one another: 33.33% off 100 must give 33.33 / 66.67, not
// 66.66.
func CalculateDiscount(basePrice, percentage float64, maxDiscount *float64) (Discount, error) {
	if basePrice < 0 || percentage < 0 || percentage > 100 {
		return Discount{}, ErrInvalidInput
	}
	if maxDiscount != nil && *maxDiscount < 0 {
		return Discount{}, ErrInvalidInput
	}

	amount := Round2(basePrice * percentage / 100)
	if maxDiscount != nil && amount > *maxDiscount {
		amount = *maxDiscount
	}

	final := Round2(basePrice - amount)
	if final < 0 {
		final = 0
	}

	return Discount{
		OriginalPrice:  basePrice,
		DiscountAmount: amount,
		FinalPrice:     final,
		Savings:        amount,
	}, nil
}
