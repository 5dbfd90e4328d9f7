package referrals

import "math"

type Commission struct {
	Amount float64 `json:"commissionAmount"`
	Rate   float64 `json:"commissionRate"`
}

// Fixed payout table keyed by package price. This is a contract over a closed
// set of packages, not a percentage formula: the 100 package pays 30%, while
// 50 and 250 pay 20%. Do not replace with arithmetic.
var commissionTable = map[int]Commission{
	50:  {Amount: 10, Rate: 20},
	100: {Amount: 30, Rate: 30},
	250: {Amount: 50, Rate: 20},
}

// CalculateCommission looks up the affiliate payout for a package price,
// keyed on the rounded integer amount. Prices outside the table pay nothing.
func CalculateCommission(price float64) Commission {
	if c, ok := commissionTable[int(math.Round(price))]; ok {
		return c
	}
	return Commission{}
}
