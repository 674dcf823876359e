package consultations

import "github.com/shopspring/decimal"

// SplitCommission divides cost between the platform and the doctor. The
// platform share is truncated to two decimal places and the doctor receives
// the exact remainder, so commission + income always equals cost.
func SplitCommission(cost, rate decimal.Decimal) (commission, income decimal.Decimal) {
	commission = cost.Mul(rate).Truncate(2)
	income = cost.Sub(commission)
	return commission, income
}
