package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for every money column
const MoneyScale = 4

// AgentOnboardingBonus is credited once an admin accepts an agent
var AgentOnboardingBonus = decimal.NewFromInt(100000)

var oneAndHalf = decimal.RequireFromString("1.5")

// ValidateAmount checks that d fits the money scale and is positive, or non-negative when allowZero is set
func ValidateAmount(d decimal.Decimal, allowZero bool) error {
	if d.Exponent() < -MoneyScale && !d.Equal(d.Round(MoneyScale)) {
		return fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidAmount, d, MoneyScale)
	}
	if d.IsNegative() || (!allowZero && d.IsZero()) {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, d)
	}
	return nil
}

// SplitCashOutFee divides a cash-out fee between agent and admin at 1/1.5 and 0.5/1.5.
// The admin share absorbs rounding so the two always add up to fee.
func SplitCashOutFee(fee decimal.Decimal) (agentFee, adminFee decimal.Decimal) {
	agentFee = fee.Div(oneAndHalf).Round(MoneyScale)
	adminFee = fee.Sub(agentFee)
	return agentFee, adminFee
}
