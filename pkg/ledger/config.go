package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LimitsConfig holds the withdrawal limits applied to an account operation.
// The limits are operation inputs, not account state: different callers may
// apply different limits to the same account.
type LimitsConfig struct {
	// PerWithdrawal is the maximum amount for a single withdrawal.
	PerWithdrawal decimal.Decimal

	// DailyWithdrawals is the maximum number of withdrawals per calendar day.
	DailyWithdrawals int
}

// DefaultLimitsConfig returns the stock limits: 500.00 per withdrawal,
// 3 withdrawals per day.
func DefaultLimitsConfig() LimitsConfig {
	return LimitsConfig{
		PerWithdrawal:    decimal.NewFromInt(500),
		DailyWithdrawals: 3,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any field is non-positive.
func (c *LimitsConfig) Validate() error {
	if !c.PerWithdrawal.IsPositive() {
		return fmt.Errorf("%w: per-withdrawal limit must be positive", ErrInvalidLimits)
	}
	if c.DailyWithdrawals <= 0 {
		return fmt.Errorf("%w: daily withdrawal count must be positive", ErrInvalidLimits)
	}
	return nil
}
