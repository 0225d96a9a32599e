package ledger

import (
	"errors"

	"bankledger/pkg/identity"
)

// Domain errors for account and ledger operations.
// The HTTP layer maps these to status codes; the CLI prints them and keeps
// the interaction loop running.
var (
	// ErrInvalidAmount is returned when a deposit or withdrawal amount is
	// not strictly positive.
	ErrInvalidAmount = errors.New("ledger: amount must be greater than zero")

	// ErrInsufficientFunds is returned when a withdrawal amount exceeds the
	// current balance.
	ErrInsufficientFunds = errors.New("ledger: insufficient balance for withdrawal")

	// ErrWithdrawalLimit is returned when a withdrawal amount exceeds the
	// per-withdrawal ceiling.
	ErrWithdrawalLimit = errors.New("ledger: amount exceeds the per-withdrawal limit")

	// ErrDailyWithdrawals is returned when the daily withdrawal count has
	// already been reached.
	ErrDailyWithdrawals = errors.New("ledger: daily withdrawal limit reached")

	// ErrAccountNotFound is returned when the requested account number does
	// not exist.
	ErrAccountNotFound = errors.New("ledger: account not found")

	// ErrHolderNotFound is returned when opening an account for an
	// identifier with no registered holder.
	ErrHolderNotFound = errors.New("ledger: no holder registered for this identifier")

	// ErrInvalidLimits is returned when a limits configuration is invalid.
	ErrInvalidLimits = errors.New("ledger: invalid withdrawal limits")
)

// IsNotFound checks if the given error indicates a missing account or holder.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrHolderNotFound)
}

// IsValidation checks if the given error indicates malformed or
// out-of-domain input rather than a business-rule rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, identity.ErrInvalidIdentifier) ||
		errors.Is(err, identity.ErrInvalidBirthDate)
}

// IsLimit checks if the given error indicates a withdrawal limit rejection
// (per-withdrawal ceiling or daily count).
func IsLimit(err error) bool {
	return errors.Is(err, ErrWithdrawalLimit) || errors.Is(err, ErrDailyWithdrawals)
}

// ClassifyError returns a string classification of the error for metrics
// labels. Returns "ok" for nil.
func ClassifyError(err error) string {
	if err == nil {
		return "ok"
	}

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrWithdrawalLimit):
		return "withdrawal_limit"
	case errors.Is(err, ErrDailyWithdrawals):
		return "daily_limit"
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrHolderNotFound):
		return "not_found"
	case errors.Is(err, identity.ErrDuplicateHolder):
		return "duplicate"
	case errors.Is(err, identity.ErrInvalidIdentifier), errors.Is(err, identity.ErrInvalidBirthDate):
		return "invalid_input"
	default:
		return "other"
	}
}
