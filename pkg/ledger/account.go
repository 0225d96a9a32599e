package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"bankledger/pkg/logging"
	"bankledger/pkg/metrics"
	"bankledger/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultAgency is the fixed agency code every account carries.
const DefaultAgency = "0001"

// entryTimeLayout is the timestamp format used in statement lines.
const entryTimeLayout = "02/01/2006 15:04"

// Kind identifies the type of a ledger entry.
type Kind string

const (
	// KindDeposit marks an entry created by a deposit.
	KindDeposit Kind = "DEPOSIT"
	// KindWithdrawal marks an entry created by a withdrawal.
	KindWithdrawal Kind = "WITHDRAWAL"
)

// Entry is one transaction record in an account's log.
// Amount is signed: positive for deposits, negative for withdrawals.
// Balance is the account balance immediately after the operation.
type Entry struct {
	ID      string          `json:"id"`
	Time    time.Time       `json:"time"`
	Kind    Kind            `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
}

// String renders the entry as a human-readable statement line:
//
//	02/01/2006 15:04 | DEPOSIT    | +R$ 1.000,00 | Balance: R$ 1.000,00
func (e Entry) String() string {
	sign := "+"
	if e.Amount.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s | %-10s | %s%s | Balance: %s",
		e.Time.Format(entryTimeLayout), string(e.Kind),
		sign, money.Format(e.Amount.Abs()), money.Format(e.Balance))
}

// Account is a numbered ledger owned by exactly one holder.
// Agency, Number and HolderID are fixed at creation; balance, log and the
// daily withdrawal counter change only under the account mutex, so every
// operation is an atomic read-modify-write (no lost updates between
// concurrent withdrawals).
type Account struct {
	Agency   string
	Number   int
	HolderID string

	mu               sync.Mutex
	balance          decimal.Decimal
	entries          []Entry
	withdrawalsToday int
	withdrawalsDate  time.Time

	now     func() time.Time
	logger  *logging.Logger
	metrics metrics.OperationsCollector
}

// WithdrawalRequest carries the inputs of a withdrawal as named fields, so
// call sites cannot confuse the amount with either limit.
type WithdrawalRequest struct {
	Amount decimal.Decimal
	Limits LimitsConfig
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Entries returns a copy of the transaction log in chronological order.
func (a *Account) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// WithdrawalsToday returns the current daily withdrawal counter. The value
// reflects the stored reference date; it is not reset here.
func (a *Account) WithdrawalsToday() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawalsToday
}

// Deposit increases the balance by amount and appends a log entry.
// Fails with ErrInvalidAmount if amount <= 0. There is no upper bound.
func (a *Account) Deposit(amount decimal.Decimal) (Entry, error) {
	start := time.Now()
	amt, _ := amount.Float64()

	if !amount.IsPositive() {
		a.metrics.RecordDeposit(ClassifyError(ErrInvalidAmount), amt, time.Since(start))
		return Entry{}, ErrInvalidAmount
	}

	a.mu.Lock()
	a.balance = a.balance.Add(amount)
	e := Entry{
		ID:      uuid.New().String(),
		Time:    a.now(),
		Kind:    KindDeposit,
		Amount:  amount,
		Balance: a.balance,
	}
	a.entries = append(a.entries, e)
	a.mu.Unlock()

	a.logger.Debug("deposit",
		zap.Int("account", a.Number),
		zap.String("amount", amount.String()),
		zap.String("balance", e.Balance.String()))
	a.metrics.RecordDeposit(metrics.OutcomeOK, amt, time.Since(start))
	return e, nil
}

// Withdraw decreases the balance by req.Amount, bumps the daily counter and
// appends a log entry.
//
// If the counter's reference date is not today, the counter is first reset
// to 0 and the reference date set to today (the counter tracks withdrawals
// for the current calendar day only; comparison is plain date equality).
//
// Validation order is fixed and observable through which error fires first:
//  1. req.Amount <= 0                      -> ErrInvalidAmount
//  2. req.Amount > balance                 -> ErrInsufficientFunds
//  3. req.Amount > Limits.PerWithdrawal    -> ErrWithdrawalLimit
//  4. counter >= Limits.DailyWithdrawals   -> ErrDailyWithdrawals
//
// Balance, log and counter are untouched when any check fails.
func (a *Account) Withdraw(req WithdrawalRequest) (Entry, error) {
	start := time.Now()
	amt, _ := req.Amount.Float64()

	fail := func(err error) (Entry, error) {
		a.metrics.RecordWithdrawal(ClassifyError(err), amt, time.Since(start))
		a.logger.Debug("withdrawal rejected",
			zap.Int("account", a.Number),
			zap.String("amount", req.Amount.String()),
			zap.Error(err))
		return Entry{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	today := dateOnly(a.now())
	if !a.withdrawalsDate.Equal(today) {
		a.withdrawalsDate = today
		a.withdrawalsToday = 0
	}

	if !req.Amount.IsPositive() {
		return fail(ErrInvalidAmount)
	}
	if req.Amount.GreaterThan(a.balance) {
		return fail(ErrInsufficientFunds)
	}
	if req.Amount.GreaterThan(req.Limits.PerWithdrawal) {
		return fail(ErrWithdrawalLimit)
	}
	if a.withdrawalsToday >= req.Limits.DailyWithdrawals {
		return fail(ErrDailyWithdrawals)
	}

	a.balance = a.balance.Sub(req.Amount)
	a.withdrawalsToday++
	e := Entry{
		ID:      uuid.New().String(),
		Time:    a.now(),
		Kind:    KindWithdrawal,
		Amount:  req.Amount.Neg(),
		Balance: a.balance,
	}
	a.entries = append(a.entries, e)

	a.logger.Debug("withdrawal",
		zap.Int("account", a.Number),
		zap.String("amount", req.Amount.String()),
		zap.String("balance", e.Balance.String()),
		zap.Int("withdrawals_today", a.withdrawalsToday))
	a.metrics.RecordWithdrawal(metrics.OutcomeOK, amt, time.Since(start))
	return e, nil
}

// Statement renders the transaction log in chronological order followed by
// the current balance. Pure read; no mutation.
func (a *Account) Statement() string {
	start := time.Now()

	a.mu.Lock()
	lines := []string{"", "========== STATEMENT =========="}
	if len(a.entries) == 0 {
		lines = append(lines, "(no transactions)")
	} else {
		for _, e := range a.entries {
			lines = append(lines, e.String())
		}
	}
	lines = append(lines, "Current balance: "+money.Format(a.balance))
	lines = append(lines, "===============================", "")
	a.mu.Unlock()

	a.metrics.RecordStatement(time.Since(start))
	return strings.Join(lines, "\n")
}

// dateOnly truncates t to its calendar date in t's location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
