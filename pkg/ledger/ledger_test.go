package ledger

import (
	"errors"
	"strings"
	"testing"
	"time"

	"bankledger/pkg/identity"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// newTestRegistry returns registries with one registered holder and a fixed
// clock controlled by the returned setter.
func newTestRegistry(t *testing.T) (*identity.Registry, *Registry, func(time.Time)) {
	t.Helper()

	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	holders := identity.NewRegistry()
	if _, err := holders.Register("Jane Roe", "10/02/1990", "52998224725", "Main St, 1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	accounts := NewRegistry(holders, RegistryConfig{
		Now: func() time.Time { return now },
	})
	return holders, accounts, func(tm time.Time) { now = tm }
}

func TestRegistry_OpenSequentialNumbers(t *testing.T) {
	holders, accounts, _ := newTestRegistry(t)
	if _, err := holders.Register("John Doe", "01/01/1980", "11144477735", "Oak St, 2"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	a1, err := accounts.Open("52998224725")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	a2, err := accounts.Open("111.444.777-35")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	a3, err := accounts.Open("52998224725")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if a1.Number != 1 || a2.Number != 2 || a3.Number != 3 {
		t.Errorf("Expected numbers 1,2,3; got %d,%d,%d", a1.Number, a2.Number, a3.Number)
	}
	if a1.Agency != DefaultAgency {
		t.Errorf("Expected agency %s, got %s", DefaultAgency, a1.Agency)
	}
	if a2.HolderID != "11144477735" {
		t.Errorf("Expected normalized holder reference, got %q", a2.HolderID)
	}
	if !a1.Balance().IsZero() {
		t.Errorf("New account must start at zero balance, got %s", a1.Balance())
	}
	if len(a1.Entries()) != 0 {
		t.Errorf("New account must start with an empty log")
	}
}

func TestRegistry_OpenUnknownHolder(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)

	if _, err := accounts.Open("00000000000"); !errors.Is(err, ErrHolderNotFound) {
		t.Fatalf("Expected ErrHolderNotFound, got %v", err)
	}

	// The failed open must not burn a number.
	a, err := accounts.Open("52998224725")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if a.Number != 1 {
		t.Errorf("Expected first account to get number 1, got %d", a.Number)
	}
}

func TestRegistry_Get(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)

	if _, err := accounts.Get(1); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("Expected ErrAccountNotFound, got %v", err)
	}

	opened, err := accounts.Open("52998224725")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	got, err := accounts.Get(opened.Number)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != opened {
		t.Error("Get must return the registered account")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	for i := 0; i < 3; i++ {
		if _, err := accounts.Open("52998224725"); err != nil {
			t.Fatalf("Open failed: %v", err)
		}
	}

	list := accounts.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 accounts, got %d", len(list))
	}
	for i, a := range list {
		if a.Number != i+1 {
			t.Errorf("Expected number %d at index %d, got %d", i+1, i, a.Number)
		}
	}
}

func TestAccount_Deposit(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")

	e, err := a.Deposit(dec(t, "1000"))
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if !a.Balance().Equal(dec(t, "1000")) {
		t.Errorf("Expected balance 1000, got %s", a.Balance())
	}
	if e.Kind != KindDeposit {
		t.Errorf("Expected kind DEPOSIT, got %s", e.Kind)
	}
	if !e.Amount.Equal(dec(t, "1000")) || !e.Balance.Equal(dec(t, "1000")) {
		t.Errorf("Entry mismatch: amount %s balance %s", e.Amount, e.Balance)
	}
	if e.ID == "" {
		t.Error("Entry must carry an ID")
	}

	entries := a.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected exactly 1 entry, got %d", len(entries))
	}
	if entries[0].ID != e.ID {
		t.Error("Logged entry must match the returned one")
	}
}

func TestAccount_DepositInvalidAmount(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")

	for _, amount := range []string{"0", "-1"} {
		if _, err := a.Deposit(dec(t, amount)); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%s): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if !a.Balance().IsZero() || len(a.Entries()) != 0 {
		t.Error("Failed deposit must not mutate the account")
	}
}

func TestAccount_Withdraw(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")
	if _, err := a.Deposit(dec(t, "1000")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	e, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "300"), Limits: DefaultLimitsConfig()})
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if !a.Balance().Equal(dec(t, "700")) {
		t.Errorf("Expected balance 700, got %s", a.Balance())
	}
	if e.Kind != KindWithdrawal {
		t.Errorf("Expected kind WITHDRAWAL, got %s", e.Kind)
	}
	if !e.Amount.Equal(dec(t, "-300")) {
		t.Errorf("Withdrawal entry amount must be signed negative, got %s", e.Amount)
	}
	if a.WithdrawalsToday() != 1 {
		t.Errorf("Expected counter 1, got %d", a.WithdrawalsToday())
	}
	if len(a.Entries()) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(a.Entries()))
	}
}

func TestAccount_WithdrawInsufficientFunds(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")
	if _, err := a.Deposit(dec(t, "100")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	_, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "100.01"), Limits: DefaultLimitsConfig()})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
	if !a.Balance().Equal(dec(t, "100")) {
		t.Errorf("Balance must be unchanged, got %s", a.Balance())
	}
	if len(a.Entries()) != 1 {
		t.Errorf("Log must be unchanged, got %d entries", len(a.Entries()))
	}
	if a.WithdrawalsToday() != 0 {
		t.Errorf("Counter must be unchanged, got %d", a.WithdrawalsToday())
	}
}

func TestAccount_WithdrawPerWithdrawalLimit(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")
	if _, err := a.Deposit(dec(t, "10000")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	// Balance is plenty; the per-withdrawal ceiling still rejects.
	_, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "500.01"), Limits: DefaultLimitsConfig()})
	if !errors.Is(err, ErrWithdrawalLimit) {
		t.Fatalf("Expected ErrWithdrawalLimit, got %v", err)
	}
	if !a.Balance().Equal(dec(t, "10000")) || a.WithdrawalsToday() != 0 {
		t.Error("Failed withdrawal must not mutate the account")
	}
}

func TestAccount_WithdrawDailyLimit(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")
	if _, err := a.Deposit(dec(t, "1000")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	limits := DefaultLimitsConfig() // 3 per day
	for i := 0; i < 3; i++ {
		if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "10"), Limits: limits}); err != nil {
			t.Fatalf("Withdrawal %d failed: %v", i+1, err)
		}
	}
	if a.WithdrawalsToday() != 3 {
		t.Fatalf("Expected counter 3, got %d", a.WithdrawalsToday())
	}

	_, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "10"), Limits: limits})
	if !errors.Is(err, ErrDailyWithdrawals) {
		t.Fatalf("Expected ErrDailyWithdrawals on 4th same-day withdrawal, got %v", err)
	}
	if !a.Balance().Equal(dec(t, "970")) {
		t.Errorf("Expected balance 970, got %s", a.Balance())
	}
}

func TestAccount_WithdrawCounterResetsOnNewDay(t *testing.T) {
	_, accounts, setNow := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")
	if _, err := a.Deposit(dec(t, "1000")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	limits := DefaultLimitsConfig()
	for i := 0; i < 3; i++ {
		if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "10"), Limits: limits}); err != nil {
			t.Fatalf("Withdrawal %d failed: %v", i+1, err)
		}
	}
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "10"), Limits: limits}); !errors.Is(err, ErrDailyWithdrawals) {
		t.Fatalf("Expected daily limit hit, got %v", err)
	}

	// First attempt on the next calendar day succeeds; the counter carries
	// nothing over.
	setNow(time.Date(2024, 5, 11, 0, 1, 0, 0, time.UTC))
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "10"), Limits: limits}); err != nil {
		t.Fatalf("First withdrawal of the new day failed: %v", err)
	}
	if a.WithdrawalsToday() != 1 {
		t.Errorf("Expected counter 1 after reset, got %d", a.WithdrawalsToday())
	}
}

func TestAccount_WithdrawValidationOrder(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")

	limits := LimitsConfig{PerWithdrawal: dec(t, "50"), DailyWithdrawals: 1}

	// Non-positive amount fires first even though every other rule is also
	// violated (zero balance, above ceiling once negated, counter at cap
	// after the setup withdrawal below).
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "-100"), Limits: limits}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("Expected ErrInvalidAmount first, got %v", err)
	}

	// Insufficient funds fires before the per-withdrawal ceiling.
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "100"), Limits: limits}); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds before limit check, got %v", err)
	}

	// With funds available, the ceiling fires before the daily count.
	if _, err := a.Deposit(dec(t, "1000")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "10"), Limits: limits}); err != nil {
		t.Fatalf("Setup withdrawal failed: %v", err)
	}
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "100"), Limits: limits}); !errors.Is(err, ErrWithdrawalLimit) {
		t.Fatalf("Expected ErrWithdrawalLimit before daily count, got %v", err)
	}
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "10"), Limits: limits}); !errors.Is(err, ErrDailyWithdrawals) {
		t.Fatalf("Expected ErrDailyWithdrawals last, got %v", err)
	}
}

func TestAccount_StatementEmpty(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")

	s := a.Statement()
	if !strings.Contains(s, "(no transactions)") {
		t.Errorf("Empty statement must contain the placeholder:\n%s", s)
	}
	if !strings.Contains(s, "Current balance: R$ 0,00") {
		t.Errorf("Empty statement must render the zero balance:\n%s", s)
	}
}

func TestAccount_StatementRendersEntriesInOrder(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)
	a, _ := accounts.Open("52998224725")
	if _, err := a.Deposit(dec(t, "1000")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "500"), Limits: DefaultLimitsConfig()}); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}

	s := a.Statement()
	depositLine := "10/05/2024 09:30 | DEPOSIT    | +R$ 1.000,00 | Balance: R$ 1.000,00"
	withdrawalLine := "10/05/2024 09:30 | WITHDRAWAL | -R$ 500,00 | Balance: R$ 500,00"
	if !strings.Contains(s, depositLine) {
		t.Errorf("Statement missing deposit line %q:\n%s", depositLine, s)
	}
	if !strings.Contains(s, withdrawalLine) {
		t.Errorf("Statement missing withdrawal line %q:\n%s", withdrawalLine, s)
	}
	if strings.Index(s, depositLine) > strings.Index(s, withdrawalLine) {
		t.Error("Statement entries must keep chronological order")
	}
	if !strings.Contains(s, "Current balance: R$ 500,00") {
		t.Errorf("Statement must end with the current balance:\n%s", s)
	}
}

// The end-to-end scenario from the rule book: open, deposit 1000, withdraw
// 500 then 1.00 repeatedly until the daily count runs out.
func TestScenario_DailyWithdrawals(t *testing.T) {
	_, accounts, _ := newTestRegistry(t)

	a, err := accounts.Open("52998224725")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if a.Number != 1 {
		t.Fatalf("Expected account number 1, got %d", a.Number)
	}

	limits := LimitsConfig{PerWithdrawal: dec(t, "500"), DailyWithdrawals: 3}

	if _, err := a.Deposit(dec(t, "1000")); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if !a.Balance().Equal(dec(t, "1000")) || len(a.Entries()) != 1 {
		t.Fatalf("After deposit: balance %s, %d entries", a.Balance(), len(a.Entries()))
	}

	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "500"), Limits: limits}); err != nil {
		t.Fatalf("Withdraw 500 failed: %v", err)
	}
	if !a.Balance().Equal(dec(t, "500")) || a.WithdrawalsToday() != 1 {
		t.Fatalf("After withdraw 500: balance %s, counter %d", a.Balance(), a.WithdrawalsToday())
	}

	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "1"), Limits: limits}); err != nil {
		t.Fatalf("Withdraw 1.00 failed: %v", err)
	}
	if !a.Balance().Equal(dec(t, "499")) || a.WithdrawalsToday() != 2 {
		t.Fatalf("After withdraw 1: balance %s, counter %d", a.Balance(), a.WithdrawalsToday())
	}

	// Third same-day withdrawal reaches the cap; the fourth is rejected.
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "1"), Limits: limits}); err != nil {
		t.Fatalf("Withdraw 1.00 failed: %v", err)
	}
	if a.WithdrawalsToday() != 3 {
		t.Fatalf("Expected counter 3, got %d", a.WithdrawalsToday())
	}
	if _, err := a.Withdraw(WithdrawalRequest{Amount: dec(t, "1"), Limits: limits}); !errors.Is(err, ErrDailyWithdrawals) {
		t.Fatalf("Expected ErrDailyWithdrawals, got %v", err)
	}
	if !a.Balance().Equal(dec(t, "498")) {
		t.Fatalf("Expected final balance 498, got %s", a.Balance())
	}
}

func TestLimitsConfig_Validate(t *testing.T) {
	limits := DefaultLimitsConfig()
	if err := limits.Validate(); err != nil {
		t.Errorf("Default limits must validate: %v", err)
	}

	bad := LimitsConfig{PerWithdrawal: decimal.Zero, DailyWithdrawals: 3}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidLimits) {
		t.Errorf("Expected ErrInvalidLimits for zero ceiling, got %v", err)
	}

	bad = LimitsConfig{PerWithdrawal: decimal.NewFromInt(100), DailyWithdrawals: 0}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidLimits) {
		t.Errorf("Expected ErrInvalidLimits for zero daily count, got %v", err)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrInvalidAmount, "invalid_amount"},
		{ErrInsufficientFunds, "insufficient_funds"},
		{ErrWithdrawalLimit, "withdrawal_limit"},
		{ErrDailyWithdrawals, "daily_limit"},
		{ErrAccountNotFound, "not_found"},
		{ErrHolderNotFound, "not_found"},
		{identity.ErrDuplicateHolder, "duplicate"},
		{identity.ErrInvalidIdentifier, "invalid_input"},
		{errors.New("boom"), "other"},
	}
	for _, c := range cases {
		if got := ClassifyError(c.err); got != c.want {
			t.Errorf("ClassifyError(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
