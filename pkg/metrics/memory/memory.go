package memory

import (
	"sync"
	"time"

	"bankledger/pkg/metrics"
)

// MemoryCollector implements OperationsCollector for in-memory testing.
type MemoryCollector struct {
	mu sync.RWMutex

	holdersRegistered map[string]int64
	accountsOpened    map[string]int64
	deposits          map[string]int64
	withdrawals       map[string]int64
	statements        int64

	depositAmounts    []float64
	withdrawalAmounts []float64
	latencies         []time.Duration
}

// NewMemoryCollector creates a new in-memory metrics collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{
		holdersRegistered: make(map[string]int64),
		accountsOpened:    make(map[string]int64),
		deposits:          make(map[string]int64),
		withdrawals:       make(map[string]int64),
	}
}

// RecordHolderRegistered records a holder registration attempt by outcome.
func (mc *MemoryCollector) RecordHolderRegistered(outcome string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.holdersRegistered[outcome]++
}

// RecordAccountOpened records an account-open attempt by outcome.
func (mc *MemoryCollector) RecordAccountOpened(outcome string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.accountsOpened[outcome]++
}

// RecordDeposit records a deposit attempt.
func (mc *MemoryCollector) RecordDeposit(outcome string, amount float64, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.deposits[outcome]++
	if outcome == metrics.OutcomeOK {
		mc.depositAmounts = append(mc.depositAmounts, amount)
	}
	mc.latencies = append(mc.latencies, duration)
}

// RecordWithdrawal records a withdrawal attempt.
func (mc *MemoryCollector) RecordWithdrawal(outcome string, amount float64, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.withdrawals[outcome]++
	if outcome == metrics.OutcomeOK {
		mc.withdrawalAmounts = append(mc.withdrawalAmounts, amount)
	}
	mc.latencies = append(mc.latencies, duration)
}

// RecordStatement records a statement render.
func (mc *MemoryCollector) RecordStatement(duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.statements++
	mc.latencies = append(mc.latencies, duration)
}

// Deposits returns the number of deposit attempts recorded for outcome.
func (mc *MemoryCollector) Deposits(outcome string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.deposits[outcome]
}

// Withdrawals returns the number of withdrawal attempts recorded for outcome.
func (mc *MemoryCollector) Withdrawals(outcome string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.withdrawals[outcome]
}

// HoldersRegistered returns the number of registration attempts for outcome.
func (mc *MemoryCollector) HoldersRegistered(outcome string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.holdersRegistered[outcome]
}

// AccountsOpened returns the number of account-open attempts for outcome.
func (mc *MemoryCollector) AccountsOpened(outcome string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.accountsOpened[outcome]
}

// Statements returns the number of statement renders recorded.
func (mc *MemoryCollector) Statements() int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.statements
}

// Reset clears all recorded metrics.
func (mc *MemoryCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.holdersRegistered = make(map[string]int64)
	mc.accountsOpened = make(map[string]int64)
	mc.deposits = make(map[string]int64)
	mc.withdrawals = make(map[string]int64)
	mc.statements = 0
	mc.depositAmounts = nil
	mc.withdrawalAmounts = nil
	mc.latencies = nil
}
