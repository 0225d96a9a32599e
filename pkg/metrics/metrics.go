package metrics

import (
	"time"
)

// OperationsCollector defines the interface for collecting ledger metrics.
// Implementations can export metrics to various backends (Prometheus for a
// running server, an in-memory collector for tests).
type OperationsCollector interface {
	// Registry events. outcome is OutcomeOK or an error classification.
	RecordHolderRegistered(outcome string)
	RecordAccountOpened(outcome string)

	// Account operations. amount is the requested amount in currency units,
	// regardless of whether the operation succeeded.
	RecordDeposit(outcome string, amount float64, duration time.Duration)
	RecordWithdrawal(outcome string, amount float64, duration time.Duration)
	RecordStatement(duration time.Duration)
}

// OutcomeOK is the outcome label recorded for successful operations.
const OutcomeOK = "ok"

// NoOpCollector is a no-op implementation of OperationsCollector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordHolderRegistered does nothing.
func (NoOpCollector) RecordHolderRegistered(outcome string) {}

// RecordAccountOpened does nothing.
func (NoOpCollector) RecordAccountOpened(outcome string) {}

// RecordDeposit does nothing.
func (NoOpCollector) RecordDeposit(outcome string, amount float64, duration time.Duration) {}

// RecordWithdrawal does nothing.
func (NoOpCollector) RecordWithdrawal(outcome string, amount float64, duration time.Duration) {}

// RecordStatement does nothing.
func (NoOpCollector) RecordStatement(duration time.Duration) {}
