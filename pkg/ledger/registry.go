// Package ledger implements the account registry and the deposit,
// withdrawal and statement operations. Accounts live in process memory;
// process exit discards all state.
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bankledger/pkg/identity"
	"bankledger/pkg/logging"
	"bankledger/pkg/metrics"
	"bankledger/pkg/money"

	"go.uber.org/zap"
)

// RegistryConfig holds configuration for an account registry.
type RegistryConfig struct {
	// Agency is the fixed agency code stamped on every account.
	Agency string

	// Logger receives operation logs. Defaults to a no-op logger.
	Logger *logging.Logger

	// Metrics receives operation metrics. Defaults to a no-op collector.
	Metrics metrics.OperationsCollector

	// Now is the clock used for entry timestamps and the daily withdrawal
	// counter. Defaults to time.Now. Tests inject a fixed clock here.
	Now func() time.Time
}

// DefaultRegistryConfig returns a default configuration.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		Agency: DefaultAgency,
	}
}

// Registry stores accounts keyed by their sequential number and links each
// new account to an existing holder. The mutex guards the
// "assign next number, then insert" sequence so concurrent opens cannot
// collide on a number.
type Registry struct {
	mu       sync.Mutex
	accounts map[int]*Account
	holders  *identity.Registry
	config   RegistryConfig
}

// NewRegistry creates an account registry backed by the given holder
// registry. Zero-value config fields are filled with defaults.
func NewRegistry(holders *identity.Registry, config RegistryConfig) *Registry {
	if config.Agency == "" {
		config.Agency = DefaultAgency
	}
	if config.Logger == nil {
		config.Logger = logging.NewNoOpLogger()
	}
	if config.Metrics == nil {
		config.Metrics = metrics.NoOpCollector{}
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Registry{
		accounts: make(map[int]*Account),
		holders:  holders,
		config:   config,
	}
}

// Open creates an account for the holder identified by rawHolderID
// (normalized before matching). Fails with ErrHolderNotFound if no such
// holder exists; the account-number sequence is unaffected by failed opens.
//
// The new account gets the next sequential number (1 when the registry is
// empty, else max existing + 1), the fixed agency code, zero balance, an
// empty log and a zeroed withdrawal counter.
func (r *Registry) Open(rawHolderID string) (*Account, error) {
	id := money.Digits(rawHolderID)
	holder, ok := r.holders.Lookup(id)
	if !ok {
		r.config.Metrics.RecordAccountOpened(ClassifyError(ErrHolderNotFound))
		return nil, fmt.Errorf("%w: %q", ErrHolderNotFound, rawHolderID)
	}

	r.mu.Lock()
	next := 1
	for n := range r.accounts {
		if n >= next {
			next = n + 1
		}
	}
	a := &Account{
		Agency:   r.config.Agency,
		Number:   next,
		HolderID: holder.ID,
		now:      r.config.Now,
		logger:   r.config.Logger,
		metrics:  r.config.Metrics,
	}
	r.accounts[next] = a
	r.mu.Unlock()

	r.config.Logger.Info("account opened",
		zap.Int("account", a.Number),
		zap.String("agency", a.Agency),
		zap.String("holder", a.HolderID))
	r.config.Metrics.RecordAccountOpened(metrics.OutcomeOK)
	return a, nil
}

// Get returns the account with the given number, or ErrAccountNotFound.
func (r *Registry) Get(number int) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %06d", ErrAccountNotFound, number)
	}
	return a, nil
}

// List returns all accounts sorted by account number ascending.
// Display use only; no mutation.
func (r *Registry) List() []*Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Len returns the number of open accounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}
