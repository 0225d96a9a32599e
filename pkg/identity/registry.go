// Package identity stores account holders keyed by their normalized
// identifier and enforces identifier uniqueness. It has no knowledge of
// accounts or balances; the ledger references holders by identifier only.
package identity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bankledger/pkg/money"
)

// BirthDateLayout is the textual format registration accepts, DD/MM/YYYY.
const BirthDateLayout = "02/01/2006"

var (
	// ErrInvalidIdentifier is returned when an identifier has no digits left
	// after normalization.
	ErrInvalidIdentifier = errors.New("identity: identifier must contain at least one digit")

	// ErrDuplicateHolder is returned when the normalized identifier is
	// already registered.
	ErrDuplicateHolder = errors.New("identity: holder already registered for this identifier")

	// ErrInvalidBirthDate is returned when the birth date does not parse as
	// DD/MM/YYYY.
	ErrInvalidBirthDate = errors.New("identity: birth date must be a valid DD/MM/YYYY date")
)

// Holder is a registered individual eligible to own accounts.
// ID holds the normalized, digits-only identifier.
type Holder struct {
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	ID        string    `json:"id"`
	Address   string    `json:"address"`
}

// Registry is an in-memory holder store. The mutex guards the
// check-then-insert sequence in Register so two concurrent registrations of
// the same identifier cannot both succeed.
type Registry struct {
	mu      sync.Mutex
	holders map[string]*Holder
}

// NewRegistry creates an empty holder registry.
func NewRegistry() *Registry {
	return &Registry{holders: make(map[string]*Holder)}
}

// Register normalizes rawID to its digits, validates the birth date and
// stores a new holder. Name and address are stored trimmed.
//
// Failure modes:
// - ErrInvalidIdentifier if no digits remain after normalization
// - ErrDuplicateHolder if the identifier is already registered
// - ErrInvalidBirthDate if birthDate does not parse as DD/MM/YYYY
//
// On failure the registry is left unchanged. The returned holder is a copy;
// callers cannot mutate registry state through it.
func (r *Registry) Register(name, birthDate, rawID, address string) (*Holder, error) {
	id := money.Digits(rawID)
	if id == "" {
		return nil, ErrInvalidIdentifier
	}

	born, err := time.Parse(BirthDateLayout, strings.TrimSpace(birthDate))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBirthDate, birthDate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.holders[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateHolder, id)
	}

	h := &Holder{
		Name:      strings.TrimSpace(name),
		BirthDate: born,
		ID:        id,
		Address:   strings.TrimSpace(address),
	}
	r.holders[id] = h

	cp := *h
	return &cp, nil
}

// Lookup returns the holder for rawID (normalized before matching) and
// whether it exists. Absence is not an error; callers often only need to
// test existence or fetch a name for display.
func (r *Registry) Lookup(rawID string) (*Holder, bool) {
	id := money.Digits(rawID)

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.holders[id]
	if !ok {
		return nil, false
	}
	cp := *h
	return &cp, true
}

// List returns all holders sorted by identifier. Display use only.
func (r *Registry) List() []*Holder {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Holder, 0, len(r.holders))
	for _, h := range r.holders {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered holders.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holders)
}
