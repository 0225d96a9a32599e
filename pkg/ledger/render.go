package ledger

import (
	"fmt"
	"strings"

	"bankledger/pkg/identity"
	"bankledger/pkg/money"
)

// FormatNumber renders an account number zero-padded to 6 digits, the way
// account numbers are displayed everywhere. Stored numbers stay plain ints.
func FormatNumber(n int) string {
	return fmt.Sprintf("%06d", n)
}

// RenderAccountList renders one line per account with the holder's name
// resolved through the identity registry, or a placeholder when the
// registry holds no accounts.
func RenderAccountList(accounts []*Account, holders *identity.Registry) string {
	if len(accounts) == 0 {
		return "\n(no accounts registered)\n"
	}
	lines := []string{"", "======= REGISTERED ACCOUNTS ======="}
	for _, a := range accounts {
		name := "(unknown)"
		if h, ok := holders.Lookup(a.HolderID); ok {
			name = h.Name
		}
		lines = append(lines, fmt.Sprintf("Agency: %s | Account: %s | Holder: %s (ID %s) | Balance: %s",
			a.Agency, FormatNumber(a.Number), name, a.HolderID, money.Format(a.Balance())))
	}
	lines = append(lines, "===================================", "")
	return strings.Join(lines, "\n")
}
