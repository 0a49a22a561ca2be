package account

import (
	"strings"
	"time"
)

type Account struct {
	ID      int64
	Name    string
	Balance float64
	// Currency is an ISO code such as "ETB" or "USD". Rows created before the
	// column existed carry "".
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsForeignCurrency reports whether the account holds a non-birr balance.
// When no explicit currency is set, fall back to matching "usd" in the
// account name, which is how older records marked dollar wallets.
func (a Account) IsForeignCurrency() bool {
	if a.Currency != "" {
		return !strings.EqualFold(a.Currency, "ETB")
	}
	return strings.Contains(strings.ToLower(a.Name), "usd")
}
