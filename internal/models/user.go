package models

// User is an account holder. Each user owns exactly one portfolio and one
// settings document; the watchlist and inbox messages live inline.
type User struct {
	ID               int64    `json:"id"`
	UserName         string   `json:"userName"`
	Mail             string   `json:"mail"`
	PasswordHash     string   `json:"-"`
	PortfolioID      int64    `json:"portfolio"`
	SettingsID       int64    `json:"settings"`
	Created          Date     `json:"createdAt"`
	WatchlistSymbols []string `json:"watchlistSymbols"`
	Messages         []string `json:"messages"`
}

// Currency is a settings-level display currency
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyBTC Currency = "BTC"
)

// Valid reports whether the currency is one of the allowed values
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY, CurrencyBTC:
		return true
	}
	return false
}

// UserSettings holds per-user preferences
type UserSettings struct {
	ID            int64    `json:"id"`
	Currency      Currency `json:"currency"`
	Notifications bool     `json:"notifications"`
}
