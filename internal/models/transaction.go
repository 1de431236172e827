package models

import (
	"github.com/shopspring/decimal"
)

// ActionType is the kind of ledger event
type ActionType string

const (
	ActionBuy  ActionType = "BUY"
	ActionSell ActionType = "SELL"
)

// Valid reports whether the action type is BUY or SELL
func (a ActionType) Valid() bool {
	return a == ActionBuy || a == ActionSell
}

// Transaction is an immutable record of one BUY or SELL event. Records are
// append-only; nothing in the application mutates or deletes them.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	AssetSymbol string          `json:"assetSymbol"`
	ActionType  ActionType      `json:"actionType"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Date        Date            `json:"date"`
}

// TransactionFilter is the exact-match filter set supported by the history
// query. Zero values mean "not filtered".
type TransactionFilter struct {
	UserID      int64
	AssetSymbol string
	ActionType  ActionType
	Date        *Date
}
