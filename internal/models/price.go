package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetPrice is the latest known price for a (symbol, type) pair. Rows are
// upserted by the refresh job and read-only everywhere else.
type AssetPrice struct {
	Symbol    string          `json:"symbol"`
	Type      AssetType       `json:"type"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"timestamp"`
}
