package models

import (
	"github.com/shopspring/decimal"
)

// AssetType classifies a tracked asset
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeETF    AssetType = "etf"
	AssetTypeCrypto AssetType = "crypto"
	AssetTypeBond   AssetType = "bond"
)

// Valid reports whether the asset type is one of the allowed values
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeStock, AssetTypeETF, AssetTypeCrypto, AssetTypeBond:
		return true
	}
	return false
}

// Portfolio holds a user's positions plus a cached total value
type Portfolio struct {
	ID          int64           `json:"id"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	LastUpdated Date            `json:"lastUpdated"`
}

// Position is one open lot: a quantity of an asset held at a weighted-average
// buy price. At most one position exists per (portfolio, symbol, type).
type Position struct {
	ID          int64           `json:"id"`
	PortfolioID int64           `json:"-"`
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Type        AssetType       `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgBuyPrice decimal.Decimal `json:"avgBuyPrice"`
}

// PortfolioWithPositions is the fully materialized aggregate: the portfolio
// document with its position references resolved.
type PortfolioWithPositions struct {
	Portfolio Portfolio  `json:"portfolio"`
	Positions []Position `json:"assets"`
}
