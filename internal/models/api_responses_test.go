package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldingMarshalsPriceAsNumber(t *testing.T) {
	price := decimal.RequireFromString("180.5")
	h := Holding{
		Symbol:      "AAPL",
		Name:        "Apple Inc.",
		Type:        AssetTypeStock,
		Quantity:    decimal.NewFromInt(10),
		AvgBuyPrice: decimal.NewFromInt(150),
		Price:       &price,
	}

	raw, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":180.5`)
}

func TestHoldingMarshalsMissingPriceAsNoData(t *testing.T) {
	h := Holding{
		Symbol:      "DELISTED",
		Type:        AssetTypeStock,
		Quantity:    decimal.NewFromInt(1),
		AvgBuyPrice: decimal.NewFromInt(9),
	}

	raw, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":"NoData"`)
}
