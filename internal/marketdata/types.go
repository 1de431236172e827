package marketdata

import "github.com/shopspring/decimal"

// StockQuote is one element of the FMP quote response array
type StockQuote struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

// TickerPrice is the Binance ticker/price response. Price arrives as a
// decimal string.
type TickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// Quote is the normalized result handed to callers
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}
