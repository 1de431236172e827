package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SignInRequest represents the request body for registration
type SignInRequest struct {
	UserName string   `json:"userName" binding:"required"`
	Mail     string   `json:"mail" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Currency Currency `json:"currency"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	ID       int64  `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// BuyRequest represents the request body for POST /me/add
type BuyRequest struct {
	Symbol      string          `json:"symbol" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	AvgBuyPrice decimal.Decimal `json:"avgBuyPrice" binding:"required"`
	Type        AssetType       `json:"type" binding:"required"`
}

// SellRequest represents the request body for POST /me/sell
type SellRequest struct {
	Symbol    string          `json:"symbol" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	SellPrice decimal.Decimal `json:"sellPrice" binding:"required"`
	Type      AssetType       `json:"type" binding:"required"`
}

// TradeResponse confirms a buy or sell
type TradeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Holding is one row of the GET /me/assets view: an aggregated lot joined
// against its current snapshot. Price serializes as a number, or the string
// "NoData" when no snapshot exists for the symbol.
type Holding struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Type        AssetType       `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	AvgBuyPrice decimal.Decimal `json:"avgBuyPrice"`
	Price       *decimal.Decimal
}

func (h Holding) MarshalJSON() ([]byte, error) {
	type plain struct {
		Symbol      string          `json:"symbol"`
		Name        string          `json:"name"`
		Type        AssetType       `json:"type"`
		Quantity    decimal.Decimal `json:"quantity"`
		AvgBuyPrice decimal.Decimal `json:"avgBuyPrice"`
		Price       json.RawMessage `json:"price"`
	}
	price := json.RawMessage(`"NoData"`)
	if h.Price != nil {
		price = json.RawMessage(h.Price.String())
	}
	return json.Marshal(plain{
		Symbol:      h.Symbol,
		Name:        h.Name,
		Type:        h.Type,
		Quantity:    h.Quantity,
		AvgBuyPrice: h.AvgBuyPrice,
		Price:       price,
	})
}

// HoldingsResponse is the body of GET /me/assets
type HoldingsResponse struct {
	Assets []Holding `json:"assets"`
}

// PatrimonyResponse is the body of GET /me/patrimonio
type PatrimonyResponse struct {
	Patrimonio decimal.Decimal `json:"patrimonio"`
}

// WatchlistItem is one joined row of the watchlist view
type WatchlistItem struct {
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Type   AssetType       `json:"type"`
	Price  decimal.Decimal `json:"price"`
}

// WatchlistResponse is the body of GET /myWatchlist
type WatchlistResponse struct {
	SymbolValues []WatchlistItem `json:"symbolValues"`
}

// SymbolRequest carries the symbol for watchlist add/remove
type SymbolRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// AddSymbolResponse mirrors the historical response key, typo included; the
// web client depends on it.
type AddSymbolResponse struct {
	SymbolAdded bool `json:"symbolAddedd"`
}

// RemoveSymbolResponse is the body of POST /removeSymbol
type RemoveSymbolResponse struct {
	SymbolRemoved bool `json:"symbolRemoved"`
}

// TransactionsResponse is the body of transaction queries
type TransactionsResponse struct {
	Transaction []Transaction `json:"transaction"`
}

// CreateTransactionRequest represents the request body for POST /transactions
type CreateTransactionRequest struct {
	UserID      int64           `json:"userId" binding:"required"`
	AssetSymbol string          `json:"assetSymbol" binding:"required"`
	ActionType  ActionType      `json:"actionType" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Date        Date            `json:"date" binding:"required"`
}

// UpdateUserRequest represents the request body for PUT /users/:id
type UpdateUserRequest struct {
	UserName string `json:"userName"`
	Mail     string `json:"mail"`
}

// UpdateSettingsRequest represents the request body for PATCH /me/settings
type UpdateSettingsRequest struct {
	Currency      *Currency `json:"currency"`
	Notifications *bool     `json:"notifications"`
}

// RefreshResult reports one symbol's outcome of a price refresh run
type RefreshResult struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
}

// RefreshResponse is the body of POST /prices
type RefreshResponse struct {
	Message string          `json:"message"`
	Results []RefreshResult `json:"results"`
}

// TopAssetsResponse is the body of GET /all-data/top-assets
type TopAssetsResponse struct {
	Stocks []AssetPrice `json:"stocks"`
}

// TopCryptoResponse is the body of GET /all-data/top-crypto
type TopCryptoResponse struct {
	Cryptos []AssetPrice `json:"cryptos"`
}
