package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Quotes come from two upstreams: Financial Modeling Prep for stocks and
// ETFs, Binance for crypto pairs. Both are free-tier JSON APIs.
const (
	defaultStockBaseURL  = "https://financialmodelingprep.com/stable/quote"
	defaultCryptoBaseURL = "https://api.binance.com/api/v3/ticker/price"
)

// Client is an HTTP client for the external quote services
type Client struct {
	apiKey        string
	stockBaseURL  string
	cryptoBaseURL string
	httpClient    *http.Client
}

// NewClient creates a new quote client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:        apiKey,
		stockBaseURL:  defaultStockBaseURL,
		cryptoBaseURL: defaultCryptoBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURLs creates a client against custom endpoints (for testing)
func NewClientWithBaseURLs(apiKey, stockBaseURL, cryptoBaseURL string) *Client {
	c := NewClient(apiKey)
	c.stockBaseURL = stockBaseURL
	c.cryptoBaseURL = cryptoBaseURL
	return c
}

// GetStockQuote fetches the current quote for a stock or ETF symbol
func (c *Client) GetStockQuote(ctx context.Context, symbol string) (*Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	body, err := c.doRequest(ctx, c.stockBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var quotes []StockQuote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote response: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}

	q := quotes[0]
	name := q.Name
	if name == "" {
		name = symbol
	}
	return &Quote{
		Symbol: q.Symbol,
		Name:   name,
		Price:  decimal.NewFromFloat(q.Price),
	}, nil
}

// GetCryptoQuote fetches the current USDT price for a crypto base symbol.
// The upstream pair symbol is <symbol>USDT.
func (c *Client) GetCryptoQuote(ctx context.Context, symbol string) (*Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol+"USDT")

	body, err := c.doRequest(ctx, c.cryptoBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var ticker TickerPrice
	if err := json.Unmarshal(body, &ticker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticker response: %w", err)
	}

	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid ticker price %q: %w", ticker.Price, err)
	}
	return &Quote{
		Symbol: ticker.Symbol,
		Name:   symbol,
		Price:  price,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from quote service", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
