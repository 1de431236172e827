package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStockQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"symbol":"AAPL","name":"Apple Inc.","price":180.55}]`))
	}))
	defer server.Close()

	client := NewClientWithBaseURLs("test-key", server.URL, server.URL)
	quote, err := client.GetStockQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "Apple Inc.", quote.Name)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("180.55")), "got %s", quote.Price)
}

func TestGetStockQuoteFallsBackToSymbolName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"symbol":"VUSA.L","price":92.1}]`))
	}))
	defer server.Close()

	client := NewClientWithBaseURLs("test-key", server.URL, server.URL)
	quote, err := client.GetStockQuote(context.Background(), "VUSA.L")
	require.NoError(t, err)
	assert.Equal(t, "VUSA.L", quote.Name)
}

func TestGetStockQuoteEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClientWithBaseURLs("test-key", server.URL, server.URL)
	_, err := client.GetStockQuote(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no quote returned")
}

func TestGetStockQuoteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURLs("test-key", server.URL, server.URL)
	_, err := client.GetStockQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGetCryptoQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"64123.45000000"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURLs("", server.URL, server.URL)
	quote, err := client.GetCryptoQuote(context.Background(), "BTC")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", quote.Symbol)
	assert.Equal(t, "BTC", quote.Name)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("64123.45")), "got %s", quote.Price)
}

func TestGetCryptoQuoteInvalidPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"not-a-number"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURLs("", server.URL, server.URL)
	_, err := client.GetCryptoQuote(context.Background(), "BTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ticker price")
}

func TestQuoteRequestHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClientWithBaseURLs("test-key", server.URL, server.URL)
	_, err := client.GetStockQuote(ctx, "AAPL")
	require.Error(t, err)
}
