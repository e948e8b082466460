package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a QuoteProvider backed by a quote REST endpoint. A lookup
// hits GET {base}/v1/quote/{symbol} and expects a JSON body with
// symbol, name, and price fields.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiQuote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

func (c *Client) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = Normalize(symbol)

	endpoint := fmt.Sprintf("%s/v1/quote/%s", c.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("build quote request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("quote request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Quote{}, fmt.Errorf("lookup %q: %w", symbol, ErrUnknownSymbol)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Quote{}, fmt.Errorf("quote request for %q failed with status %d: %s",
			symbol, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var q apiQuote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return Quote{}, fmt.Errorf("decode quote for %q: %w", symbol, err)
	}
	if !q.Price.IsPositive() {
		return Quote{}, fmt.Errorf("quote for %q has non-positive price %s", symbol, q.Price)
	}

	// Trust our symbol over the server's echo if the server omits it.
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return Quote{Symbol: Normalize(q.Symbol), Name: q.Name, Price: q.Price}, nil
}
