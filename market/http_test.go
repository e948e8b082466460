package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLookupSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/quote/AAPL", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"symbol": "AAPL",
			"name":   "Apple Inc.",
			"price":  "150.25",
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "test-token")

	q, err := c.Lookup(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc.", q.Name)
	assert.Equal(t, "150.25", q.Price.StringFixed(2))
}

func TestClientLookupNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")

	_, err := c.Lookup(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestClientLookupServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quote backend down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")

	_, err := c.Lookup(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownSymbol)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientLookupRejectsNonPositivePrice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"symbol": "AAPL", "name": "Apple Inc.", "price": "0"})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "")

	_, err := c.Lookup(context.Background(), "AAPL")
	assert.Error(t, err)
}
