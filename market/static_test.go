package market

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticLookupNormalizesSymbol(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	s.Set(Quote{Symbol: "aapl", Name: "Apple Inc.", Price: decimal.RequireFromString("150.00")})

	for _, sym := range []string{"AAPL", "aapl", " AaPl "} {
		q, err := s.Lookup(context.Background(), sym)
		require.NoError(t, err)
		assert.Equal(t, "AAPL", q.Symbol)
		assert.Equal(t, "Apple Inc.", q.Name)
	}
}

func TestStaticLookupUnknown(t *testing.T) {
	t.Parallel()

	s := NewStatic()

	_, err := s.Lookup(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestStaticDelist(t *testing.T) {
	t.Parallel()

	s := NewStatic()
	s.Set(Quote{Symbol: "AAPL", Name: "Apple Inc.", Price: decimal.RequireFromString("150.00")})
	s.Delist("aapl")

	_, err := s.Lookup(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}
