// Package market resolves ticker symbols to display names and current
// prices. Providers make no caching guarantees; every lookup may
// return a fresh price.
package market

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is the current state of one tradeable symbol.
type Quote struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}

// ErrUnknownSymbol means the provider has no listing for the symbol.
var ErrUnknownSymbol = errors.New("unknown symbol")

type QuoteProvider interface {
	Lookup(ctx context.Context, symbol string) (Quote, error)
}

// Normalize returns the canonical uppercase form of a symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
