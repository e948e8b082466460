// Package position derives per-symbol share counts from the ledger.
// Positions are never stored; they are always a pure function of the
// trade history.
package position

import (
	"context"

	"github.com/stockfolio/stockfolio/ledger"
)

// Net groups records by symbol and sums the signed share quantities.
// The sum is order-independent. Symbols whose net count is zero are
// retained so callers can tell "was held, now empty" apart from
// "never traded".
func Net(records []ledger.TradeRecord) map[string]int64 {
	net := make(map[string]int64, len(records))
	for _, rec := range records {
		net[rec.Symbol] += rec.Shares
	}
	return net
}

// Held returns a copy of net without zero-count symbols. A symbol at
// zero is not currently held and never appears in user-facing views.
func Held(net map[string]int64) map[string]int64 {
	held := make(map[string]int64, len(net))
	for sym, n := range net {
		if n == 0 {
			continue
		}
		held[sym] = n
	}
	return held
}

// Aggregator re-derives positions from the store on every call.
// Nothing is cached, so results always reflect the latest commit.
type Aggregator struct {
	Store ledger.Store
}

// For returns the net share count per symbol, zero counts included.
func (a Aggregator) For(ctx context.Context, accountID string) (map[string]int64, error) {
	recs, err := a.Store.Trades(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return Net(recs), nil
}

// HeldFor returns only the symbols currently held.
func (a Aggregator) HeldFor(ctx context.Context, accountID string) (map[string]int64, error) {
	net, err := a.For(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return Held(net), nil
}
