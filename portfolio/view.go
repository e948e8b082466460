// Package portfolio builds valuation snapshots: current holdings
// priced at fresh quotes, plus cash and total net worth.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stockfolio/stockfolio/ledger"
	"github.com/stockfolio/stockfolio/market"
	"github.com/stockfolio/stockfolio/position"
)

// ErrStaleSymbol means a held symbol can no longer be priced. The
// build fails outright instead of omitting the line, since a missing
// line would misstate net worth.
var ErrStaleSymbol = errors.New("held symbol is no longer quotable")

// Line values one held symbol at its current price.
type Line struct {
	Symbol      string
	Name        string
	Shares      int64
	Price       decimal.Decimal
	MarketValue decimal.Decimal
}

type View struct {
	Lines    []Line
	Cash     decimal.Decimal
	NetWorth decimal.Decimal
}

type Builder struct {
	store  ledger.Store
	quotes market.QuoteProvider
	agg    position.Aggregator
}

func NewBuilder(store ledger.Store, quotes market.QuoteProvider) *Builder {
	return &Builder{
		store:  store,
		quotes: quotes,
		agg:    position.Aggregator{Store: store},
	}
}

// Build prices every held symbol and totals the account. Lines are
// sorted by symbol; zero-count symbols never appear. Reads are not
// serialized against concurrent trades, so a snapshot may be a moment
// stale; it is for display only, never for validation.
func (b *Builder) Build(ctx context.Context, accountID string) (View, error) {
	acct, err := b.store.Account(ctx, accountID)
	if err != nil {
		return View{}, err
	}
	held, err := b.agg.HeldFor(ctx, accountID)
	if err != nil {
		return View{}, err
	}

	symbols := make([]string, 0, len(held))
	for sym := range held {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	view := View{Cash: acct.Cash, NetWorth: acct.Cash}
	for _, sym := range symbols {
		q, err := b.quotes.Lookup(ctx, sym)
		if errors.Is(err, market.ErrUnknownSymbol) {
			return View{}, fmt.Errorf("%s: %w", sym, ErrStaleSymbol)
		}
		if err != nil {
			return View{}, err
		}

		value := q.Price.Mul(decimal.NewFromInt(held[sym])).Round(2)
		view.Lines = append(view.Lines, Line{
			Symbol:      sym,
			Name:        q.Name,
			Shares:      held[sym],
			Price:       q.Price,
			MarketValue: value,
		})
		view.NetWorth = view.NetWorth.Add(value)
	}
	return view, nil
}

// History returns the account's full trade history in insertion order.
func (b *Builder) History(ctx context.Context, accountID string) ([]ledger.TradeRecord, error) {
	return b.store.Trades(ctx, accountID)
}
