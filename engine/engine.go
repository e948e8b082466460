// Package engine validates and atomically commits trades against the
// ledger. It is the only writer of account state.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/stockfolio/stockfolio/ledger"
	"github.com/stockfolio/stockfolio/market"
	"github.com/stockfolio/stockfolio/pkg/id"
	"github.com/stockfolio/stockfolio/position"
)

var (
	ErrInvalidQuantity    = errors.New("share count must be a positive integer")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSymbolNotOwned     = errors.New("symbol not owned")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Trade is the outcome of a committed buy or sell.
type Trade struct {
	Record ledger.TradeRecord
	Cash   decimal.Decimal // balance after the commit
}

// Engine serializes all commits for one account behind a per-account
// lock (see locks.go) while letting distinct accounts trade in
// parallel. A failed operation leaves the store untouched.
type Engine struct {
	store  ledger.Store
	quotes market.QuoteProvider
	agg    position.Aggregator
	log    *logrus.Logger
	now    func() time.Time
	seed   decimal.Decimal

	locks accountLocks
}

type Option func(*Engine)

// WithLogger routes per-trade logs to log. The default logger discards
// everything.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock replaces the execution-time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSeedCash sets the starting balance Register grants new accounts.
func WithSeedCash(cash decimal.Decimal) Option {
	return func(e *Engine) { e.seed = cash }
}

func New(store ledger.Store, quotes market.QuoteProvider, opts ...Option) *Engine {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	e := &Engine{
		store:  store,
		quotes: quotes,
		agg:    position.Aggregator{Store: store},
		log:    silent,
		now:    time.Now,
		seed:   decimal.NewFromInt(10000),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register creates accountID with the engine's seed cash balance.
func (e *Engine) Register(ctx context.Context, accountID string) (ledger.Account, error) {
	if err := e.store.CreateAccount(ctx, accountID, e.seed); err != nil {
		return ledger.Account{}, err
	}

	e.log.WithFields(logrus.Fields{
		"account": accountID,
		"cash":    e.seed.StringFixed(2),
	}).Info("account registered")

	return ledger.Account{ID: accountID, Cash: e.seed}, nil
}

// Buy purchases shares of symbol at its current quoted price. The
// order of checks is fixed: quantity, then symbol resolution, then
// funds. Cash exactly equal to the cost is sufficient.
func (e *Engine) Buy(ctx context.Context, accountID, symbol string, shares int64) (Trade, error) {
	if shares <= 0 {
		return Trade{}, ErrInvalidQuantity
	}

	q, err := e.quotes.Lookup(ctx, symbol)
	if err != nil {
		return Trade{}, err
	}
	cost := q.Price.Mul(decimal.NewFromInt(shares))

	unlock := e.locks.lock(accountID)
	defer unlock()

	acct, err := e.store.Account(ctx, accountID)
	if err != nil {
		return Trade{}, err
	}
	if acct.Cash.LessThan(cost) {
		return Trade{}, fmt.Errorf("buy %d %s costs %s with %s available: %w",
			shares, q.Symbol, cost.StringFixed(2), acct.Cash.StringFixed(2), ErrInsufficientFunds)
	}

	rec := ledger.TradeRecord{
		ID:        id.New(),
		AccountID: accountID,
		Symbol:    q.Symbol,
		Price:     q.Price,
		Shares:    shares,
		Time:      e.now(),
	}
	cash, err := e.store.Commit(ctx, rec, cost.Neg())
	if err != nil {
		return Trade{}, err
	}

	e.log.WithFields(logrus.Fields{
		"account": accountID,
		"symbol":  q.Symbol,
		"shares":  shares,
		"price":   q.Price.StringFixed(2),
		"cash":    cash.StringFixed(2),
	}).Info("buy committed")

	return Trade{Record: rec, Cash: cash}, nil
}

// Sell disposes of shares of symbol at its current quoted price. The
// holdings check happens under the account lock so two concurrent
// sells can never both validate against the same pre-trade count.
func (e *Engine) Sell(ctx context.Context, accountID, symbol string, shares int64) (Trade, error) {
	if shares <= 0 {
		return Trade{}, ErrInvalidQuantity
	}
	symbol = market.Normalize(symbol)

	unlock := e.locks.lock(accountID)
	defer unlock()

	net, err := e.agg.For(ctx, accountID)
	if err != nil {
		return Trade{}, err
	}
	held := net[symbol]
	if held == 0 {
		return Trade{}, fmt.Errorf("sell %s: %w", symbol, ErrSymbolNotOwned)
	}
	if shares > held {
		return Trade{}, fmt.Errorf("sell %d %s with %d held: %w",
			shares, symbol, held, ErrInsufficientShares)
	}

	q, err := e.quotes.Lookup(ctx, symbol)
	if err != nil {
		return Trade{}, err
	}
	proceeds := q.Price.Mul(decimal.NewFromInt(shares))

	rec := ledger.TradeRecord{
		ID:        id.New(),
		AccountID: accountID,
		Symbol:    symbol,
		Price:     q.Price,
		Shares:    -shares,
		Time:      e.now(),
	}
	cash, err := e.store.Commit(ctx, rec, proceeds)
	if err != nil {
		return Trade{}, err
	}

	e.log.WithFields(logrus.Fields{
		"account": accountID,
		"symbol":  symbol,
		"shares":  shares,
		"price":   q.Price.StringFixed(2),
		"cash":    cash.StringFixed(2),
	}).Info("sell committed")

	return Trade{Record: rec, Cash: cash}, nil
}
