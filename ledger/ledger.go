// Package ledger is the source of truth for account state: an
// append-only trade history plus a per-account cash balance. Holdings
// are never stored; they are derived from the history.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a registered user's cash balance. Cash is a
// non-negative two-decimal amount and is only ever changed through
// Store.Commit.
type Account struct {
	ID   string
	Cash decimal.Decimal
}

// TradeRecord is one immutable entry in the trade history. Shares is
// signed: positive for a buy, negative for a sell. Price is the unit
// price at execution time, frozen into the record. Committed records
// are never updated or deleted.
type TradeRecord struct {
	ID        string
	AccountID string
	Symbol    string
	Price     decimal.Decimal
	Shares    int64
	Time      time.Time
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrNegativeCash    = errors.New("cash balance would go negative")
)

// Store persists accounts and their trade history.
//
// Commit is the only mutation after account creation: it appends one
// record and applies one cash adjustment as a single atomic unit.
// Either both effects are durable or neither is. Commit also refuses
// any adjustment that would leave cash negative; callers validate
// first, this is the store's backstop.
type Store interface {
	CreateAccount(ctx context.Context, id string, cash decimal.Decimal) error
	Account(ctx context.Context, id string) (Account, error)

	// Trades returns every record for the account. Order is insertion
	// order; aggregation does not depend on it.
	Trades(ctx context.Context, accountID string) ([]TradeRecord, error)

	// Commit appends rec and adds cashDelta to the account's balance,
	// returning the new balance.
	Commit(ctx context.Context, rec TradeRecord, cashDelta decimal.Decimal) (decimal.Decimal, error)

	Close() error
}
