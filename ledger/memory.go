package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Memory is a map-backed Store for tests and offline runs. It honors
// the same Commit atomicity contract as SQLite: validation happens
// before any mutation.
type Memory struct {
	mu     sync.Mutex
	cash   map[string]decimal.Decimal
	trades map[string][]TradeRecord
}

func NewMemory() *Memory {
	return &Memory{
		cash:   make(map[string]decimal.Decimal),
		trades: make(map[string][]TradeRecord),
	}
}

func (m *Memory) CreateAccount(ctx context.Context, id string, cash decimal.Decimal) error {
	if cash.IsNegative() {
		return ErrNegativeCash
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cash[id]; ok {
		return fmt.Errorf("account %q: %w", id, ErrAccountExists)
	}
	m.cash[id] = cash
	return nil
}

func (m *Memory) Account(ctx context.Context, id string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cash, ok := m.cash[id]
	if !ok {
		return Account{}, fmt.Errorf("account %q: %w", id, ErrAccountNotFound)
	}
	return Account{ID: id, Cash: cash}, nil
}

func (m *Memory) Trades(ctx context.Context, accountID string) ([]TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cash[accountID]; !ok {
		return nil, fmt.Errorf("account %q: %w", accountID, ErrAccountNotFound)
	}

	recs := make([]TradeRecord, len(m.trades[accountID]))
	copy(recs, m.trades[accountID])
	return recs, nil
}

func (m *Memory) Commit(ctx context.Context, rec TradeRecord, cashDelta decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cash, ok := m.cash[rec.AccountID]
	if !ok {
		return decimal.Zero, fmt.Errorf("account %q: %w", rec.AccountID, ErrAccountNotFound)
	}

	newCash := cash.Add(cashDelta)
	if newCash.IsNegative() {
		return decimal.Zero, ErrNegativeCash
	}

	m.trades[rec.AccountID] = append(m.trades[rec.AccountID], rec)
	m.cash[rec.AccountID] = newCash
	return newCash, nil
}

func (m *Memory) Close() error {
	return nil
}
