package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLite is the durable Store implementation.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) CreateAccount(ctx context.Context, id string, cash decimal.Decimal) error {
	if cash.IsNegative() {
		return ErrNegativeCash
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO accounts (id, cash) VALUES (?, ?)`,
		id, cash.StringFixed(2),
	)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("account %q: %w", id, ErrAccountExists)
	}
	return nil
}

func (s *SQLite) Account(ctx context.Context, id string) (Account, error) {
	var cashStr string
	err := s.db.QueryRowContext(ctx,
		`SELECT cash FROM accounts WHERE id = ?`, id).Scan(&cashStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, fmt.Errorf("account %q: %w", id, ErrAccountNotFound)
	}
	if err != nil {
		return Account{}, fmt.Errorf("read account: %w", err)
	}

	cash, err := decimal.NewFromString(cashStr)
	if err != nil {
		return Account{}, fmt.Errorf("corrupt cash for account %q: %w", id, err)
	}
	return Account{ID: id, Cash: cash}, nil
}

func (s *SQLite) Trades(ctx context.Context, accountID string) ([]TradeRecord, error) {
	if _, err := s.Account(ctx, accountID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT trade_id, account_id, symbol, price, shares, transacted
		FROM trades WHERE account_id = ?`, accountID)
	if err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	defer rows.Close()

	var recs []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		var priceStr string
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.Symbol, &priceStr, &rec.Shares, &rec.Time); err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		rec.Price, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt price in trade %q: %w", rec.ID, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	return recs, nil
}

// Commit runs the append and the cash adjustment in one transaction.
// Any failure, including the ErrNegativeCash guard, rolls both back.
func (s *SQLite) Commit(ctx context.Context, rec TradeRecord, cashDelta decimal.Decimal) (decimal.Decimal, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback()

	var cashStr string
	err = tx.QueryRowContext(ctx,
		`SELECT cash FROM accounts WHERE id = ?`, rec.AccountID).Scan(&cashStr)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("account %q: %w", rec.AccountID, ErrAccountNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read cash: %w", err)
	}
	cash, err := decimal.NewFromString(cashStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt cash for account %q: %w", rec.AccountID, err)
	}

	newCash := cash.Add(cashDelta)
	if newCash.IsNegative() {
		return decimal.Zero, ErrNegativeCash
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO trades (trade_id, account_id, symbol, price, shares, transacted)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AccountID, rec.Symbol, rec.Price.String(), rec.Shares, rec.Time,
	); err != nil {
		return decimal.Zero, fmt.Errorf("append trade: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET cash = ? WHERE id = ?`,
		newCash.StringFixed(2), rec.AccountID,
	); err != nil {
		return decimal.Zero, fmt.Errorf("adjust cash: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("commit trade: %w", err)
	}
	return newCash, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
