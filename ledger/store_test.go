package ledger

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both Store implementations must honor the same contract.
func eachStore(t *testing.T, run func(t *testing.T, store Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		run(t, NewMemory())
	})

	t.Run("sqlite", func(t *testing.T) {
		t.Parallel()
		s, err := NewSQLite(filepath.Join(t.TempDir(), "store.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		run(t, s)
	})
}

func TestStoreCreateAccount(t *testing.T) {
	t.Parallel()

	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		require.NoError(t, store.CreateAccount(ctx, "acct-1", decimal.RequireFromString("10000.00")))

		acct, err := store.Account(ctx, "acct-1")
		require.NoError(t, err)
		assert.Equal(t, "acct-1", acct.ID)
		assert.Equal(t, "10000.00", acct.Cash.StringFixed(2))

		err = store.CreateAccount(ctx, "acct-1", decimal.Zero)
		assert.ErrorIs(t, err, ErrAccountExists)

		err = store.CreateAccount(ctx, "acct-2", decimal.RequireFromString("-1"))
		assert.ErrorIs(t, err, ErrNegativeCash)
	})
}

func TestStoreAccountNotFound(t *testing.T) {
	t.Parallel()

	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()

		_, err := store.Account(ctx, "ghost")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		_, err = store.Trades(ctx, "ghost")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		_, err = store.Commit(ctx, TradeRecord{ID: "T1", AccountID: "ghost"}, decimal.Zero)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestStoreTradesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		require.NoError(t, store.CreateAccount(ctx, "acct-1", decimal.RequireFromString("10000.00")))

		for i, sym := range []string{"AAPL", "MSFT", "AAPL"} {
			_, err := store.Commit(ctx, TradeRecord{
				ID:        fmt.Sprintf("T%d", i+1),
				AccountID: "acct-1",
				Symbol:    sym,
				Price:     decimal.RequireFromString("10.00"),
				Shares:    1,
				Time:      time.Now().UTC(),
			}, decimal.RequireFromString("-10.00"))
			require.NoError(t, err)
		}

		recs, err := store.Trades(ctx, "acct-1")
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "AAPL", recs[0].Symbol)
		assert.Equal(t, "MSFT", recs[1].Symbol)
		assert.Equal(t, "AAPL", recs[2].Symbol)

		acct, err := store.Account(ctx, "acct-1")
		require.NoError(t, err)
		assert.Equal(t, "9970.00", acct.Cash.StringFixed(2))
	})
}

func TestStoreCommitExactZeroCash(t *testing.T) {
	t.Parallel()

	eachStore(t, func(t *testing.T, store Store) {
		ctx := context.Background()
		require.NoError(t, store.CreateAccount(ctx, "acct-1", decimal.RequireFromString("100.00")))

		// Spending the full balance is allowed; cash lands at exactly 0.
		cash, err := store.Commit(ctx, TradeRecord{
			ID:        "T1",
			AccountID: "acct-1",
			Symbol:    "AAPL",
			Price:     decimal.RequireFromString("100.00"),
			Shares:    1,
			Time:      time.Now().UTC(),
		}, decimal.RequireFromString("-100.00"))
		require.NoError(t, err)
		assert.True(t, cash.IsZero())
	})
}
