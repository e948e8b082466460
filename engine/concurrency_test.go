package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfolio/stockfolio/ledger"
	"github.com/stockfolio/stockfolio/market"
)

// Two concurrent sells that are each valid against the pre-trade
// holdings but jointly exceed them: exactly one may win.
func TestConcurrentSellsSingleWinner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for i := 0; i < 50; i++ {
		eng, store, _ := newTestEngine(t)

		_, err := eng.Buy(ctx, "acct-1", "AAPL", 10)
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]error, 2)
		for w := 0; w < 2; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				_, results[w] = eng.Sell(ctx, "acct-1", "AAPL", 10)
			}(w)
		}
		wg.Wait()

		var wins, fails int
		for _, err := range results {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrInsufficientShares) || errors.Is(err, ErrSymbolNotOwned):
				fails++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, wins)
		require.Equal(t, 1, fails)

		// The ledger shows exactly one buy and one sell, net zero.
		recs, err := store.Trades(ctx, "acct-1")
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "10000.00", cashOf(t, store, "acct-1"))
	}
}

// Different accounts never contend on each other's lock.
func TestAccountsTradeIndependently(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := ledger.NewMemory()
	quotes := market.NewStatic()
	quotes.Set(market.Quote{Symbol: "AAPL", Name: "Apple Inc.", Price: dec("10.00")})

	eng := New(store, quotes, WithSeedCash(dec("10000.00")))

	const accounts = 8
	for a := 0; a < accounts; a++ {
		_, err := eng.Register(ctx, accountID(a))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for a := 0; a < accounts; a++ {
		wg.Add(1)
		go func(a int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if _, err := eng.Buy(ctx, accountID(a), "AAPL", 1); err != nil {
					t.Errorf("account %d buy %d: %v", a, i, err)
					return
				}
			}
		}(a)
	}
	wg.Wait()

	for a := 0; a < accounts; a++ {
		assert.Equal(t, "9800.00", cashOf(t, store, accountID(a)))
		assert.Equal(t, 20, tradeCount(t, store, accountID(a)))
	}
}

func accountID(n int) string {
	return string(rune('a'+n)) + "-acct"
}
