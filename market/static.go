package market

import (
	"context"
	"fmt"
	"sync"
)

// Static is an in-memory quote table, safe for concurrent use. Tests
// and offline runs use it in place of a live quote service.
type Static struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

func NewStatic() *Static {
	return &Static{quotes: make(map[string]Quote)}
}

// Set adds or replaces the quote for q.Symbol.
func (s *Static) Set(q Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.Symbol = Normalize(q.Symbol)
	s.quotes[q.Symbol] = q
}

// Delist removes a symbol, so later lookups fail with ErrUnknownSymbol.
func (s *Static) Delist(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.quotes, Normalize(symbol))
}

func (s *Static) Lookup(ctx context.Context, symbol string) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[Normalize(symbol)]
	if !ok {
		return Quote{}, fmt.Errorf("lookup %q: %w", symbol, ErrUnknownSymbol)
	}
	return q, nil
}
