package engine

import "sync"

// accountLocks hands out one mutex per account. The engine holds the
// lock across read, validation, and commit, not just the write: a
// lock around the write alone would still let two sells observe the
// same pre-trade share count and jointly oversubscribe it.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the account's mutex and returns its unlock func.
func (a *accountLocks) lock(accountID string) func() {
	a.mu.Lock()
	if a.locks == nil {
		a.locks = make(map[string]*sync.Mutex)
	}
	l, ok := a.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		a.locks[accountID] = l
	}
	a.mu.Unlock()

	l.Lock()
	return l.Unlock
}
