package flow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dgnsrekt/strategy_studio/internal/contract"
)

// LibraryBackend is the slice of the gateway the library screen needs.
type LibraryBackend interface {
	GetUserStrategies(ctx context.Context) contract.Result[[]contract.Strategy]
	DeleteStrategy(ctx context.Context, id string) contract.Result[bool]
}

// Library is the saved-strategies screen. Load replaces the list wholesale on
// success; a failed refresh leaves the previously displayed list intact.
type Library struct {
	backend LibraryBackend

	mu         sync.Mutex
	strategies []contract.Strategy
	loaded     bool
}

// NewLibrary builds an empty, not-yet-loaded library.
func NewLibrary(backend LibraryBackend) *Library {
	return &Library{backend: backend}
}

// Load fetches the user's saved strategies.
func (l *Library) Load(ctx context.Context) error {
	res := l.backend.GetUserStrategies(ctx)
	if !res.OK {
		return errors.New(errText(res.Err, "Failed to load strategies"))
	}
	l.mu.Lock()
	l.strategies = res.Data
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Loaded reports whether at least one Load has succeeded.
func (l *Library) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Strategies returns the full list in backend order.
func (l *Library) Strategies() []contract.Strategy {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]contract.Strategy, len(l.strategies))
	copy(out, l.strategies)
	return out
}

// Filter returns the strategies whose name, description or ticker contains
// term, case-insensitively. A blank term returns everything. The filter runs
// locally; no search request is issued.
func (l *Library) Filter(term string) []contract.Strategy {
	term = strings.ToLower(strings.TrimSpace(term))
	all := l.Strategies()
	if term == "" {
		return all
	}
	out := make([]contract.Strategy, 0, len(all))
	for _, s := range all {
		if strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.Description), term) ||
			strings.Contains(strings.ToLower(s.Ticker), term) {
			out = append(out, s)
		}
	}
	return out
}

// Delete removes a saved strategy on the backend and, on success, drops it
// from the local list without disturbing the order of the rest.
func (l *Library) Delete(ctx context.Context, id string) error {
	res := l.backend.DeleteStrategy(ctx, id)
	if !res.OK {
		return errors.New(errText(res.Err, "Failed to delete strategy"))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.strategies[:0]
	for _, s := range l.strategies {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	l.strategies = kept
	return nil
}

// Stats reports the library size and the most recent saved_at stamp, for the
// statistics line on the library page.
func (l *Library) Stats() (count int, lastSaved string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	count = len(l.strategies)
	for _, s := range l.strategies {
		if s.SavedAt > lastSaved {
			lastSaved = s.SavedAt
		}
	}
	return count, lastSaved
}
