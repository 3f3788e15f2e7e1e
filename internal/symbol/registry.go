// Package symbol provides the thin multi-instrument lookup table that
// sits outside the matching core: one order book serves exactly one
// symbol, so a deployment running several instruments needs a place
// to keep one façade per symbol.
package symbol

import (
	"fmt"
	"sort"
	"sync"

	"gavel/internal/orderbook"
)

// Registry maps a ticker symbol to its own Guarded order book.
type Registry struct {
	mu    sync.RWMutex
	books map[string]*orderbook.Guarded
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{books: make(map[string]*orderbook.Guarded)}
}

// Book returns the order book for symbol, creating one on first use.
func (r *Registry) Book(symbol string) *orderbook.Guarded {
	r.mu.RLock()
	b, ok := r.books[symbol]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok = r.books[symbol]; ok {
		return b
	}
	b = orderbook.NewGuarded()
	r.books[symbol] = b
	return b
}

// Symbols returns every symbol currently registered, sorted.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.books))
	for s := range r.books {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// String renders the set of registered symbols for diagnostic output.
func (r *Registry) String() string {
	return fmt.Sprintf("registry of %d symbol(s): %v", len(r.Symbols()), r.Symbols())
}
