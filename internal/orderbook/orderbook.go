// Package orderbook provides the façade over one instrument's two
// book sides: it routes an incoming request to the matcher with the
// correctly-selected own/opposite sides and returns the structured
// result.
package orderbook

import (
	"sync"

	"gavel/internal/book"
	"gavel/internal/matcher"
	"gavel/internal/request"
)

// OrderBook owns one Bid side and one Ask side for a single
// instrument. Created empty; mutated only through MatchRequest.
type OrderBook struct {
	bids *book.BookSide
	asks *book.BookSide
}

// New constructs an empty order book.
func New() *OrderBook {
	return &OrderBook{
		bids: book.NewBid(),
		asks: book.NewAsk(),
	}
}

// MatchRequest selects own/opposite sides from incoming.Side and
// delegates to the matcher, returning its structured result.
func (ob *OrderBook) MatchRequest(incoming request.Request) matcher.MatchingResult {
	if incoming.Side == request.Buy {
		return matcher.Match(ob.bids, ob.asks, incoming)
	}
	return matcher.Match(ob.asks, ob.bids, incoming)
}

// Bids returns a read-only snapshot of the bid side, best price first.
func (ob *OrderBook) Bids() []request.Request { return ob.bids.Snapshot() }

// Asks returns a read-only snapshot of the ask side, best price first.
func (ob *OrderBook) Asks() []request.Request { return ob.asks.Snapshot() }

// Guarded wraps an OrderBook with a mutex so it can be embedded safely
// behind multiple concurrent callers (e.g. one TCP connection per
// client in internal/server), while the façade and matcher beneath it
// each run single-threaded per call.
type Guarded struct {
	mu   sync.Mutex
	book *OrderBook
}

// NewGuarded constructs an empty, lock-guarded order book.
func NewGuarded() *Guarded {
	return &Guarded{book: New()}
}

// MatchRequest serializes concurrent callers through a single mutex
// before delegating to the underlying OrderBook.
func (g *Guarded) MatchRequest(incoming request.Request) matcher.MatchingResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.book.MatchRequest(incoming)
}

// Bids returns a read-only snapshot of the bid side.
func (g *Guarded) Bids() []request.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.book.Bids()
}

// Asks returns a read-only snapshot of the ask side.
func (g *Guarded) Asks() []request.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.book.Asks()
}
