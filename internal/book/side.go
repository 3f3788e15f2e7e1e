// Package book implements one side of a limit order book: an ordered
// sequence of resting requests maintaining price-time priority.
//
// Resting orders are grouped into price levels kept in a
// github.com/tidwall/btree.BTreeG, each level holding a FIFO slice of
// same-priced orders. Appending to a level's slice is the tail-of-band
// insertion discipline: it always lands after every order already
// resting at that price.
package book

import (
	"github.com/tidwall/btree"

	"gavel/internal/request"
)

// Level is one price point on a BookSide: every resting order in
// Orders shares Price, ordered earliest-arrival first.
type Level struct {
	Price  uint64
	Orders []request.Request
}

type levels = btree.BTreeG[*Level]

// BookSide is one ordered sequence of resting Requests for a single
// side (all Buy+Limit, or all Sell+Limit).
type BookSide struct {
	side   request.Side
	levels *levels
}

// NewBid constructs an empty bid side: sorted by price descending.
func NewBid() *BookSide {
	return &BookSide{
		side:   request.Buy,
		levels: btree.NewBTreeG(func(a, b *Level) bool { return a.Price > b.Price }),
	}
}

// NewAsk constructs an empty ask side: sorted by price ascending.
func NewAsk() *BookSide {
	return &BookSide{
		side:   request.Sell,
		levels: btree.NewBTreeG(func(a, b *Level) bool { return a.Price < b.Price }),
	}
}

// Side reports which side (Buy or Sell) this BookSide represents.
func (s *BookSide) Side() request.Side { return s.side }

// Empty reports whether no resting orders remain.
func (s *BookSide) Empty() bool { return s.levels.Len() == 0 }

// InsertTailOfBand places req at the tail of its price band, creating
// the band if it does not yet exist. req must already carry
// Type == request.Limit.
func (s *BookSide) InsertTailOfBand(req request.Request) {
	if lvl, ok := s.levels.GetMut(&Level{Price: req.Price}); ok {
		lvl.Orders = append(lvl.Orders, req)
		return
	}
	s.levels.Set(&Level{Price: req.Price, Orders: []request.Request{req}})
}

// Entries returns every resting order across the side in priority
// order (best price first, then arrival order within a price band).
// The returned LevelPrice/Index pair identifies the order's current
// position for use with Apply; it is only valid until the next
// mutating call.
func (s *BookSide) Entries() []Entry {
	entries := make([]Entry, 0, s.levels.Len())
	for _, lvl := range s.levels.Items() {
		for i, o := range lvl.Orders {
			entries = append(entries, Entry{LevelPrice: lvl.Price, Index: i, Order: o})
		}
	}
	return entries
}

// Entry identifies one resting order's position within a BookSide, as
// produced by Entries and consumed by Apply.
type Entry struct {
	LevelPrice uint64
	Index      int
	Order      request.Request
}

// ConsumeOp instructs Apply to reduce the order found at
// (LevelPrice, Index) by Amount units, fully removing it if Amount
// equals its current size.
type ConsumeOp struct {
	LevelPrice uint64
	Index      int
	Amount     uint64
}

// Apply commits a set of consume operations produced from a prior
// Entries() snapshot. Ops must be supplied in the order the orders
// were encountered (ascending Index per level); Apply removes fully
// consumed orders and prunes emptied levels.
func (s *BookSide) Apply(ops []ConsumeOp) {
	byLevel := make(map[uint64][]ConsumeOp)
	for _, op := range ops {
		byLevel[op.LevelPrice] = append(byLevel[op.LevelPrice], op)
	}

	for price, levelOps := range byLevel {
		lvl, ok := s.levels.GetMut(&Level{Price: price})
		if !ok {
			continue
		}

		// Self-trade skips can leave gaps between consumed indices
		// within a level, so removal cannot assume a contiguous
		// prefix: mark consumed orders and rebuild the FIFO slice
		// around them.
		removed := make(map[int]bool, len(levelOps))
		for _, op := range levelOps {
			order := &lvl.Orders[op.Index]
			if op.Amount > order.Size {
				panic("book: consume amount exceeds resting order size")
			}
			order.Size -= op.Amount
			if order.Size == 0 {
				removed[op.Index] = true
			}
		}

		if len(removed) > 0 {
			kept := make([]request.Request, 0, len(lvl.Orders)-len(removed))
			for i, o := range lvl.Orders {
				if !removed[i] {
					kept = append(kept, o)
				}
			}
			lvl.Orders = kept
		}
		if len(lvl.Orders) == 0 {
			s.levels.Delete(lvl)
		}
	}
}

// Snapshot returns a read-only ordered copy of every resting order,
// safe for observers: mutating the returned slice cannot affect the
// book.
func (s *BookSide) Snapshot() []request.Request {
	out := make([]request.Request, 0, s.levels.Len())
	for _, lvl := range s.levels.Items() {
		out = append(out, lvl.Orders...)
	}
	return out
}

// TotalSize sums the size of every resting order, used by callers
// verifying unit conservation across a match.
func (s *BookSide) TotalSize() uint64 {
	var total uint64
	for _, lvl := range s.levels.Items() {
		for _, o := range lvl.Orders {
			total += o.Size
		}
	}
	return total
}
