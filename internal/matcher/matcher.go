// Package matcher implements the price-time matching walk: the
// algorithm that consumes resting liquidity on the opposite side of a
// book, decides commit-or-rollback per order-type policy, and may
// enqueue a residual onto the incoming request's own side.
package matcher

import (
	"gavel/internal/book"
	"gavel/internal/request"
)

// MarketAction records one executed trade atom. Price is always the
// resting (passive) order's price, never the aggressor's.
type MarketAction struct {
	Size         uint64
	Price        uint64
	SellerUserID uint64
	BuyerUserID  uint64
}

// RequestAction tags how an incoming request was resolved.
type RequestAction int

const (
	Filled RequestAction = iota
	FilledPartially
	Cancelled
	AddedToBook
)

func (a RequestAction) String() string {
	switch a {
	case Filled:
		return "filled"
	case FilledPartially:
		return "filled partially"
	case Cancelled:
		return "cancelled"
	case AddedToBook:
		return "added to book"
	default:
		return "unknown"
	}
}

// MatchingResult is the structured outcome of one Match call: every
// trade executed, in execution order, and how the incoming request
// itself resolved.
type MatchingResult struct {
	MarketActions  []MarketAction
	RequestActions []RequestAction
}

// Match walks opp (the side opposite incoming) looking for crossable
// resting orders, applies the commit/rollback policy for
// incoming.Type, and — for a Limit that cannot be fully filled —
// inserts the residual onto own.
//
// A size-0 incoming request is a caller precondition violation: it is
// treated as a no-op and returns a zero-value MatchingResult.
func Match(own, opp *book.BookSide, incoming request.Request) MatchingResult {
	if incoming.Size == 0 {
		return MatchingResult{}
	}

	remaining := incoming.Size
	entries := opp.Entries()

	var actions []MarketAction
	var plan []book.ConsumeOp

	for i := 0; remaining > 0 && i < len(entries); i++ {
		entry := entries[i]
		if entry.Order.UserID == incoming.UserID {
			// Self-trade prevention: skip past this resting order
			// without consuming it, but keep scanning behind it.
			continue
		}
		if !crosses(incoming, entry.Order) {
			// Opp is ordered best-first: once a level stops
			// crossing, nothing further down can either.
			break
		}

		k := entry.Order.Size
		if remaining < k {
			k = remaining
		}

		seller, buyer := counterparties(incoming, entry.Order)
		actions = append(actions, MarketAction{
			Size:         k,
			Price:        entry.Order.Price,
			SellerUserID: seller,
			BuyerUserID:  buyer,
		})
		plan = append(plan, book.ConsumeOp{
			LevelPrice: entry.LevelPrice,
			Index:      entry.Index,
			Amount:     k,
		})
		remaining -= k
	}

	filled := remaining == 0
	traded := len(actions) > 0

	if incoming.Type == request.FillOrKill && !filled {
		// All-or-nothing: discard the plan and every tentatively
		// recorded MarketAction. The book is left byte-identical to
		// its pre-call state.
		return MatchingResult{RequestActions: []RequestAction{Cancelled}}
	}

	if len(plan) > 0 {
		opp.Apply(plan)
	}

	switch incoming.Type {
	case request.FillOrKill:
		return MatchingResult{MarketActions: actions, RequestActions: []RequestAction{Filled}}

	case request.ImmediateOrCancel:
		if filled {
			return MatchingResult{MarketActions: actions, RequestActions: []RequestAction{Filled}}
		}
		reqActions := make([]RequestAction, 0, 2)
		if traded {
			reqActions = append(reqActions, FilledPartially)
		}
		reqActions = append(reqActions, Cancelled)
		return MatchingResult{MarketActions: actions, RequestActions: reqActions}

	default: // request.Limit
		if filled {
			return MatchingResult{MarketActions: actions, RequestActions: []RequestAction{Filled}}
		}
		residual := request.Request{
			Side:   incoming.Side,
			Price:  incoming.Price,
			Size:   remaining,
			UserID: incoming.UserID,
			Type:   request.Limit,
		}
		own.InsertTailOfBand(residual)
		reqActions := make([]RequestAction, 0, 2)
		if traded {
			reqActions = append(reqActions, FilledPartially)
		}
		reqActions = append(reqActions, AddedToBook)
		return MatchingResult{MarketActions: actions, RequestActions: reqActions}
	}
}

// crosses reports whether resting (a passive order on the opposite
// side) is at a price the incoming aggressor would accept.
func crosses(incoming request.Request, resting request.Request) bool {
	if incoming.Side == request.Buy {
		return resting.Price <= incoming.Price
	}
	return resting.Price >= incoming.Price
}

// counterparties assigns seller/buyer roles for a trade between
// incoming and resting, based on which side is aggressing.
func counterparties(incoming, resting request.Request) (seller, buyer uint64) {
	if incoming.Side == request.Buy {
		return resting.UserID, incoming.UserID
	}
	return incoming.UserID, resting.UserID
}
