// Package feed is an input/output adapter outside the matching core:
// it decodes a finite JSON array of requests and renders
// (request, result) pairs back as human-readable text. Nothing in
// internal/request, internal/book, internal/matcher, or
// internal/orderbook depends on this package.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gavel/internal/request"
)

// wireRequest is the on-the-wire JSON shape:
// {side, price, size, user_id, request_type}.
type wireRequest struct {
	Side        string `json:"side"`
	Price       uint64 `json:"price"`
	Size        uint64 `json:"size"`
	UserID      uint64 `json:"user_id"`
	RequestType string `json:"request_type"`
}

// DecodeRequests parses a JSON array of wire requests into the
// engine's internal representation, in input order.
func DecodeRequests(r io.Reader) ([]request.Request, error) {
	var wire []wireRequest
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("feed: decode request array: %w", err)
	}

	out := make([]request.Request, 0, len(wire))
	for i, w := range wire {
		req, err := toRequest(w)
		if err != nil {
			return nil, fmt.Errorf("feed: request %d: %w", i, err)
		}
		out = append(out, req)
	}
	return out, nil
}

func toRequest(w wireRequest) (request.Request, error) {
	side, err := parseSide(w.Side)
	if err != nil {
		return request.Request{}, err
	}
	typ, err := parseType(w.RequestType)
	if err != nil {
		return request.Request{}, err
	}
	return request.Request{
		Side:   side,
		Price:  w.Price,
		Size:   w.Size,
		UserID: w.UserID,
		Type:   typ,
	}, nil
}

func parseSide(s string) (request.Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return request.Buy, nil
	case "sell":
		return request.Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func parseType(s string) (request.Type, error) {
	switch strings.ToLower(s) {
	case "limit":
		return request.Limit, nil
	case "immediateorcancel":
		return request.ImmediateOrCancel, nil
	case "fillorkill":
		return request.FillOrKill, nil
	default:
		return 0, fmt.Errorf("unknown request_type %q", s)
	}
}
