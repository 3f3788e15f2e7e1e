package feed

import (
	"fmt"
	"strings"

	"gavel/internal/matcher"
	"gavel/internal/request"
)

// RenderMarketAction renders one executed trade atom.
func RenderMarketAction(a matcher.MarketAction) string {
	return fmt.Sprintf(
		"user #%d sold %d unit(s) at price %d to user #%d",
		a.SellerUserID, a.Size, a.Price, a.BuyerUserID,
	)
}

// RenderResult renders a full MatchingResult as a multi-line summary:
// how the request resolved, followed by every trade it caused.
func RenderResult(result matcher.MatchingResult) string {
	actions := make([]string, len(result.RequestActions))
	for i, a := range result.RequestActions {
		actions[i] = a.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "request was %s", strings.Join(actions, ", "))

	if len(result.MarketActions) > 0 {
		b.WriteString(" and the following trades occurred:\n")
		for i, a := range result.MarketActions {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(RenderMarketAction(a))
		}
	}
	return b.String()
}

// RenderPair renders one (request, result) pair as it would be
// presented to an operator replaying a feed.
func RenderPair(req request.Request, result matcher.MatchingResult) string {
	return fmt.Sprintf("%s\n  -> %s", req, RenderResult(result))
}
