package feed_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/internal/feed"
	"gavel/internal/matcher"
	"gavel/internal/request"
)

func TestDecodeRequests_ParsesWireSchema(t *testing.T) {
	body := `[
		{"side":"Buy","price":1,"size":1,"user_id":1,"request_type":"Limit"},
		{"side":"sell","price":2,"size":3,"user_id":4,"request_type":"FillOrKill"}
	]`

	reqs, err := feed.DecodeRequests(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, request.Request{Side: request.Buy, Price: 1, Size: 1, UserID: 1, Type: request.Limit}, reqs[0])
	assert.Equal(t, request.Request{Side: request.Sell, Price: 2, Size: 3, UserID: 4, Type: request.FillOrKill}, reqs[1])
}

func TestDecodeRequests_RejectsUnknownSide(t *testing.T) {
	body := `[{"side":"long","price":1,"size":1,"user_id":1,"request_type":"Limit"}]`

	_, err := feed.DecodeRequests(strings.NewReader(body))
	assert.Error(t, err)
}

func TestDecodeRequests_RejectsUnknownType(t *testing.T) {
	body := `[{"side":"buy","price":1,"size":1,"user_id":1,"request_type":"Stop"}]`

	_, err := feed.DecodeRequests(strings.NewReader(body))
	assert.Error(t, err)
}

func TestRenderResult_IncludesTradesWhenPresent(t *testing.T) {
	result := matcher.MatchingResult{
		MarketActions:  []matcher.MarketAction{{Size: 1, Price: 1, SellerUserID: 2, BuyerUserID: 1}},
		RequestActions: []matcher.RequestAction{matcher.Filled},
	}

	out := feed.RenderResult(result)
	assert.Contains(t, out, "request was filled")
	assert.Contains(t, out, "user #2 sold 1 unit(s) at price 1 to user #1")
}

func TestRenderResult_OmitsTradeSectionWhenEmpty(t *testing.T) {
	result := matcher.MatchingResult{RequestActions: []matcher.RequestAction{matcher.Cancelled}}

	out := feed.RenderResult(result)
	assert.Equal(t, "request was cancelled", out)
}
