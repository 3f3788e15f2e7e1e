package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gavel/internal/request"
)

func TestString_RendersHumanReadableSummary(t *testing.T) {
	r := request.Request{Side: request.Buy, Price: 10, Size: 5, UserID: 7, Type: request.FillOrKill}
	assert.Equal(t, "fill or kill request from user #7 to buy 5 unit(s) at price 10", r.String())
}

func TestSideAndType_StringersAreDistinct(t *testing.T) {
	assert.NotEqual(t, request.Buy.String(), request.Sell.String())
	assert.NotEqual(t, request.Limit.String(), request.ImmediateOrCancel.String())
	assert.NotEqual(t, request.ImmediateOrCancel.String(), request.FillOrKill.String())
}
