package server

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gavel/internal/matcher"
	"gavel/internal/request"
)

func TestDecodePlaceOrder_RoundTripsFields(t *testing.T) {
	buf := make([]byte, 1+placeOrderBodyLen)
	buf[0] = byte(PlaceOrder)
	buf[1] = 1 // sell
	binary.BigEndian.PutUint64(buf[2:10], 150)
	binary.BigEndian.PutUint64(buf[10:18], 25)
	binary.BigEndian.PutUint64(buf[18:26], 9)
	buf[26] = 2 // fill or kill

	msgType, req, err := decodeMessage(buf)
	require.NoError(t, err)
	assert.Equal(t, PlaceOrder, msgType)
	assert.Equal(t, request.Request{Side: request.Sell, Price: 150, Size: 25, UserID: 9, Type: request.FillOrKill}, req)
}

func TestDecodeMessage_LogBookHasNoBody(t *testing.T) {
	msgType, _, err := decodeMessage([]byte{byte(LogBook)})
	require.NoError(t, err)
	assert.Equal(t, LogBook, msgType)
}

func TestDecodeMessage_RejectsUnknownType(t *testing.T) {
	_, _, err := decodeMessage([]byte{200})
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestDecodePlaceOrder_RejectsShortBody(t *testing.T) {
	_, _, err := decodeMessage([]byte{byte(PlaceOrder), 0, 0, 0})
	assert.ErrorIs(t, err, ErrMessageTooShort)
}

func TestEncodeExecutionReport_PacksFields(t *testing.T) {
	buf := encodeExecutionReport(request.Buy, matcher.MarketAction{Size: 3, Price: 7, SellerUserID: 1, BuyerUserID: 2}, 1)

	assert.Equal(t, byte(ExecutionReport), buf[0])
	assert.Equal(t, byte(0), buf[1])
	assert.Equal(t, uint64(3), binary.BigEndian.Uint64(buf[2:10]))
	assert.Equal(t, uint64(7), binary.BigEndian.Uint64(buf[10:18]))
	assert.Equal(t, uint64(1), binary.BigEndian.Uint64(buf[18:26]))
}

func TestEncodeSummaryReport_PacksActionCount(t *testing.T) {
	buf := encodeSummaryReport([]matcher.RequestAction{matcher.FilledPartially, matcher.AddedToBook})

	assert.Equal(t, byte(SummaryReport), buf[0])
	assert.Equal(t, byte(2), buf[1])
	assert.Equal(t, byte(matcher.FilledPartially), buf[2])
	assert.Equal(t, byte(matcher.AddedToBook), buf[3])
}
