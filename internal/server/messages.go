package server

import (
	"encoding/binary"
	"errors"
	"fmt"

	"gavel/internal/matcher"
	"gavel/internal/request"
)

// MessageType tags an inbound wire message. There is no CancelOrder
// message: the core has no cancel-by-client-id operation.
type MessageType uint8

const (
	PlaceOrder MessageType = iota
	LogBook
)

// placeOrderBodyLen is side(1) + price(8) + size(8) + user_id(8) +
// request_type(1).
const placeOrderBodyLen = 1 + 8 + 8 + 8 + 1

var (
	ErrUnknownMessageType = errors.New("server: unknown message type")
	ErrMessageTooShort    = errors.New("server: message too short")
	ErrUnknownSide        = errors.New("server: unknown side byte")
	ErrUnknownRequestType = errors.New("server: unknown request type byte")
)

// decodeMessage parses one inbound frame. The first byte is always
// the MessageType; PlaceOrder carries a fixed-length body, LogBook
// carries none.
func decodeMessage(buf []byte) (MessageType, request.Request, error) {
	if len(buf) < 1 {
		return 0, request.Request{}, ErrMessageTooShort
	}
	msgType := MessageType(buf[0])
	body := buf[1:]

	switch msgType {
	case PlaceOrder:
		req, err := decodePlaceOrder(body)
		return PlaceOrder, req, err
	case LogBook:
		return LogBook, request.Request{}, nil
	default:
		return 0, request.Request{}, ErrUnknownMessageType
	}
}

func decodePlaceOrder(body []byte) (request.Request, error) {
	if len(body) < placeOrderBodyLen {
		return request.Request{}, ErrMessageTooShort
	}

	side, err := decodeSide(body[0])
	if err != nil {
		return request.Request{}, err
	}
	price := binary.BigEndian.Uint64(body[1:9])
	size := binary.BigEndian.Uint64(body[9:17])
	userID := binary.BigEndian.Uint64(body[17:25])
	typ, err := decodeRequestType(body[25])
	if err != nil {
		return request.Request{}, err
	}

	return request.Request{
		Side:   side,
		Price:  price,
		Size:   size,
		UserID: userID,
		Type:   typ,
	}, nil
}

func decodeSide(b byte) (request.Side, error) {
	switch b {
	case 0:
		return request.Buy, nil
	case 1:
		return request.Sell, nil
	default:
		return 0, ErrUnknownSide
	}
}

func decodeRequestType(b byte) (request.Type, error) {
	switch b {
	case 0:
		return request.Limit, nil
	case 1:
		return request.ImmediateOrCancel, nil
	case 2:
		return request.FillOrKill, nil
	default:
		return 0, ErrUnknownRequestType
	}
}

// ReportType tags an outbound wire message.
type ReportType uint8

const (
	ExecutionReport ReportType = iota
	SummaryReport
	ErrorReport
	InfoReport
)

// encodeExecutionReport serializes one MarketAction as an execution
// report: type(1) side(1) size(8) price(8) counterparty(8).
func encodeExecutionReport(side request.Side, a matcher.MarketAction, counterparty uint64) []byte {
	buf := make([]byte, 1+1+8+8+8)
	buf[0] = byte(ExecutionReport)
	buf[1] = sideByte(side)
	binary.BigEndian.PutUint64(buf[2:10], a.Size)
	binary.BigEndian.PutUint64(buf[10:18], a.Price)
	binary.BigEndian.PutUint64(buf[18:26], counterparty)
	return buf
}

// encodeSummaryReport serializes the RequestAction list that resolved
// an incoming request: type(1) count(1) [action(1)]*count.
func encodeSummaryReport(actions []matcher.RequestAction) []byte {
	buf := make([]byte, 2+len(actions))
	buf[0] = byte(SummaryReport)
	buf[1] = byte(len(actions))
	for i, a := range actions {
		buf[2+i] = byte(a)
	}
	return buf
}

// encodeErrorReport serializes a rejection: type(1) len(4) msg(n).
func encodeErrorReport(err error) []byte {
	return encodeTextReport(ErrorReport, fmt.Sprint(err))
}

// encodeInfoReport serializes a non-error informational message, e.g.
// a LogBook snapshot summary.
func encodeInfoReport(msg string) []byte {
	return encodeTextReport(InfoReport, msg)
}

func encodeTextReport(reportType ReportType, msg string) []byte {
	buf := make([]byte, 1+4+len(msg))
	buf[0] = byte(reportType)
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(msg)))
	copy(buf[5:], msg)
	return buf
}

func sideByte(s request.Side) byte {
	if s == request.Sell {
		return 1
	}
	return 0
}
