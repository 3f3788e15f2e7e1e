// Package server is the TCP front door: it accepts connections,
// decodes PlaceOrder/LogBook wire messages, and drives a single
// orderbook.Guarded façade, serializing every submission through that
// façade's own mutex. One server instance always serves exactly one
// symbol, so there is no asset-type/ticker framing on the wire.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"gavel/internal/feed"
	"gavel/internal/orderbook"
	"gavel/internal/request"
)

const (
	maxFrameSize       = 4 * 1024
	defaultWorkerCount = 10
	defaultConnTimeout = 5 * time.Second
)

// Server owns one order book and exposes it over TCP.
type Server struct {
	address string
	port    int
	book    *orderbook.Guarded
	pool    WorkerPool
	cancel  context.CancelFunc
}

// New constructs a Server bound to address:port, serving book.
func New(address string, port int, book *orderbook.Guarded) *Server {
	return &Server{
		address: address,
		port:    port,
		book:    book,
		pool:    NewWorkerPool(defaultWorkerCount),
	}
}

// Shutdown cancels the server's context, stopping the accept loop and
// every worker.
func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run blocks, accepting connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	defer listener.Close()

	// Close the listener on cancellation so a blocked Accept returns.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})

	log.Info().Str("address", listener.Addr().String()).Msg("server listening")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					log.Error().Err(err).Msg("accept failed")
					continue
				}
			}
			log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client connected")
			s.pool.AddTask(conn)
		}
	}
}

// handleConnection reads and handles exactly one frame from conn,
// then requeues conn for its next frame. A read error closes the
// connection; a decode error is answered with an ErrorReport and the
// connection is requeued. Requeuing after each frame, rather than holding a
// worker for a connection's lifetime, keeps one slow client from
// starving the pool.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return fmt.Errorf("server: unexpected task type %T", task)
	}

	select {
	case <-t.Dying():
		return conn.Close()
	default:
	}

	if err := conn.SetDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
		log.Error().Err(err).Msg("failed to set connection deadline")
		return conn.Close()
	}

	buf := make([]byte, maxFrameSize)
	n, err := conn.Read(buf)
	if err != nil {
		log.Info().Str("remote", conn.RemoteAddr().String()).Err(err).Msg("connection closed")
		return conn.Close()
	}

	msgType, req, decodeErr := decodeMessage(buf[:n])
	if decodeErr != nil {
		log.Error().Err(decodeErr).Msg("failed to decode message")
		conn.Write(encodeErrorReport(decodeErr))
		s.pool.AddTask(conn)
		return nil
	}

	switch msgType {
	case PlaceOrder:
		s.handlePlaceOrder(conn, req)
	case LogBook:
		s.handleLogBook(conn)
	}

	s.pool.AddTask(conn)
	return nil
}

func (s *Server) handlePlaceOrder(conn net.Conn, req request.Request) {
	orderID := uuid.New().String()
	result := s.book.MatchRequest(req)

	log.Info().
		Str("orderID", orderID).
		Str("summary", feed.RenderResult(result)).
		Msg("request matched")

	for _, action := range result.MarketActions {
		counterparty := action.BuyerUserID
		if req.Side == request.Buy {
			counterparty = action.SellerUserID
		}
		if _, err := conn.Write(encodeExecutionReport(req.Side, action, counterparty)); err != nil {
			log.Error().Err(err).Msg("failed to write execution report")
			return
		}
	}

	if _, err := conn.Write(encodeSummaryReport(result.RequestActions)); err != nil {
		log.Error().Err(err).Msg("failed to write summary report")
	}
}

func (s *Server) handleLogBook(conn net.Conn) {
	bids := s.book.Bids()
	asks := s.book.Asks()
	log.Info().
		Int("bids", len(bids)).
		Int("asks", len(asks)).
		Msg("book snapshot requested")

	msg := fmt.Sprintf("%d resting bid(s), %d resting ask(s)", len(bids), len(asks))
	conn.Write(encodeInfoReport(msg))
}
