package tcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"sync"

	"doc-analytics-be/internal/config"
	"doc-analytics-be/internal/pkg/logger"
)

// Server accepts length-prefixed JSON commands. Each connection gets its own
// goroutine; frames on one connection are handled strictly in order, so
// responses leave in request order.
type Server struct {
	cfg        config.TCPConfig
	dispatcher *Dispatcher
	log        logger.ILogger

	listener net.Listener

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool

	wg sync.WaitGroup
}

func NewServer(cfg config.TCPConfig, dispatcher *Dispatcher, log logger.ILogger) *Server {
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		log:        log,
		conns:      map[net.Conn]struct{}{},
	}
}

// Listen binds the configured address. Split from Serve so callers (and
// tests) can learn the bound address before accepting.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.cfg.Host, s.cfg.Port))
	if err != nil {
		return err
	}
	s.listener = ln
	s.log.Info("tcp", "Listening", map[string]interface{}{"address": ln.Addr().String()})
	return nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Shutdown closes the listener.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return nil
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handleConn(ctx, conn)
	}
}

// Shutdown stops accepting, closes live connections and waits for their
// handlers to drain. In-flight pipeline runs are abandoned; their locks are
// released by the deferred handlers as the goroutines unwind.
func (s *Server) Shutdown() {
	s.mu.Lock()
	s.closed = true
	conns := make([]net.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	for _, c := range conns {
		c.Close()
	}
	s.wg.Wait()
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	remote := conn.RemoteAddr().String()

	for {
		payload, err := ReadFrame(conn, s.cfg.MaxFrameSize)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			// Oversized or truncated frames poison the stream; there is no
			// way to resynchronise, so the connection is dropped.
			s.log.Warn("tcp", "Dropping connection", map[string]interface{}{
				"remote": remote,
				"error":  err.Error(),
			})
			return
		}

		var req Request
		if err := json.Unmarshal(payload, &req); err != nil {
			// The frame itself was well formed, so a response is possible
			// before giving up on the connection.
			resp := ErrorResponse("malformed request: "+err.Error(), "")
			if werr := WriteResponse(conn, resp); werr != nil {
				s.log.Warn("tcp", "Failed to write error response", map[string]interface{}{
					"remote": remote,
					"error":  werr.Error(),
				})
			}
			return
		}

		resp := s.dispatcher.Handle(ctx, &req)
		if err := WriteResponse(conn, resp); err != nil {
			s.log.Warn("tcp", "Failed to write response", map[string]interface{}{
				"remote": remote,
				"error":  err.Error(),
			})
			return
		}
	}
}
