package tcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"doc-analytics-be/internal/constant"

	"github.com/google/uuid"
)

const baseBackoff = 500 * time.Millisecond

// Client is a connection-caching caller for the analytics service. It is
// safe for concurrent use; calls are serialised over the single cached
// connection, matching the one-frame-at-a-time protocol.
type Client struct {
	addr       string
	timeout    time.Duration
	maxRetries int
	maxFrame   int

	mu   sync.Mutex
	conn net.Conn
}

func NewClient(addr string, timeout time.Duration, maxRetries int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		addr:       addr,
		timeout:    timeout,
		maxRetries: maxRetries,
		maxFrame:   DefaultMaxFrameSize,
	}
}

// Send issues one request and waits for its response. Connection-level
// failures (timeout, refused, reset) are retried with exponential backoff;
// an error *response* is returned as-is, it is the service's answer.
func (c *Client) Send(ctx context.Context, action constant.Action, data interface{}) (*Response, error) {
	var raw json.RawMessage
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal request data: %w", err)
		}
		raw = payload
	}

	req := &Request{
		Action:    action,
		Data:      raw,
		RequestId: uuid.NewString(),
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << uint(attempt-1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.roundTrip(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("send %s after %d attempts: %w", action, c.maxRetries+1, lastErr)
}

func (c *Client) roundTrip(ctx context.Context, req *Request) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.ensureConn(ctx)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		c.discardConn()
		return nil, err
	}

	if err := WriteRequest(conn, req); err != nil {
		c.discardConn()
		return nil, err
	}

	resp, err := ReadResponse(conn, c.maxFrame)
	if err != nil {
		c.discardConn()
		return nil, err
	}

	if resp.RequestId != req.RequestId {
		// The stream is out of step with this client; nothing read from it
		// can be trusted any more.
		c.discardConn()
		return nil, fmt.Errorf("protocol violation: response for request %q, want %q", resp.RequestId, req.RequestId)
	}
	return resp, nil
}

func (c *Client) ensureConn(ctx context.Context) (net.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}
	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return conn, nil
}

func (c *Client) discardConn() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// Close releases the cached connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discardConn()
}

func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
