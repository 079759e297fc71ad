package tcp

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"doc-analytics-be/internal/constant"
)

// Wire format: [4-byte unsigned big-endian length][UTF-8 JSON payload].
// The length counts the JSON bytes only, never the prefix itself.

const (
	headerSize = 4

	// DefaultMaxFrameSize bounds how much a single frame may declare. A
	// malicious length prefix must never translate into an allocation.
	DefaultMaxFrameSize = 16 * 1024 * 1024
)

var (
	ErrFrameTooLarge  = errors.New("frame exceeds maximum size")
	ErrTruncatedFrame = errors.New("truncated frame")
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Request is one framed command. Data stays raw until the action-specific
// DTO decodes it.
type Request struct {
	Action    constant.Action `json:"action"`
	Data      json.RawMessage `json:"data"`
	RequestId string          `json:"request_id"`
}

// Response always echoes the request id of the request that produced it.
type Response struct {
	Status    string      `json:"status"`
	Result    interface{} `json:"result"`
	Error     *string     `json:"error"`
	RequestId string      `json:"request_id"`
}

func SuccessResponse(result interface{}, requestId string) *Response {
	return &Response{
		Status:    StatusSuccess,
		Result:    result,
		RequestId: requestId,
	}
}

func ErrorResponse(message string, requestId string) *Response {
	return &Response{
		Status:    StatusError,
		Error:     &message,
		RequestId: requestId,
	}
}

// IsError reports whether the server completed the request with a failure.
func (r *Response) IsError() bool {
	return r.Status == StatusError
}

// ErrorMessage returns the error string or "" for success responses.
func (r *Response) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}

// WriteFrame frames the payload and writes it in one call.
func WriteFrame(w io.Writer, payload []byte) error {
	frame := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint32(frame[:headerSize], uint32(len(payload)))
	copy(frame[headerSize:], payload)

	_, err := w.Write(frame)
	return err
}

// ReadFrame reads one length-prefixed payload. The declared length is
// checked against maxSize before any body byte is read, so an oversized
// prefix costs nothing. A stream that ends mid-body yields
// ErrTruncatedFrame; a stream that ends cleanly between frames yields
// io.EOF.
func ReadFrame(r io.Reader, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFrameSize
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncatedFrame
		}
		return nil, err
	}

	length := binary.BigEndian.Uint32(header)
	if length > uint32(maxSize) {
		return nil, fmt.Errorf("%w: declared %d bytes, maximum %d", ErrFrameTooLarge, length, maxSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: expected %d bytes", ErrTruncatedFrame, length)
		}
		return nil, err
	}

	return payload, nil
}

// WriteRequest marshals and frames a request.
func WriteRequest(w io.Writer, req *Request) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}

// WriteResponse marshals and frames a response.
func WriteResponse(w io.Writer, resp *Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return WriteFrame(w, payload)
}

// ReadRequest reads and parses one request frame.
func ReadRequest(r io.Reader, maxSize int) (*Request, error) {
	payload, err := ReadFrame(r, maxSize)
	if err != nil {
		return nil, err
	}

	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("malformed request frame: %w", err)
	}
	return &req, nil
}

// ReadResponse reads and parses one response frame.
func ReadResponse(r io.Reader, maxSize int) (*Response, error) {
	payload, err := ReadFrame(r, maxSize)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("malformed response frame: %w", err)
	}
	return &resp, nil
}
