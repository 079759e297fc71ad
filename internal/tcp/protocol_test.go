package tcp

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"testing"

	"doc-analytics-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"action":"PING"}`)

	require.NoError(t, WriteFrame(&buf, payload))

	// 4-byte big-endian length prefix.
	require.Equal(t, headerSize+len(payload), buf.Len())
	assert.Equal(t, uint32(len(payload)), binary.BigEndian.Uint32(buf.Bytes()[:headerSize]))

	got, err := ReadFrame(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadFrameCleanEOFBetweenFrames(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrameRejectsHugeDeclaredLength(t *testing.T) {
	// A frame declaring 0xFFFFFFFF bytes must be refused from the header
	// alone, before any body allocation happens.
	header := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	_, err := ReadFrame(bytes.NewReader(header), DefaultMaxFrameSize)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestReadFrameTruncatedHeader(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x00, 0x01}), 0)
	assert.ErrorIs(t, err, ErrTruncatedFrame)
}

func TestReadFrameTruncatedBody(t *testing.T) {
	var buf bytes.Buffer
	var header [headerSize]byte
	binary.BigEndian.PutUint32(header[:], 100)
	buf.Write(header[:])
	buf.WriteString("only a few bytes")

	_, err := ReadFrame(&buf, 0)
	assert.ErrorIs(t, err, ErrTruncatedFrame)
}

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	req := &Request{
		Action:    constant.ActionCluster,
		Data:      json.RawMessage(`{"user_id":"u1"}`),
		RequestId: "req-1",
	}
	require.NoError(t, WriteRequest(&buf, req))

	got, err := ReadRequest(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, constant.ActionCluster, got.Action)
	assert.Equal(t, "req-1", got.RequestId)
	assert.JSONEq(t, `{"user_id":"u1"}`, string(got.Data))
}

func TestResponseShape(t *testing.T) {
	ok := SuccessResponse(map[string]int{"n": 1}, "req-9")
	assert.Equal(t, StatusSuccess, ok.Status)
	assert.False(t, ok.IsError())
	assert.Equal(t, "req-9", ok.RequestId)

	bad := ErrorResponse("InsufficientData: need at least 3 documents", "req-9")
	assert.Equal(t, StatusError, bad.Status)
	assert.True(t, bad.IsError())
	assert.Equal(t, "InsufficientData: need at least 3 documents", bad.ErrorMessage())
	assert.Nil(t, bad.Result)
}

func TestReadRequestMalformedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte(`{"action":`)))

	_, err := ReadRequest(&buf, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed request frame")
}
