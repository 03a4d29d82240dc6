package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive/seatbook/internal/config"
)

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Custom": {"a", "b"}}
	body := []byte(`{"seats":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)

	// header length pointing past the buffer
	payload, err := encodePayload(200, http.Header{}, []byte("x"))
	require.NoError(t, err)
	payload[7] = 0xFF
	_, _, _, ok = decodePayload(payload)
	assert.False(t, ok)

	// zero header length decodes to an empty header
	zero := []byte{0, 0, 0, 200, 0, 0, 0, 0}
	status, hdr, body, ok := decodePayload(zero)
	require.True(t, ok)
	assert.Equal(t, 200, status)
	assert.Empty(t, hdr)
	assert.Empty(t, body)
}

func cacheCtx(path, query string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, path+"?"+query, nil)
	rec := httptest.NewRecorder()
	e := echo.New()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	return c
}

func TestCacheKeyStableAndQuerySensitive(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, cacheCtx("/v1/availability", "from=2026-09-01&to=2026-09-30"))
	b := cacheKeyFrom(cfg, cacheCtx("/v1/availability", "from=2026-09-01&to=2026-09-30"))
	assert.Equal(t, a, b)

	other := cacheKeyFrom(cfg, cacheCtx("/v1/availability", "from=2026-10-01&to=2026-10-31"))
	assert.NotEqual(t, a, other)
}

// A body past the limit gets clipped in the capture buffer but counted
// in full, so the store path can tell an overflow apart and must not
// cache the clipped copy.  The client still receives every byte.
func TestCaptureWriterOverflowDetectable(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	n, err := cw.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	assert.Equal(t, int64(10), cw.size)
	assert.Equal(t, 4, cw.buf.Len())
	assert.True(t, cw.size > cw.limit)
	assert.Equal(t, "0123456789", rec.Body.String())
}
