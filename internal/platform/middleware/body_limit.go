package middleware

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BodyLimit caps the size of request bodies. Patient create and update
// payloads are small JSON documents, so anything beyond the limit is
// rejected with 413 rather than buffered. The limit is a human-readable
// size such as "64K" or "1M"; a bare number means bytes.
func BodyLimit(limit string) echo.MiddlewareFunc {
	max := parseSize(limit)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}

			// Reject up front when the client declares the size.
			if req.ContentLength > max {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds %d bytes", max))
			}

			// Enforce during reads for chunked or lying clients.
			req.Body = &cappedBody{body: req.Body, remaining: max}
			return next(c)
		}
	}
}

// cappedBody fails the read once more than the allowed bytes have been
// consumed.
type cappedBody struct {
	body      io.ReadCloser
	remaining int64
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.remaining < 0 {
		return 0, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
	}
	// Read one byte past the cap so overflow is detected even when the
	// body is exactly at the limit.
	if int64(len(p)) > b.remaining+1 {
		p = p[:b.remaining+1]
	}
	n, err := b.body.Read(p)
	b.remaining -= int64(n)
	if b.remaining < 0 {
		return n, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")
	}
	return n, err
}

func (b *cappedBody) Close() error { return b.body.Close() }

// parseSize understands K and M suffixes; bare numbers are bytes.
// Unparseable values fall back to 1 MB.
func parseSize(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	var mult int64 = 1
	switch {
	case strings.HasSuffix(s, "M"):
		mult = 1 << 20
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		mult = 1 << 10
		s = strings.TrimSuffix(s, "K")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 1 << 20
	}
	return n * mult
}
