package middleware

import (
	"crypto/subtle"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"memorywall/internal/dto"
	"memorywall/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

func LoggingMiddleware() func(*ginext.Context) {
	return func(c *ginext.Context) {
		start := time.Now()
		c.Next()

		evt := zlog.Logger.Info()
		if c.Writer.Status() >= 500 {
			evt = zlog.Logger.Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetString("request_id")).
			Msg("request handled")
	}
}

// RequestID propagates the caller's request id or assigns a new one.
func RequestID() func(*ginext.Context) {
	return func(c *ginext.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AdminAuth guards organizer routes with a static bearer token. An empty
// token leaves the routes open.
func AdminAuth(token string) func(*ginext.Context) {
	if token == "" {
		return func(c *ginext.Context) { c.Next() }
	}
	expected := []byte(token)
	return func(c *ginext.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			dto.UnauthorizedError(c)
			return
		}
		c.Next()
	}
}

func Metrics(m *metrics.Metrics) func(*ginext.Context) {
	return func(c *ginext.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
