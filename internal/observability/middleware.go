package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Context keys handlers set so the request log carries the decode outcome.
const (
	ContextDecodeKind     = "decode_kind"
	ContextDeclaredLength = "declared_length"
)

// RequestLogger writes one line per request. Requests that decoded a
// container also log its result kind and declared length.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", routePath(c, c.Request.URL.Path)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int64("request_bytes", c.Request.ContentLength).
			Int("response_bytes", c.Writer.Size())
		if kind := c.GetString(ContextDecodeKind); kind != "" {
			event = event.Str("decode_kind", kind)
		}
		if length, ok := c.Get(ContextDeclaredLength); ok {
			if n, ok := length.(uint32); ok {
				event = event.Uint32("declared_length", n)
			}
		}
		event.Msg("http_request")
	}
}

// RequestMetricsMiddleware records request counts and latency. Unrouted
// paths share one label so scanners cannot grow the series set.
func RequestMetricsMiddleware(node string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		RecordHTTPRequest(node, c.Request.Method, routePath(c, "unmatched"), c.Writer.Status(), time.Since(start))
	}
}

func routePath(c *gin.Context, fallback string) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return fallback
}
