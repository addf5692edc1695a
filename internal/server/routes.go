package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/glbctl/glb"
	"github.com/danmuck/glbctl/internal/inspect"
	"github.com/danmuck/glbctl/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "0.1.0"

var ErrUnsupportedEncoding = errors.New("server: unsupported content encoding")

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.Node,
			"version": version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/v1/inspect", s.handleInspect)
}

// handleInspect decodes the request body as one container. The body may be
// zstd compressed when Content-Encoding says so.
func (s *Server) handleInspect(c *gin.Context) {
	// Room for the header on top of the declared length.
	limit := int64(s.maxContainerBytes) + glb.HeaderSize
	encoding := normalizeEncoding(c.GetHeader("Content-Encoding"))
	body := http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit(encoding, limit))

	r, closeBody, err := decodeContent(encoding, body, uint64(limit))
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	}
	defer closeBody()

	report, err := s.inspector.Reader(r)
	kind := inspect.Kind(err)
	c.Set(observability.ContextDecodeKind, kind)
	if err != nil {
		c.JSON(statusFor(kind), gin.H{"error": err.Error(), "kind": kind})
		return
	}
	c.Set(observability.ContextDeclaredLength, report.Length)
	report.Name = c.Query("name")
	c.JSON(http.StatusOK, report)
}

func normalizeEncoding(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// bodyLimit caps the bytes read from the wire. Compressed bodies may be a
// little larger than the container they carry; the decoded size is still
// capped by glb.Limits.
func bodyLimit(encoding string, limit int64) int64 {
	if encoding == "zstd" {
		return zstdBound(limit)
	}
	return limit
}

// zstdBound is an upper bound on the compressed size of n bytes, after
// ZSTD_COMPRESSBOUND plus room for frame headers.
func zstdBound(n int64) int64 {
	return n + n>>8 + 128<<10
}

func decodeContent(encoding string, body io.Reader, maxBytes uint64) (io.Reader, func(), error) {
	switch encoding {
	case "", "identity":
		return body, func() {}, nil
	case "zstd":
		dec, err := zstd.NewReader(body,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(maxBytes),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd reader: %w", err)
		}
		return dec, dec.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}

func statusFor(kind string) int {
	switch kind {
	case inspect.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case inspect.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}
