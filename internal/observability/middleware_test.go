package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestRequestLoggerLevelsByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var out bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&out)), RequestMetricsMiddleware("test"))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })

	for _, path := range []string{"/ok", "/bad", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"level":"info"`) || !strings.Contains(lines[0], `"path":"/ok"`) {
		t.Fatalf("unexpected ok line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"warn"`) || !strings.Contains(lines[1], `"status":422`) {
		t.Fatalf("unexpected bad line: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"path":"/missing"`) {
		t.Fatalf("unexpected missing line: %s", lines[2])
	}
	for _, line := range lines {
		if strings.Contains(line, "decode_kind") || strings.Contains(line, "declared_length") {
			t.Fatalf("decode fields on a request that decoded nothing: %s", line)
		}
	}
}

func TestRequestLoggerCarriesDecodeOutcome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var out bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&out)))
	r.POST("/decoded", func(c *gin.Context) {
		c.Set(ContextDecodeKind, "ok")
		c.Set(ContextDeclaredLength, uint32(4126))
		c.Status(http.StatusOK)
	})
	r.POST("/rejected", func(c *gin.Context) {
		c.Set(ContextDecodeKind, "bad_magic")
		c.Status(http.StatusUnprocessableEntity)
	})

	for _, path := range []string{"/decoded", "/rejected"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, strings.NewReader("body")))
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"decode_kind":"ok"`) || !strings.Contains(lines[0], `"declared_length":4126`) {
		t.Fatalf("decode fields missing: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"decode_kind":"bad_magic"`) || strings.Contains(lines[1], "declared_length") {
		t.Fatalf("unexpected rejected line: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"request_bytes":4`) {
		t.Fatalf("request size missing: %s", lines[1])
	}
}
