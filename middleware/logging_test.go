package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"deals-backend/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"requestId": RequestID(c)})
	})

	w := doRequest(r, "/test", "")
	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected a generated request id header")
	}
	if len(id) != 36 {
		t.Errorf("expected a uuid, got %q", id)
	}
}

func TestRequestIDHonoured(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected supplied request id, got %q", got)
	}
}

func TestLoggingMiddlewareFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(zap.New(core)))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	doRequest(r, "/test", "")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status field 418, got %v", fields["status"])
	}
	if fields["path"] != "/test" || fields["method"] != "GET" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if fields["request_id"] == "" {
		t.Error("expected request id field")
	}
}

func TestLoggingMiddlewareServerErrorsAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(LoggingMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	doRequest(r, "/ok", "")
	doRequest(r, "/fail", "")

	if logs.Len() != 1 {
		t.Fatalf("expected only the 500 at error level, got %d entries", logs.Len())
	}
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/api/deals/:idOrSlug", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/deals/:idOrSlug", "200")
	before := testutil.ToFloat64(counter)

	doRequest(r, "/api/deals/first", "")
	doRequest(r, "/api/deals/42", "")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected 2 requests counted under the template, got %v", got)
	}

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	doRequest(r, "/missing", "")
	if got := testutil.ToFloat64(unmatched) - before; got != 1 {
		t.Errorf("expected unmatched route counted once, got %v", got)
	}
}
