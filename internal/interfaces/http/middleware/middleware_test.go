package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbpupil/measurement-converter/internal/application/port"
	"github.com/vbpupil/measurement-converter/internal/interfaces/http/middleware"
	"github.com/vbpupil/measurement-converter/pkg/logger"
)

type entry struct {
	level string
	msg   string
	kv    []any
}

type memLogger struct {
	mu      *sync.Mutex
	entries *[]entry
	fields  []any
}

func newMemLogger() *memLogger {
	return &memLogger{mu: &sync.Mutex{}, entries: &[]entry{}}
}

func (l *memLogger) log(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, entry{level, msg, append(append([]any{}, l.fields...), kv...)})
}

func (l *memLogger) Debug(msg string, kv ...any) { l.log("debug", msg, kv) }
func (l *memLogger) Info(msg string, kv ...any)  { l.log("info", msg, kv) }
func (l *memLogger) Warn(msg string, kv ...any)  { l.log("warn", msg, kv) }
func (l *memLogger) Error(msg string, kv ...any) { l.log("error", msg, kv) }
func (l *memLogger) With(kv ...any) port.Logger {
	return &memLogger{mu: l.mu, entries: l.entries, fields: append(append([]any{}, l.fields...), kv...)}
}
func (l *memLogger) WithContext(ctx context.Context) port.Logger {
	if id := logger.RequestIDFromContext(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}

func (l *memLogger) all() []entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entry{}, *l.entries...)
}

func value(kv []any, key string) any {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == key {
			return kv[i+1]
		}
	}
	return nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-id")
	rec := httptest.NewRecorder()

	middleware.RequestID(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, "upstream-id", rec.Header().Get(middleware.RequestIDHeader))
}

func TestLogger_RecordsRequest(t *testing.T) {
	log := newMemLogger()
	h := middleware.RequestID(middleware.Logger(log)(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/materials?search=oil", nil))

	entries := log.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "HTTP Request", entries[0].msg)
	assert.Equal(t, http.StatusNoContent, value(entries[0].kv, "status"))
	assert.Equal(t, "search=oil", value(entries[0].kv, "query"))
	assert.NotEmpty(t, value(entries[0].kv, "request_id"))
}

func TestRecoverer(t *testing.T) {
	log := newMemLogger()
	h := middleware.Recoverer(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INTERNAL_ERROR", body["error"].(map[string]any)["code"])

	entries := log.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].level)
	assert.Equal(t, "boom", value(entries[0].kv, "error"))
}

func TestRateLimiter(t *testing.T) {
	h := middleware.RateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 0.001,
		Burst:             2,
		KeyFunc:           func(r *http.Request) string { return r.Header.Get("X-Client") },
	})(okHandler)

	call := func(client string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", client)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("a"))
	assert.Equal(t, http.StatusNoContent, call("a"))
	assert.Equal(t, http.StatusTooManyRequests, call("a"))
	assert.Equal(t, http.StatusNoContent, call("b"))
}

func TestRateLimiter_SharesBucketAcrossConnections(t *testing.T) {
	cfg := middleware.DefaultRateLimiterConfig()
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1
	srv := httptest.NewServer(middleware.RateLimiter(cfg)(okHandler))
	defer srv.Close()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	allowed := 0
	for i := 0; i < 5; i++ {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
		if resp.StatusCode == http.StatusNoContent {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	h := middleware.RateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: 0.001,
		Burst:             1,
		IdleTimeout:       20 * time.Millisecond,
	})(okHandler)

	call := func() int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call())
	assert.Equal(t, http.StatusTooManyRequests, call())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, http.StatusNoContent, call())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "203.0.113.7:51234"
	assert.Equal(t, "203.0.113.7", middleware.ClientIP(req))

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", middleware.ClientIP(req))

	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", middleware.ClientIP(req))
}

type countingMetrics struct {
	mu       sync.Mutex
	counters []map[string]string
	timings  int
}

func (m *countingMetrics) Counter(_ string, _ float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, tags)
}
func (m *countingMetrics) Gauge(string, float64, map[string]string)     {}
func (m *countingMetrics) Histogram(string, float64, map[string]string) {}
func (m *countingMetrics) Timing(string, time.Duration, map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings++
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	m := &countingMetrics{}
	r := chi.NewRouter()
	r.Use(middleware.Metrics(m))
	r.Get("/api/v1/materials/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/materials/gold", nil))

	require.Len(t, m.counters, 1)
	assert.Equal(t, map[string]string{
		"method": "GET",
		"route":  "/api/v1/materials/{name}",
		"status": "200",
	}, m.counters[0])
	assert.Equal(t, 1, m.timings)
}

func TestContentTypeJSON(t *testing.T) {
	h := middleware.ContentTypeJSON(okHandler)

	tests := []struct {
		method      string
		contentType string
		want        int
	}{
		{http.MethodPost, "application/json", http.StatusNoContent},
		{http.MethodPost, "application/json; charset=utf-8", http.StatusNoContent},
		{http.MethodPost, "text/plain", http.StatusUnsupportedMediaType},
		{http.MethodPost, "", http.StatusUnsupportedMediaType},
		{http.MethodGet, "", http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/", strings.NewReader("{}"))
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "%s %q", tt.method, tt.contentType)
	}
}

func TestSecureHeadersAndAPIVersion(t *testing.T) {
	h := middleware.SecureHeaders(middleware.APIVersion("1.2.3")(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1.2.3", rec.Header().Get("X-API-Version"))
}
