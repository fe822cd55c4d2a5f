package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbpupil/measurement-converter/internal/application/service"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/logging"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/metrics"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/persistance/memory"
	"github.com/vbpupil/measurement-converter/internal/interfaces/http/handler"
	"github.com/vbpupil/measurement-converter/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code             string `json:"code"`
		Message          string `json:"message"`
		ValidationErrors []struct {
			Field string `json:"field"`
		} `json:"validation_errors"`
	} `json:"error"`
	Meta *struct {
		RequestID string `json:"request_id"`
		Version   string `json:"version"`
	} `json:"meta"`
}

type conversion struct {
	Material    string             `json:"material"`
	DensityKgM3 float64            `json:"density_kg_m3"`
	VolumeM3    float64            `json:"volume_m3"`
	Weight      map[string]float64 `json:"weight"`
}

func newServer(t *testing.T, strict bool) http.Handler {
	t.Helper()
	log := logging.NewAdapter(logger.Nop())
	repo := memory.NewMaterialRepository(nil)
	prom := metrics.NewPrometheus("test")

	return handler.NewRouter(handler.RouterConfig{
		Version:            "test",
		Logger:             log,
		Metrics:            prom,
		MetricsHandler:     prom.Handler(),
		MetricsPath:        "/metrics",
		Conversions:        service.NewConversionService(repo, log, prom, strict),
		Materials:          service.NewMaterialService(repo, log),
		CORSAllowedOrigins: []string{"*"},
		MaxRequestSize:     1 << 20,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestConvert_Post(t *testing.T) {
	h := newServer(t, false)

	rec, env := do(t, h, http.MethodPost, "/api/v1/conversions", `{"material": "WATER", "volume_m3": 2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, env.Success)

	var c conversion
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, "water", c.Material)
	assert.Equal(t, 1000.0, c.DensityKgM3)
	assert.Len(t, c.Weight, 3)
	assert.Equal(t, 2.0, c.Weight["tonne"])
	assert.InDelta(t, 2.20462, c.Weight["us_ton"], 1e-9)
	assert.InDelta(t, 1.968414, c.Weight["imperial_ton"], 1e-9)

	require.NotNil(t, env.Meta)
	assert.Equal(t, "test", env.Meta.Version)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), env.Meta.RequestID)
}

func TestConvert_PostNumericMaterial(t *testing.T) {
	h := newServer(t, false)

	rec, env := do(t, h, http.MethodPost, "/api/v1/conversions", `{"material": 2500, "volume_m3": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var c conversion
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, "custom", c.Material)
	assert.Equal(t, 2.5, c.Weight["tonne"])
}

func TestConvert_Query(t *testing.T) {
	h := newServer(t, false)

	rec, env := do(t, h, http.MethodGet, "/api/v1/conversions?material=gold&volume_m3=0.001", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var c conversion
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.InDelta(t, 0.0193, c.Weight["tonne"], 1e-12)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"unsupported", false, http.MethodPost, "/api/v1/conversions", `{"material": "unobtainium", "volume_m3": 1}`, http.StatusUnprocessableEntity, "UNSUPPORTED_MATERIAL"},
		{"missing material", false, http.MethodPost, "/api/v1/conversions", `{"volume_m3": 1}`, http.StatusBadRequest, "NO_MATERIAL_SELECTED"},
		{"missing material strict", true, http.MethodPost, "/api/v1/conversions", `{"volume_m3": 1}`, http.StatusBadRequest, "EMPTY_MATERIAL"},
		{"negative volume", false, http.MethodPost, "/api/v1/conversions", `{"material": "water", "volume_m3": -1}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"zero density", false, http.MethodPost, "/api/v1/conversions", `{"material": 0, "volume_m3": 1}`, http.StatusBadRequest, "INVALID_DENSITY"},
		{"malformed body", false, http.MethodPost, "/api/v1/conversions", `{"material": true}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad query volume", false, http.MethodGet, "/api/v1/conversions?material=water&volume_m3=lots", "", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, newServer(t, tt.strict), tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestConvert_UnsupportedMessageNamesMaterial(t *testing.T) {
	_, env := do(t, newServer(t, false), http.MethodPost, "/api/v1/conversions", `{"material": "Unobtainium", "volume_m3": 1}`)
	require.NotNil(t, env.Error)
	assert.Equal(t, "unsupported material: unobtainium", env.Error.Message)
}

func TestConvert_RequiresJSONContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversions", strings.NewReader(`{"material": "water", "volume_m3": 1}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	newServer(t, false).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestMaterials_List(t *testing.T) {
	h := newServer(t, false)

	rec, env := do(t, h, http.MethodGet, "/api/v1/materials?search=wood&sort_by=density&sort_order=desc&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page struct {
		Items []struct {
			Name        string  `json:"name"`
			DensityKgM3 float64 `json:"density_kg_m3"`
		} `json:"items"`
		Total   int64 `json:"total"`
		HasMore bool  `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(7), page.Total)
	assert.True(t, page.HasMore)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "wood_bud", page.Items[0].Name)
	assert.Equal(t, "wood_larch", page.Items[1].Name)
}

func TestMaterials_ListBadParams(t *testing.T) {
	h := newServer(t, false)

	for _, target := range []string{
		"/api/v1/materials?min_density=heavy",
		"/api/v1/materials?limit=ten",
		"/api/v1/materials?sort_by=colour",
	} {
		rec, env := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code, target)
	}
}

func TestMaterials_Get(t *testing.T) {
	h := newServer(t, false)

	rec, env := do(t, h, http.MethodGet, "/api/v1/materials/Gold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name": "gold", "density_kg_m3": 19300}`, string(env.Data))

	rec, env = do(t, h, http.MethodGet, "/api/v1/materials/sunflower%20oil", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name": "sunflower oil", "density_kg_m3": 915}`, string(env.Data))

	rec, env = do(t, h, http.MethodGet, "/api/v1/materials/adamantium", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Checks  map[string]struct {
			Status string `json:"status"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, "healthy", body.Checks["density_table"].Status)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newServer(t, false)
	do(t, h, http.MethodPost, "/api/v1/conversions", `{"material": "water", "volume_m3": 1}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_conversions_total{material="water",outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), `test_http_requests_total{method="POST",route="/api/v1/conversions`)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newServer(t, false)

	rec, env := do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, env = do(t, h, http.MethodDelete, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Error.Code)
}

func TestConvert_ContextErrors(t *testing.T) {
	expired, cancelExpired := context.WithTimeout(context.Background(), -time.Second)
	defer cancelExpired()
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	for _, tc := range []struct {
		ctx    context.Context
		status int
		code   string
	}{
		{expired, http.StatusGatewayTimeout, "TIMEOUT"},
		{canceled, http.StatusServiceUnavailable, "REQUEST_CANCELED"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/conversions?material=water&volume_m3=1", nil).WithContext(tc.ctx)
		rec := httptest.NewRecorder()
		newServer(t, false).ServeHTTP(rec, req)

		assert.Equal(t, tc.status, rec.Code, tc.code)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.NotNil(t, env.Error)
		assert.Equal(t, tc.code, env.Error.Code)
	}
}
