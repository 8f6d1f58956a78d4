package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(mw ...gin.HandlerFunc) (*gin.Engine, *int) {
	calls := 0
	r := gin.New()
	r.Use(mw...)
	r.Any("/fn", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r, &calls
}

func TestCORS_Preflight(t *testing.T) {
	r, calls := newTestRouter(CORS())

	req := httptest.NewRequest(http.MethodOptions, "/fn", nil)
	req.Header.Set("Origin", "https://findie.app")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Zero(t, *calls, "preflight must not reach the function")
}

func TestCORS_HeadersOnEveryResponse(t *testing.T) {
	r, calls := newTestRouter(CORS())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fn", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, CORSAllowHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r, _ := newTestRouter(RequestLogger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fn", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodPost, "/fn", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestRecoveryWithLogger(t *testing.T) {
	r, _ := newTestRouter(RequestLogger(), RecoveryWithLogger())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, rec.Body.String())
}

func TestMetrics_PassesThrough(t *testing.T) {
	r, calls := newTestRouter(Metrics())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fn", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
