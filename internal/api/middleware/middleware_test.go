package middleware_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mongotesting/contacts-service/internal/api/dto"
	"github.com/mongotesting/contacts-service/internal/api/middleware"
	domainerrors "github.com/mongotesting/contacts-service/internal/domain/errors"
	"github.com/mongotesting/contacts-service/internal/testutils"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	loggingMw := middleware.NewLoggingMiddlewareWithLogger(zerolog.New(buf))
	router := testutils.SetupTestRouter()
	router.Use(loggingMw.RequestLogger())
	router.Use(loggingMw.Logger())
	router.Use(middleware.NewErrorMiddleware().Recovery())
	return router
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = middleware.GetRequestID(c)
		logger := middleware.GetRequestLogger(c)
		logger.Info().Msg("inside handler")
		c.Status(http.StatusNoContent)
	})

	w := testutils.PerformRequest(router, "GET", "/ping", nil, nil)

	testutils.AssertStatusCode(t, http.StatusNoContent, w)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))

	entries := testutils.JSONLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "inside handler", entries[0]["message"])
	assert.Equal(t, seen, entries[0]["request_id"])
	assert.Equal(t, "request completed", entries[1]["message"])
	assert.Equal(t, "info", entries[1]["level"])
	assert.Equal(t, float64(http.StatusNoContent), entries[1]["status"])
}

func TestRequestLogger_ReusesIncomingRequestID(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := testutils.PerformRequest(router, "GET", "/ping", nil, map[string]string{
		middleware.RequestIDHeader: "req-42",
	})

	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	entries := testutils.JSONLines(t, &buf)
	require.NotEmpty(t, entries)
	assert.Equal(t, "req-42", entries[len(entries)-1]["request_id"])
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	testutils.PerformRequest(router, "GET", "/bad", nil, nil)
	testutils.PerformRequest(router, "GET", "/broken", nil, nil)

	entries := testutils.JSONLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "error", entries[1]["level"])
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	router := newLoggedRouter(&buf)
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := testutils.PerformRequest(router, "GET", "/panic", nil, nil)

	testutils.AssertStatusCode(t, http.StatusInternalServerError, w)

	var response dto.ErrorResponse
	testutils.ParseJSONResponse(t, w, &response)
	assert.Equal(t, domainerrors.ErrCodeInternal, response.Code)
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domainerrors.NewValidationError("invalid", "lastName"), http.StatusBadRequest, domainerrors.ErrCodeValidation},
		{"not found", domainerrors.NewNotFoundError("contact", "42"), http.StatusNotFound, domainerrors.ErrCodeNotFound},
		{"unavailable", domainerrors.NewServiceUnavailableError("docdb", assert.AnError), http.StatusServiceUnavailable, domainerrors.ErrCodeServiceUnavailable},
		{"plain error", assert.AnError, http.StatusInternalServerError, domainerrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testutils.NewTestContext()
			c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

			middleware.HandleError(c, tt.err)

			assert.True(t, c.IsAborted())
			testutils.AssertStatusCode(t, tt.wantStatus, w)

			var response dto.ErrorResponse
			testutils.ParseJSONResponse(t, w, &response)
			assert.Equal(t, tt.wantCode, response.Code)
		})
	}
}

func TestHandleError_Nil(t *testing.T) {
	c, _ := testutils.NewTestContext()
	middleware.HandleError(c, nil)
	assert.False(t, c.IsAborted())
}

func TestMetrics(t *testing.T) {
	set := metrics.NewSet()
	router := testutils.SetupTestRouter()
	router.Use(middleware.Metrics(set))
	router.GET("/contacts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	testutils.PerformRequest(router, "GET", "/contacts/1", nil, nil)
	testutils.PerformRequest(router, "GET", "/contacts/2", nil, nil)
	testutils.PerformRequest(router, "GET", "/missing", nil, nil)

	var buf bytes.Buffer
	set.WritePrometheus(&buf)
	out := buf.String()

	assert.Contains(t, out, `http_requests_total{method="GET",route="/contacts/:id",status="200"} 2`)
	assert.Contains(t, out, `http_requests_total{method="GET",route="unknown",status="404"} 1`)
	assert.Contains(t, out, `http_request_duration_seconds_count{method="GET",route="/contacts/:id"} 2`)
}

func TestMetrics_UnknownMethodsShareLabel(t *testing.T) {
	set := metrics.NewSet()
	router := testutils.SetupTestRouter()
	router.Use(middleware.Metrics(set))

	testutils.PerformRequest(router, "BREW", "/missing", nil, nil)
	testutils.PerformRequest(router, "X-ANYTHING-1", "/missing", nil, nil)
	testutils.PerformRequest(router, "DELETE", "/missing", nil, nil)

	var buf bytes.Buffer
	set.WritePrometheus(&buf)
	out := buf.String()

	assert.Contains(t, out, `http_requests_total{method="other",route="unknown",status="404"} 2`)
	assert.Contains(t, out, `http_requests_total{method="DELETE",route="unknown",status="404"} 1`)
	assert.NotContains(t, out, "BREW")
	assert.NotContains(t, out, "X-ANYTHING-1")
}
