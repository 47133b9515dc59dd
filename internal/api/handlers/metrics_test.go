package handlers_test

import (
	"net/http"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/stretchr/testify/assert"

	"github.com/mongotesting/contacts-service/internal/api/handlers"
	"github.com/mongotesting/contacts-service/internal/testutils"
)

func TestMetrics(t *testing.T) {
	metrics.GetOrCreateCounter(`handlers_test_exported_total`).Inc()

	router := testutils.SetupTestRouter()
	router.GET("/metrics", handlers.Metrics)

	w := testutils.PerformRequest(router, "GET", "/metrics", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "handlers_test_exported_total 1")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
