package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mongotesting/contacts-service/internal/api/handlers"
	"github.com/mongotesting/contacts-service/internal/mocks"
	"github.com/mongotesting/contacts-service/internal/testutils"
)

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	mockCache := mocks.NewMockCacheClient()
	mockDocDB := mocks.NewMockDocDBClient()

	mockCache.On("Ping", mock.Anything).Return(nil)
	mockDocDB.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(mockCache, mockDocDB)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutils.PerformRequest(router, "GET", "/health", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response handlers.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "healthy", response.Components["cache"])
	assert.Equal(t, "healthy", response.Components["docdb"])

	mockCache.AssertExpectations(t)
	mockDocDB.AssertExpectations(t)
}

func TestHealthHandler_Health_CacheDisabled(t *testing.T) {
	mockDocDB := mocks.NewMockDocDBClient()
	mockDocDB.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(nil, mockDocDB)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutils.PerformRequest(router, "GET", "/health", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)

	var response handlers.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "disabled", response.Components["cache"])
}

func TestHealthHandler_Health_DocDBUnhealthy(t *testing.T) {
	mockCache := mocks.NewMockCacheClient()
	mockDocDB := mocks.NewMockDocDBClient()

	mockCache.On("Ping", mock.Anything).Return(nil)
	mockDocDB.On("Ping", mock.Anything).Return(assert.AnError)

	handler := handlers.NewHealthHandler(mockCache, mockDocDB)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutils.PerformRequest(router, "GET", "/health", nil, nil)

	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	var response handlers.HealthResponse
	testutils.ParseJSONResponse(t, w, &response)

	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "healthy", response.Components["cache"])
	assert.Equal(t, "unhealthy", response.Components["docdb"])
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		mockCache := mocks.NewMockCacheClient()
		mockDocDB := mocks.NewMockDocDBClient()
		mockCache.On("Ping", mock.Anything).Return(nil)
		mockDocDB.On("Ping", mock.Anything).Return(nil)

		router := testutils.SetupTestRouter()
		router.GET("/ready", handlers.NewHealthHandler(mockCache, mockDocDB).Ready)

		w := testutils.PerformRequest(router, "GET", "/ready", nil, nil)
		testutils.AssertStatusCode(t, http.StatusOK, w)
	})

	t.Run("cache down", func(t *testing.T) {
		mockCache := mocks.NewMockCacheClient()
		mockDocDB := mocks.NewMockDocDBClient()
		mockCache.On("Ping", mock.Anything).Return(assert.AnError)

		router := testutils.SetupTestRouter()
		router.GET("/ready", handlers.NewHealthHandler(mockCache, mockDocDB).Ready)

		w := testutils.PerformRequest(router, "GET", "/ready", nil, nil)
		testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)
		mockDocDB.AssertNotCalled(t, "Ping", mock.Anything)
	})

	t.Run("docdb down without cache", func(t *testing.T) {
		mockDocDB := mocks.NewMockDocDBClient()
		mockDocDB.On("Ping", mock.Anything).Return(assert.AnError)

		router := testutils.SetupTestRouter()
		router.GET("/ready", handlers.NewHealthHandler(nil, mockDocDB).Ready)

		w := testutils.PerformRequest(router, "GET", "/ready", nil, nil)
		testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)

		var response map[string]string
		testutils.ParseJSONResponse(t, w, &response)
		assert.Equal(t, "docdb unavailable", response["reason"])
	})
}

func TestHealthHandler_Live(t *testing.T) {
	handler := handlers.NewHealthHandler(nil, mocks.NewMockDocDBClient())

	router := testutils.SetupTestRouter()
	router.GET("/live", handler.Live)

	w := testutils.PerformRequest(router, "GET", "/live", nil, nil)

	testutils.AssertStatusCode(t, http.StatusOK, w)
}
