package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-access-api/internal/metrics"
	"clinic-access-api/internal/models"
	"clinic-access-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCityService is a mock implementation of the CityService interface
type MockCityService struct {
	mock.Mock
}

func (m *MockCityService) TopCities(ctx context.Context, n int) ([]models.CityCount, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CityCount), args.Error(1)
}

func TestCityHandler_Cities(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		expectedTop    int
		mockCounts     []models.CityCount
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:        "default top",
			expectedTop: 20,
			mockCounts: []models.CityCount{
				{City: "Austin, Texas", Count: 2},
			},
			expectedStatus: http.StatusOK,
			expectedBody: []interface{}{
				map[string]interface{}{"city": "Austin, Texas", "count": 2.0},
			},
		},
		{
			name:           "explicit top",
			query:          "5",
			expectedTop:    5,
			mockCounts:     []models.CityCount{},
			expectedStatus: http.StatusOK,
			expectedBody:   []interface{}{},
		},
		{
			name:           "invalid top",
			query:          "many",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "query parameter 'top' must be a positive integer"},
		},
		{
			name:           "negative top",
			query:          "-1",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "query parameter 'top' must be a positive integer"},
		},
		{
			name:           "service rejects top",
			expectedTop:    20,
			mockError:      fmt.Errorf("service: %w", service.ErrInvalidTopN),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "query parameter 'top' must be a positive integer"},
		},
		{
			name:           "service error",
			expectedTop:    20,
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockCityService)
			handler := NewCityHandler(mockSvc, 20, metrics.New())

			if tt.expectedTop > 0 {
				mockSvc.On("TopCities", mock.Anything, tt.expectedTop).Return(tt.mockCounts, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/cities", nil)
			if tt.query != "" {
				q := req.URL.Query()
				q.Add("top", tt.query)
				req.URL.RawQuery = q.Encode()
			}
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.Cities(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestCityHandler_CitiesChart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockCityService)
	m := metrics.New()
	handler := NewCityHandler(mockSvc, 20, m)

	mockSvc.On("TopCities", mock.Anything, 20).Return([]models.CityCount{
		{City: "Dallas, Texas", Count: 1},
		{City: "Austin, Texas", Count: 2},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/cities/chart", nil)

	handler.CitiesChart(c)

	require.Equal(t, http.StatusOK, w.Code)

	var fig struct {
		Data []struct {
			Type string   `json:"type"`
			X    []int    `json:"x"`
			Y    []string `json:"y"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fig))
	require.Len(t, fig.Data, 1)
	assert.Equal(t, "bar", fig.Data[0].Type)
	assert.Equal(t, []int{1, 2}, fig.Data[0].X)
	assert.Equal(t, []string{"Dallas, Texas", "Austin, Texas"}, fig.Data[0].Y)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Visualizations.WithLabelValues("city_chart")))
	mockSvc.AssertExpectations(t)
}
