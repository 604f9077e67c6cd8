package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"clinic-access-api/internal/chart"
	"clinic-access-api/internal/metrics"
	"clinic-access-api/internal/models"
	"clinic-access-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CityHandler handles the clinic-per-city table and bar chart requests
type CityHandler struct {
	service    CityService
	defaultTop int
	metrics    *metrics.Metrics
}

// CityService interface for dependency injection
type CityService interface {
	TopCities(context.Context, int) ([]models.CityCount, error)
}

// NewCityHandler creates a new city handler
func NewCityHandler(svc CityService, defaultTop int, m *metrics.Metrics) *CityHandler {
	return &CityHandler{service: svc, defaultTop: defaultTop, metrics: m}
}

// Cities handles GET /cities requests
//
//	@Summary	Cities with the most clinics
//	@Produce	json
//	@Param		top	query		int	false	"number of cities"
//	@Success	200	{array}		models.CityCount
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/cities [get]
func (h *CityHandler) Cities(c *gin.Context) {
	counts, ok := h.topCities(c, "city_table")
	if !ok {
		return
	}
	h.metrics.Visualizations.WithLabelValues("city_table").Inc()
	c.JSON(http.StatusOK, counts)
}

// CitiesChart handles GET /cities/chart requests
//
//	@Summary	Horizontal bar chart of the cities with the most clinics
//	@Produce	json
//	@Param		top	query		int	false	"number of cities"
//	@Success	200	{object}	chart.Figure
//	@Failure	400	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/cities/chart [get]
func (h *CityHandler) CitiesChart(c *gin.Context) {
	counts, ok := h.topCities(c, "city_chart")
	if !ok {
		return
	}
	h.metrics.Visualizations.WithLabelValues("city_chart").Inc()
	c.JSON(http.StatusOK, chart.CityBar(counts))
}

func (h *CityHandler) topCities(c *gin.Context, kind string) ([]models.CityCount, bool) {
	top := h.defaultTop
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'top' must be a positive integer"})
			return nil, false
		}
		top = n
	}

	counts, err := h.service.TopCities(c.Request.Context(), top)
	if err != nil {
		h.metrics.Failures.WithLabelValues(kind).Inc()
		if errors.Is(err, service.ErrInvalidTopN) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'top' must be a positive integer"})
			return nil, false
		}
		log.Error().Err(err).Str("kind", kind).Msg("failed to build city counts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}

	return counts, true
}
