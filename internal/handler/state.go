package handler

import (
	"context"
	"errors"
	"net/http"

	"clinic-access-api/internal/chart"
	"clinic-access-api/internal/metrics"
	"clinic-access-api/internal/models"
	"clinic-access-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StateHandler handles the per-state table and USA map requests
type StateHandler struct {
	service StateService
	metrics *metrics.Metrics
}

// StateService interface for dependency injection
type StateService interface {
	StateTable(context.Context) ([]models.StateRow, models.JoinReport, error)
}

// StateTableResponse is the body of GET /states
type StateTableResponse struct {
	Rows   []models.StateRow `json:"rows"`
	Report models.JoinReport `json:"report"`
}

// NewStateHandler creates a new state handler
func NewStateHandler(svc StateService, m *metrics.Metrics) *StateHandler {
	return &StateHandler{service: svc, metrics: m}
}

// States handles GET /states requests
//
//	@Summary	Clinic counts joined with postal codes and gestational policies
//	@Produce	json
//	@Success	200	{object}	StateTableResponse
//	@Failure	422	{object}	map[string]interface{}
//	@Failure	500	{object}	map[string]string
//	@Router		/states [get]
func (h *StateHandler) States(c *gin.Context) {
	rows, report, ok := h.stateTable(c, "state_table")
	if !ok {
		return
	}
	if rows == nil {
		rows = []models.StateRow{}
	}
	h.metrics.Visualizations.WithLabelValues("state_table").Inc()
	c.JSON(http.StatusOK, StateTableResponse{Rows: rows, Report: report})
}

// StatesChart handles GET /states/chart requests
//
//	@Summary	Choropleth of clinic counts per state
//	@Produce	json
//	@Success	200	{object}	chart.Figure
//	@Failure	422	{object}	map[string]interface{}
//	@Failure	500	{object}	map[string]string
//	@Router		/states/chart [get]
func (h *StateHandler) StatesChart(c *gin.Context) {
	rows, _, ok := h.stateTable(c, "state_chart")
	if !ok {
		return
	}
	h.metrics.Visualizations.WithLabelValues("state_chart").Inc()
	c.JSON(http.StatusOK, chart.StateChoropleth(rows))
}

func (h *StateHandler) stateTable(c *gin.Context, kind string) ([]models.StateRow, models.JoinReport, bool) {
	rows, report, err := h.service.StateTable(c.Request.Context())

	h.metrics.UnmatchedState.WithLabelValues("missing_policy").Add(float64(len(report.MissingPolicy)))
	h.metrics.UnmatchedState.WithLabelValues("missing_locations").Add(float64(len(report.MissingLocations)))
	h.metrics.UnmatchedState.WithLabelValues("missing_code").Add(float64(len(report.MissingCode)))

	if err != nil {
		h.metrics.Failures.WithLabelValues(kind).Inc()
		if errors.Is(err, service.ErrJoinMismatch) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "report": report})
			return nil, report, false
		}
		log.Error().Err(err).Str("kind", kind).Msg("failed to build state table")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, report, false
	}

	return rows, report, true
}
