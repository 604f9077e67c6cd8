package handler

import (
	"net/http"

	"clinic-access-api/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the handlers, health check, metrics and swagger UI
func NewRouter(cities *CityHandler, states *StateHandler, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/cities", cities.Cities)
	r.GET("/cities/chart", cities.CitiesChart)
	r.GET("/states", states.States)
	r.GET("/states/chart", states.StatesChart)

	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
