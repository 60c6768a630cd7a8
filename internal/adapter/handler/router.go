package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(booking *BookingHandler, health *HealthHandler, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	router.GET("/healthz", health.Check)

	api := router.Group("/api/v1")
	booking.RegisterRoutes(api)

	return router
}
