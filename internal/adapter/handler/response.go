package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/domain"
)

func success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func errorResponse(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func errorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func validationFailed(c *gin.Context, fields map[string]string) {
	errorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", fields)
}

// handleError maps service errors onto the response envelope.
func handleError(c *gin.Context, log logrus.FieldLogger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		validationFailed(c, verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrAlreadyResolved):
		errorResponse(c, http.StatusConflict, "ALREADY_RESOLVED", err.Error())
	case errors.Is(err, domain.ErrNotEligible):
		errorResponse(c, http.StatusConflict, "NOT_ELIGIBLE", err.Error())
	case errors.Is(err, domain.ErrPaymentConflict):
		errorResponse(c, http.StatusConflict, "PAYMENT_CONFLICT", err.Error())
	case errors.Is(err, domain.ErrStateConflict):
		errorResponse(c, http.StatusConflict, "STATE_CONFLICT", err.Error())
	case errors.Is(err, domain.ErrDependency):
		log.WithError(err).Error("dependency failure")
		errorResponse(c, http.StatusServiceUnavailable, "DEPENDENCY_FAILURE", "a backing service is unavailable, retry later")
	default:
		log.WithError(err).Error("unhandled error")
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
