package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/core/services"
	"github.com/srgjo27/sitterbook/internal/pkg/validator"
)

type BookingHandler struct {
	svc *services.BookingService
	log logrus.FieldLogger
}

func NewBookingHandler(svc *services.BookingService, log logrus.FieldLogger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

func (h *BookingHandler) RegisterRoutes(api *gin.RouterGroup) {
	br := api.Group("/booking-requests")
	{
		br.POST("", h.CreateBookingRequest)
		br.GET("/:id", h.GetBookingRequest)
		br.POST("/:id/recipients", h.NotifyRecipients)
		br.GET("/:id/quote", h.PreviewCost)
		br.POST("/:id/accept", h.AcceptBookingRequest)
		br.POST("/:id/decline", h.DeclineBookingRequest)
		br.POST("/:id/cancel", h.CancelBookingRequest)
		br.POST("/:id/complete", h.CompleteBookingRequest)
		br.POST("/:id/payment", h.MarkPaid)
		br.GET("/:id/audit", h.AuditBookingRequest)
	}
}

func (h *BookingHandler) CreateBookingRequest(c *gin.Context) {
	var req services.CreateBookingRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.CreateBookingRequest(c.Request.Context(), req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusCreated, resp)
}

func (h *BookingHandler) GetBookingRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetBookingRequest(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) NotifyRecipients(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.NotifyRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.NotifyRecipients(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) PreviewCost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	fields := map[string]string{}
	sitterID, err := uuid.Parse(c.Query("sitter_id"))
	if err != nil {
		fields["sitter_id"] = "uuid"
	}
	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		fields["service_id"] = "uuid"
	}
	if len(fields) > 0 {
		validationFailed(c, fields)
		return
	}

	resp, err := h.svc.PreviewCost(c.Request.Context(), id, sitterID, serviceID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) AcceptBookingRequest(c *gin.Context) {
	id, sitterID, ok := h.respondTarget(c)
	if !ok {
		return
	}

	resp, err := h.svc.AcceptBookingRequest(c.Request.Context(), id, sitterID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) DeclineBookingRequest(c *gin.Context) {
	id, sitterID, ok := h.respondTarget(c)
	if !ok {
		return
	}

	resp, err := h.svc.DeclineBookingRequest(c.Request.Context(), id, sitterID)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) CancelBookingRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.CancelRequest
	if c.Request.ContentLength != 0 && !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.CancelBookingRequest(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) CompleteBookingRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.svc.CompleteBookingRequest(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req services.MarkPaidRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.svc.MarkPaid(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

func (h *BookingHandler) AuditBookingRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := h.svc.AuditBookingRequest(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	success(c, http.StatusOK, resp)
}

// respondTarget reads the booking id from the path and the responding
// sitter from the body.
func (h *BookingHandler) respondTarget(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, ok := pathID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	var req services.RespondRequest
	if !h.bind(c, &req) {
		return uuid.Nil, uuid.Nil, false
	}
	if fields := validator.Validate(req); fields != nil {
		validationFailed(c, fields)
		return uuid.Nil, uuid.Nil, false
	}
	return id, uuid.MustParse(req.SitterID), true
}

func (h *BookingHandler) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return false
	}
	return true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationFailed(c, map[string]string{"id": "uuid"})
		return uuid.Nil, false
	}
	return id, true
}
