package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	analyticsapp "github.com/posalpro/backend/internal/application/analytics"
)

// AnalyticsHandler handles usage event ingest endpoints
type AnalyticsHandler struct {
	BaseHandler
	ingestService *analyticsapp.IngestService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(ingestService *analyticsapp.IngestService) *AnalyticsHandler {
	return &AnalyticsHandler{ingestService: ingestService}
}

// TrackBatch handles POST /analytics/events
func (h *AnalyticsHandler) TrackBatch(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req analyticsapp.TrackBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var userID *uuid.UUID
	if id, err := getUserID(c); err == nil {
		userID = &id
	}

	resp, err := h.ingestService.TrackBatch(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Recent handles GET /analytics/events
func (h *AnalyticsHandler) Recent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	events, err := h.ingestService.Recent(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}
