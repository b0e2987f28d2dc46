package handler

import (
	"net/http"

	"scoutscore_backend/internal/prospects/service"
	"scoutscore_backend/internal/prospects/transport"
	"scoutscore_backend/platform/httpkit"
	"scoutscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for prospects.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new prospects handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers prospect routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.PUT("/:id/stats", h.UpdateStats)
	rg.POST("/:id/messages", h.CaptureMessage)
	rg.POST("/:id/clicks", h.CaptureClick)
	rg.POST("/:id/timeline-events", h.CaptureTimelineEvent)
	rg.POST("/:id/graph-captures", h.CaptureGraph)
	rg.POST("/:id/outcome", h.RecordOutcome)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListProspectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.List(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) Update(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	var req transport.UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) UpdateStats(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	var req transport.UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.UpdateStats(c.Request.Context(), id, identity.UserID(), req)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id, identity.UserID())) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CaptureMessage(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	var req transport.CaptureMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.CaptureMessage(c.Request.Context(), id, identity.UserID(), req)) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "captured"})
}

func (h *Handler) CaptureClick(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	var req transport.CaptureClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.CaptureClick(c.Request.Context(), id, identity.UserID(), req)) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "captured"})
}

func (h *Handler) CaptureTimelineEvent(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	var req transport.CaptureTimelineEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.CaptureTimelineEvent(c.Request.Context(), id, identity.UserID(), req)) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "captured"})
}

func (h *Handler) CaptureGraph(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	var req transport.CaptureGraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.CaptureGraph(c.Request.Context(), id, identity.UserID(), req)) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, gin.H{"status": "captured"})
}

func (h *Handler) RecordOutcome(c *gin.Context) {
	id, identity, ok := h.prospectScope(c)
	if !ok {
		return
	}

	var req transport.RecordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.RecordOutcome(c.Request.Context(), id, identity.UserID(), req)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// prospectScope parses the path ID and resolves the caller's identity.
func (h *Handler) prospectScope(c *gin.Context) (uuid.UUID, httpkit.Identity, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, nil, false
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, nil, false
	}
	return id, identity, true
}
