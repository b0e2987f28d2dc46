// Package handler exposes the scoring HTTP endpoints.
package handler

import (
	"net/http"

	"scoutscore_backend/internal/scoring/service"
	"scoutscore_backend/internal/scoring/transport"
	"scoutscore_backend/platform/httpkit"
	"scoutscore_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	historyDefaultLimit = 20
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/score", h.Score)
	rg.GET("/:id/score", h.CurrentScore)
	rg.GET("/:id/score/history", h.ScoreHistory)
}

// Score runs a scoring pass for the prospect. dryRun computes without
// persisting; otherwise the result is recorded and cached.
func (h *Handler) Score(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	ident := httpkit.MustGetIdentity(c)
	if ident == nil {
		return
	}

	var req transport.ScoreProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	scoreReq := service.ScoreRequest{
		Input:            req.ToScoreInput(id, ident.UserID()),
		Version:          req.EngineVersion(),
		EnablePersonaFit: req.IncludePersonaFit,
		EnableCTAFit:     req.IncludeCTAFit,
		EnableEmotional:  req.IncludeEmotional,
		HorizonDays:      req.HorizonDays,
		Debug:            req.Debug,
	}

	var result any
	if req.DryRun {
		result, err = h.svc.Compute(c.Request.Context(), scoreReq)
	} else {
		result, err = h.svc.Recompute(c.Request.Context(), scoreReq)
	}
	if err != nil {
		if err == service.ErrRecomputeInProgress {
			httpkit.Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, result)
}

// CurrentScore returns the cached fused score when one exists, falling
// back to the latest persisted run.
func (h *Handler) CurrentScore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	ident := httpkit.MustGetIdentity(c)
	if ident == nil {
		return
	}

	if score, ok := h.svc.CachedScore(c.Request.Context(), id, ident.UserID()); ok {
		httpkit.OK(c, score)
		return
	}

	latest, err := h.svc.LatestScore(c.Request.Context(), id, ident.UserID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, latest)
}

// ScoreHistory lists the prospect's past scoring runs, newest first.
func (h *Handler) ScoreHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	ident := httpkit.MustGetIdentity(c)
	if ident == nil {
		return
	}

	records, err := h.svc.History(c.Request.Context(), id, ident.UserID(), historyDefaultLimit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	entries := make([]transport.ScoreHistoryEntry, len(records))
	for i, rec := range records {
		entries[i] = transport.ScoreHistoryEntry{
			Version:         rec.Version,
			Score:           rec.Result.FinalScore,
			LeadTemperature: string(rec.Result.FinalLeadTemperature),
			ComputedAt:      rec.ComputedAt,
		}
	}
	httpkit.OK(c, entries)
}
