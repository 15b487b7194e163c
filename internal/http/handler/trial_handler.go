package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/http/middleware"
	"github.com/pitchline/pitchline-api/internal/service"
)

// TrialHandler exposes the trial workflow.
type TrialHandler struct {
	Trials *service.TrialService
}

func NewTrialHandler(trials *service.TrialService) *TrialHandler {
	return &TrialHandler{Trials: trials}
}

func (h *TrialHandler) List(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	filter := domain.TrialFilter{
		Status:   c.Query("status"),
		PlayerID: c.Query("playerId"),
	}
	trials, err := h.Trials.List(c.Request.Context(), grant.TenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trials": trials})
}

func (h *TrialHandler) Get(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	trial, err := h.Trials.Get(c.Request.Context(), grant.TenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trial)
}

func (h *TrialHandler) Schedule(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.ScheduleTrialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	trial, err := h.Trials.Schedule(c.Request.Context(), grant.TenantID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trial)
}

func (h *TrialHandler) Update(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.UpdateTrialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	trial, err := h.Trials.Update(c.Request.Context(), grant.TenantID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trial)
}

func (h *TrialHandler) Complete(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input struct {
		Rating int    `json:"rating"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	trial, err := h.Trials.Complete(c.Request.Context(), grant.TenantID, c.Param("id"), input.Rating, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trial)
}

func (h *TrialHandler) Cancel(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	trial, err := h.Trials.Cancel(c.Request.Context(), grant.TenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trial)
}

func (h *TrialHandler) Delete(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	if err := h.Trials.Delete(c.Request.Context(), grant.TenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
