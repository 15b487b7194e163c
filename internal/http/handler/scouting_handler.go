package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/http/middleware"
	"github.com/pitchline/pitchline-api/internal/service"
)

// ScoutingHandler exposes scouting request CRUD.
type ScoutingHandler struct {
	Scouting *service.ScoutingService
}

func NewScoutingHandler(scouting *service.ScoutingService) *ScoutingHandler {
	return &ScoutingHandler{Scouting: scouting}
}

func (h *ScoutingHandler) List(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	filter := domain.RequestFilter{
		Status:   c.Query("status"),
		Position: c.Query("position"),
		Search:   c.Query("search"),
	}
	requests, err := h.Scouting.List(c.Request.Context(), grant.TenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *ScoutingHandler) Get(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	request, err := h.Scouting.Get(c.Request.Context(), grant.TenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *ScoutingHandler) Create(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	request, err := h.Scouting.Create(c.Request.Context(), grant.TenantID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *ScoutingHandler) Update(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	request, err := h.Scouting.Update(c.Request.Context(), grant.TenantID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *ScoutingHandler) Delete(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	if err := h.Scouting.Delete(c.Request.Context(), grant.TenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
