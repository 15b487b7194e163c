package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/http/middleware"
	"github.com/pitchline/pitchline-api/internal/service"
)

// PlayerHandler exposes player CRUD.
type PlayerHandler struct {
	Players *service.PlayerService
}

func NewPlayerHandler(players *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{Players: players}
}

func (h *PlayerHandler) List(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	filter := domain.PlayerFilter{
		Position: c.Query("position"),
		Club:     c.Query("club"),
		Search:   c.Query("search"),
	}
	players, err := h.Players.List(c.Request.Context(), grant.TenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (h *PlayerHandler) Get(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	player, err := h.Players.Get(c.Request.Context(), grant.TenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (h *PlayerHandler) Create(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.CreatePlayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	player, err := h.Players.Create(c.Request.Context(), grant.TenantID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

func (h *PlayerHandler) Update(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.CreatePlayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	player, err := h.Players.Update(c.Request.Context(), grant.TenantID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (h *PlayerHandler) Delete(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	if err := h.Players.Delete(c.Request.Context(), grant.TenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
