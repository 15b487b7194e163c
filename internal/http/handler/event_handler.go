package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/http/middleware"
	"github.com/pitchline/pitchline-api/internal/service"
)

// EventHandler exposes the tenant calendar.
type EventHandler struct {
	Events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{Events: events}
}

func (h *EventHandler) List(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	filter, ok := eventFilterFromQuery(c)
	if !ok {
		return
	}
	events, err := h.Events.List(c.Request.Context(), grant.TenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) Get(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	event, err := h.Events.Get(c.Request.Context(), grant.TenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	event, err := h.Events.Create(c.Request.Context(), grant.TenantID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	var input service.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c)
		return
	}
	event, err := h.Events.Update(c.Request.Context(), grant.TenantID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	if err := h.Events.Delete(c.Request.Context(), grant.TenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export streams the tenant's calendar as an .ics download.
func (h *EventHandler) Export(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	filter, ok := eventFilterFromQuery(c)
	if !ok {
		return
	}
	document, err := h.Events.ExportCalendar(c.Request.Context(), grant.TenantID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", document)
}

func eventFilterFromQuery(c *gin.Context) (domain.EventFilter, bool) {
	filter := domain.EventFilter{Kind: c.Query("kind")}
	for param, dst := range map[string]*time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": param + " must be RFC 3339."})
			return domain.EventFilter{}, false
		}
		*dst = parsed
	}
	return filter, true
}
