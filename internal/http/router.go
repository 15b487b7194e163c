package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pitchline/pitchline-api/internal/authz"
	"github.com/pitchline/pitchline-api/internal/config"
	"github.com/pitchline/pitchline-api/internal/http/handler"
	"github.com/pitchline/pitchline-api/internal/http/middleware"
	"github.com/pitchline/pitchline-api/internal/identity"
)

// NewRouter wires Gin routes and middleware. Every /api route passes
// through the authorization gate; handlers receive an established
// tenant grant and never see unauthorized traffic.
func NewRouter(
	cfg config.Config,
	gate *authz.Gate,
	provider identity.Provider,
	rateLimiter *middleware.RateLimiter,
	players *handler.PlayerHandler,
	scouting *handler.ScoutingHandler,
	trials *handler.TrialHandler,
	events *handler.EventHandler,
	dashboard *handler.DashboardHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.RequireTenant(gate, provider))
	{
		api.GET("/me", dashboard.Me)
		api.GET("/dashboard/stats", dashboard.Stats)

		playersGroup := api.Group("/players")
		{
			playersGroup.GET("", players.List)
			playersGroup.POST("", players.Create)
			playersGroup.GET("/:id", players.Get)
			playersGroup.PUT("/:id", players.Update)
			playersGroup.DELETE("/:id", players.Delete)
		}

		requestsGroup := api.Group("/requests")
		{
			requestsGroup.GET("", scouting.List)
			requestsGroup.POST("", scouting.Create)
			requestsGroup.GET("/:id", scouting.Get)
			requestsGroup.PUT("/:id", scouting.Update)
			requestsGroup.DELETE("/:id", scouting.Delete)
		}

		trialsGroup := api.Group("/trials")
		{
			trialsGroup.GET("", trials.List)
			trialsGroup.POST("", trials.Schedule)
			trialsGroup.GET("/:id", trials.Get)
			trialsGroup.PUT("/:id", trials.Update)
			trialsGroup.POST("/:id/complete", trials.Complete)
			trialsGroup.POST("/:id/cancel", trials.Cancel)
			trialsGroup.DELETE("/:id", trials.Delete)
		}

		eventsGroup := api.Group("/events")
		{
			eventsGroup.GET("", events.List)
			eventsGroup.POST("", events.Create)
			eventsGroup.GET("/:id", events.Get)
			eventsGroup.PUT("/:id", events.Update)
			eventsGroup.DELETE("/:id", events.Delete)
		}

		api.GET("/calendar/export", events.Export)
	}

	return r
}
