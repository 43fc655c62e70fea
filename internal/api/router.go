package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pos-floor-frontend/config"
	"pos-floor-frontend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.Role())
	{
		api.GET("/floors", h.GetFloors)
		api.GET("/floors/:floor_id/canvas", h.GetCanvas)
		api.GET("/floors/:floor_id/cards", h.GetCards)
		api.POST("/floors/:floor_id/tables", h.AddTable)
		api.DELETE("/floors/:floor_id/tables/:table_id", h.DeleteTable)

		api.GET("/tables/:table_id", h.GetTable)
		api.POST("/tables/:table_id/status", h.SetTableStatus)
		api.POST("/tables/:table_id/actions/:action", h.InvokeAction)

		api.GET("/dashboard", caching, h.GetDashboard)
		api.POST("/refresh", h.Refresh)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
