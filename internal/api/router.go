package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recipebox/internal/platform/metrics"
)

// NewRouter wires middleware and routes onto a new gin engine. Forwarded client addresses are
// only honored when the direct peer is in trustedProxies; an empty list trusts no proxy.
func NewRouter(h *Handler, mw *Middleware, m *metrics.Metrics, allowedOrigins, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(mw.RequestID(), mw.Logger(), mw.Metrics())

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", ViewerHeader, requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	limited := r.Group("/", mw.RateLimit())
	limited.GET("/recipes/search", h.SearchRecipes)
	limited.GET("/recipes/:id", h.GetRecipe)
	limited.POST("/shopping-list", h.ShoppingList)
	limited.POST("/ingredients/aggregate", h.AggregateIngredients)
	limited.POST("/ingredients/scale", h.ScaleIngredients)
	limited.GET("/ingredients/category", h.CategorizeIngredient)

	return r, nil
}
