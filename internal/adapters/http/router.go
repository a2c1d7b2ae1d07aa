package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/webring/internal/app"
	"github.com/dkeye/webring/internal/config"
)

// SetupRouter wires the REST surface under cfg.BasePath.
// - /members and /members/:id are plain JSON lookups
// - /embed/* is called cross-origin from member sites and carries CORS
// - /healthz and /metrics live outside the versioned prefix
func SetupRouter(cfg *config.Config, ring *app.Webring) *gin.Engine {
	if cfg.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == config.ModeDebug {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := &handlers{ring: ring, cookie: newPreferenceCookie(cfg.Cookie)}

	api := r.Group(cfg.BasePath)
	api.GET("/members", h.listMembers)
	api.GET("/members/:id", h.getMember)

	embed := api.Group("/embed")
	embed.Use(embedCORS())
	embed.GET("", h.getEmbed)
	embed.GET("/status", h.getStatus)
	embed.POST("/status", h.setStatus)
	// Preflights are answered by the CORS middleware; these routes only
	// make sure the group matches OPTIONS at all.
	embed.OPTIONS("", noContent)
	embed.OPTIONS("/status", noContent)

	log.Info().Str("module", "adapters.http").Str("base", cfg.BasePath).Msg("router setup")
	return r
}

// embedCORS echoes any Origin back and lets cookies through, since the
// widget runs on every member's own domain.
func embedCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
