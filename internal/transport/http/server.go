package http

import (
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/akorchagin/pairchat-server/internal/auth"
	"github.com/akorchagin/pairchat-server/internal/config"
	"github.com/akorchagin/pairchat-server/internal/core"
	"github.com/akorchagin/pairchat-server/internal/service/dm"
	"github.com/akorchagin/pairchat-server/internal/store"
)

// NewServer builds the HTTP server with all API routes.
func NewServer(hub *core.Hub, authService *auth.Service, dmService *dm.Service, st store.Store, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(MetricsMiddleware())
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, authService, dmService, logger)))

	apiHandlers := NewAPIHandlers(authService, logger)
	userHandlers := NewUserHandlers(st, logger)
	dmHandlers := NewDMHandlers(dmService, logger)

	api := router.Group("/api")
	api.POST("/auth/signup", apiHandlers.Signup)
	api.POST("/auth/login", apiHandlers.Login)

	protected := api.Group("", AuthMiddleware(authService, logger))
	protected.GET("/users", userHandlers.ListUsers)
	protected.GET("/users/me", userHandlers.Me)
	protected.GET("/dms", dmHandlers.ListDMs)
	protected.POST("/dms", dmHandlers.SendDM)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
