package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"tasklane.app/server/core/config"
	"tasklane.app/server/internal/http/middleware"
	"tasklane.app/server/internal/service"
)

func New(cfg config.Config, services *service.Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	if cfg.OTel.Enabled() {
		r.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.DashboardURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})

	authMW := middleware.RequireAuth(services.Tokens)

	registerAuthRoutes(r, services, cfg, authMW)
	registerWorkspaceRoutes(r, services, authMW)
	registerProjectRoutes(r, services, authMW)
	registerTaskRoutes(r, services, authMW)
	registerMemberRoutes(r, services, authMW)

	return r
}
