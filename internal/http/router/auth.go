package router

import (
	"github.com/gin-gonic/gin"

	"tasklane.app/server/core/config"
	"tasklane.app/server/internal/http/handler"
	"tasklane.app/server/internal/service"
)

func registerAuthRoutes(r *gin.Engine, services *service.Services, cfg config.Config, authMW gin.HandlerFunc) {
	h := handler.NewAuthHandler(services.Auth, cfg.Auth.SessionTTL, cfg.IsProduction())

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/signin", h.SignIn)
		auth.DELETE("/signout", h.SignOut)
		auth.GET("/current-user", authMW, h.CurrentUser)
	}
}
