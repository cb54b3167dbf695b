package router

import (
	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/handler"
	"tasklane.app/server/internal/service"
)

func registerProjectRoutes(r *gin.Engine, services *service.Services, authMW gin.HandlerFunc) {
	h := handler.NewProjectHandler(services.Projects)

	projects := r.Group("/project", authMW)
	{
		projects.POST("/:workspaceId", h.Create)
		projects.GET("/:workspaceId/all", h.List)
		projects.GET("/:workspaceId/:projectId", h.Get)
		projects.PATCH("/:workspaceId/:projectId", h.Update)
		projects.DELETE("/:workspaceId/:projectId", h.Delete)
	}
}
