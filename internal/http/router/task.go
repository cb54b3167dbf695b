package router

import (
	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/handler"
	"tasklane.app/server/internal/service"
)

func registerTaskRoutes(r *gin.Engine, services *service.Services, authMW gin.HandlerFunc) {
	h := handler.NewTaskHandler(services.Tasks)

	tasks := r.Group("/task", authMW)
	{
		tasks.POST("", h.Create)
		tasks.GET("/:workspaceId/:projectId/all", h.List)
		tasks.GET("/:workspaceId/:projectId/:taskId", h.Get)
		tasks.PATCH("/:workspaceId/:projectId/:taskId", h.Update)
		tasks.DELETE("/:workspaceId/:projectId/:taskId", h.Delete)
	}
}
