package router

import (
	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/handler"
	"tasklane.app/server/internal/service"
)

func registerMemberRoutes(r *gin.Engine, services *service.Services, authMW gin.HandlerFunc) {
	h := handler.NewMemberHandler(services.Members)

	members := r.Group("/workspace-members", authMW)
	{
		members.GET("/:workspaceId", h.List)
		members.PATCH("/:workspaceId/:memberId", h.ChangeRole)
		members.DELETE("/:workspaceId/:memberId", h.Remove)
	}
}
