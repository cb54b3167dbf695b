package router

import (
	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/handler"
	"tasklane.app/server/internal/service"
)

func registerWorkspaceRoutes(r *gin.Engine, services *service.Services, authMW gin.HandlerFunc) {
	h := handler.NewWorkspaceHandler(services.Workspaces, services.Members, services.Storage)

	ws := r.Group("/workspace", authMW)
	{
		ws.POST("", h.Create)
		ws.GET("", h.List)
		ws.GET("/:workspaceId", h.Get)
		ws.PATCH("/:workspaceId", h.Update)
		ws.DELETE("/:workspaceId", h.Delete)

		ws.POST("/join-workspace/:workspaceId", h.Join)
		ws.POST("/reset-invitecode/:workspaceId", h.ResetInviteCode)
		ws.GET("/get-workspace-for-invite/:workspaceId/:inviteCode", h.JoinInfo)

		ws.POST("/s3-put-presigned-url", h.PresignUpload)
		ws.POST("/s3-get-presigned-url", h.PresignDownload)
	}
}
