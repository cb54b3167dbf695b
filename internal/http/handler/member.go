package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/middleware"
	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/service"
)

type MemberHandler struct {
	members *service.MemberService
}

func NewMemberHandler(members *service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

func (h *MemberHandler) List(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	members, err := h.members.List(c.Request.Context(), middleware.UserID(c), workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "members": members})
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *MemberHandler) ChangeRole(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "role is required"})
		return
	}

	err := h.members.ChangeRole(c.Request.Context(), middleware.UserID(c), workspaceID, memberID, model.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "role updated"})
}

func (h *MemberHandler) Remove(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}

	if err := h.members.Remove(c.Request.Context(), middleware.UserID(c), workspaceID, memberID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "member removed"})
}
