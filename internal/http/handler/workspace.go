package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/middleware"
	"tasklane.app/server/internal/service"
)

type WorkspaceHandler struct {
	workspaces *service.WorkspaceService
	members    *service.MemberService
	storage    *service.StorageService
}

func NewWorkspaceHandler(workspaces *service.WorkspaceService, members *service.MemberService, storage *service.StorageService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, members: members, storage: storage}
}

type workspaceRequest struct {
	Name     string  `json:"name" binding:"required"`
	ImageKey *string `json:"image_key"`
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "name is required"})
		return
	}

	ws, err := h.workspaces.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.ImageKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":          "workspace created",
		"workspace_id": strconv.FormatInt(ws.ID, 10),
	})
}

func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.workspaces.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "workspaces": workspaces})
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	ws, err := h.workspaces.Get(c.Request.Context(), middleware.UserID(c), workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "workspace": ws})
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	var req workspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "name is required"})
		return
	}

	ws, err := h.workspaces.Update(c.Request.Context(), middleware.UserID(c), workspaceID, req.Name, req.ImageKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "workspace updated", "workspace": ws})
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	if err := h.workspaces.Delete(c.Request.Context(), middleware.UserID(c), workspaceID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "workspace deleted"})
}

type joinRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

func (h *WorkspaceHandler) Join(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invite_code is required"})
		return
	}

	if _, err := h.members.Join(c.Request.Context(), middleware.UserID(c), workspaceID, req.InviteCode); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "joined workspace"})
}

func (h *WorkspaceHandler) ResetInviteCode(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	code, err := h.workspaces.ResetInviteCode(c.Request.Context(), middleware.UserID(c), workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "invite code reset", "invite_code": code})
}

func (h *WorkspaceHandler) JoinInfo(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	preview, err := h.workspaces.GetForInvite(c.Request.Context(), middleware.UserID(c), workspaceID, c.Param("inviteCode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "workspace": preview})
}

type presignPutRequest struct {
	Mime string `json:"mime" binding:"required"`
}

func (h *WorkspaceHandler) PresignUpload(c *gin.Context) {
	var req presignPutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "mime is required"})
		return
	}

	url, key, err := h.storage.PresignUpload(c.Request.Context(), req.Mime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "url": url, "image_key": key})
}

type presignGetRequest struct {
	ImageKey string `json:"image_key" binding:"required"`
}

func (h *WorkspaceHandler) PresignDownload(c *gin.Context) {
	var req presignGetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "image_key is required"})
		return
	}

	url, err := h.storage.PresignDownload(c.Request.Context(), req.ImageKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "url": url})
}
