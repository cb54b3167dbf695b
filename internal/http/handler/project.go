package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/middleware"
	"tasklane.app/server/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type projectRequest struct {
	Name     string  `json:"name" binding:"required"`
	ImageKey *string `json:"image_key"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "name is required"})
		return
	}

	p, err := h.projects.Create(c.Request.Context(), middleware.UserID(c), workspaceID, req.Name, req.ImageKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":        "project created",
		"project_id": strconv.FormatInt(p.ID, 10),
	})
}

func (h *ProjectHandler) List(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	projects, err := h.projects.List(c.Request.Context(), middleware.UserID(c), workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "projects": projects})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	detail, err := h.projects.Get(c.Request.Context(), middleware.UserID(c), workspaceID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "project": detail})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "name is required"})
		return
	}

	if err := h.projects.Update(c.Request.Context(), middleware.UserID(c), workspaceID, projectID, req.Name, req.ImageKey); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "project updated"})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), middleware.UserID(c), workspaceID, projectID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "project deleted"})
}
