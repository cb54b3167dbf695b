package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tasklane.app/server/internal/http/middleware"
	"tasklane.app/server/internal/model"
	"tasklane.app/server/internal/service"
	"tasklane.app/server/internal/store"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type createTaskRequest struct {
	WorkspaceID string    `json:"workspace_id" binding:"required"`
	ProjectID   string    `json:"project_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	Status      string    `json:"status" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	AssigneeID  string    `json:"assignee_id" binding:"required"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "name, status, due_date and assignee_id are required"})
		return
	}

	workspaceID, err := strconv.ParseInt(req.WorkspaceID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid workspace_id"})
		return
	}
	projectID, err := strconv.ParseInt(req.ProjectID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid project_id"})
		return
	}
	assigneeID, err := strconv.ParseInt(req.AssigneeID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid assignee_id"})
		return
	}

	t, err := h.tasks.Create(c.Request.Context(), middleware.UserID(c), workspaceID, projectID, service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
		DueDate:     req.DueDate,
		AssigneeID:  assigneeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":     "task created",
		"task_id": strconv.FormatInt(t.ID, 10),
	})
}

// List filters come in as query params. Each one is matched as a
// case-insensitive substring, identifiers included.
func (h *TaskHandler) List(c *gin.Context) {
	workspaceID, ok := pathID(c, "workspaceId")
	if !ok {
		return
	}

	filter := store.TaskFilter{
		WorkspaceID: workspaceID,
		ProjectID:   c.Query("projectId"),
		Status:      c.Query("status"),
		Search:      c.Query("search"),
		AssigneeID:  c.Query("assigneeId"),
		DueDate:     c.Query("dueDate"),
	}

	tasks, err := h.tasks.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "tasks": tasks})
}

func (h *TaskHandler) Get(c *gin.Context) {
	workspaceID, projectID, taskID, ok := taskPath(c)
	if !ok {
		return
	}

	t, err := h.tasks.Get(c.Request.Context(), middleware.UserID(c), workspaceID, projectID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "task": t})
}

type updateTaskRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	Status      string    `json:"status" binding:"required"`
	Position    *int      `json:"position"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	AssigneeID  string    `json:"assignee_id" binding:"required"`
}

func (h *TaskHandler) Update(c *gin.Context) {
	workspaceID, projectID, taskID, ok := taskPath(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "name, status, due_date and assignee_id are required"})
		return
	}
	assigneeID, err := strconv.ParseInt(req.AssigneeID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid assignee_id"})
		return
	}

	err = h.tasks.Update(c.Request.Context(), middleware.UserID(c), workspaceID, projectID, taskID, service.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
		Position:    req.Position,
		DueDate:     req.DueDate,
		AssigneeID:  assigneeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "task updated"})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	workspaceID, projectID, taskID, ok := taskPath(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), middleware.UserID(c), workspaceID, projectID, taskID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "task deleted"})
}

func taskPath(c *gin.Context) (workspaceID, projectID, taskID int64, ok bool) {
	if workspaceID, ok = pathID(c, "workspaceId"); !ok {
		return
	}
	if projectID, ok = pathID(c, "projectId"); !ok {
		return
	}
	taskID, ok = pathID(c, "taskId")
	return
}
