package handlers

import (
	"net/http"

	"taskdeck/internal/domain"
	"taskdeck/internal/http/middleware"
	"taskdeck/internal/ws"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Labels      []string `json:"labels"`
	Priority    string   `json:"priority"`
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), userID, domain.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Labels:      req.Labels,
		Priority:    req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(userID, ws.Event{Type: ws.EventTaskCreated, Task: task})
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var patch domain.TaskPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(userID, ws.Event{Type: ws.EventTaskUpdated, Task: task})
	c.JSON(http.StatusOK, task)
}

// ToggleTask flips the done flag without the client having to know the
// current value.
func (h *Handler) ToggleTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	task, err := h.Tasks.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(userID, ws.Event{Type: ws.EventTaskUpdated, Task: task})
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	h.publish(userID, ws.Event{Type: ws.EventTaskDeleted, ID: id})
	c.Status(http.StatusNoContent)
}
