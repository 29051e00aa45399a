package handlers

import (
	"net/http"
	"strconv"

	"taskdeck/internal/domain"
	"taskdeck/internal/http/middleware"
	"taskdeck/internal/ws"

	"github.com/gin-gonic/gin"
)

type createProjectRequest struct {
	Name  string           `json:"name" binding:"required"`
	Due   string           `json:"due"`
	Tasks []domain.SubTask `json:"tasks"`
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) ListProjects(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	projects, err := h.Projects.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	project, err := h.Projects.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) CreateProject(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	project, err := h.Projects.Create(c.Request.Context(), userID, req.Name, req.Due, req.Tasks)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(userID, ws.Event{Type: ws.EventProjectCreated, Project: project})
	c.JSON(http.StatusCreated, project)
}

// UpdateProject merges the provided fields into the stored project. A
// tasks field replaces the embedded list as a whole.
func (h *Handler) UpdateProject(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var patch domain.ProjectPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	project, err := h.Projects.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(userID, ws.Event{Type: ws.EventProjectUpdated, Project: project})
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	h.publish(userID, ws.Event{Type: ws.EventProjectDeleted, ID: id})
	c.Status(http.StatusNoContent)
}
