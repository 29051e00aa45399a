package handlers

import (
	"taskdeck/internal/service"
	"taskdeck/internal/ws"
)

type Handler struct {
	Auth     *service.AuthService
	Projects *service.ProjectService
	Tasks    *service.TaskService
	Hub      *ws.Hub
}

func NewHandler(auth *service.AuthService, projects *service.ProjectService, tasks *service.TaskService, hub *ws.Hub) *Handler {
	return &Handler{
		Auth:     auth,
		Projects: projects,
		Tasks:    tasks,
		Hub:      hub,
	}
}

func (h *Handler) publish(userID int64, ev ws.Event) {
	if h.Hub != nil {
		h.Hub.Publish(userID, ev)
	}
}
