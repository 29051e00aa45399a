package handlers

import (
	"context"
	"strings"
	"time"

	"taskdeck/internal/domain"
	"taskdeck/internal/http/middleware"
	"taskdeck/internal/service"

	"github.com/gin-gonic/gin"
)

// In-memory fakes backing the handler tests.

type memUserStore struct {
	nextID int64
	users  map[int64]*domain.User
}

func (m *memUserStore) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email {
			return nil, domain.ErrDuplicateUser
		}
	}
	m.nextID++
	u := &domain.User{ID: m.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type memProjectStore struct {
	nextID   int64
	projects map[int64]*domain.Project
}

func (m *memProjectStore) List(_ context.Context, ownerID int64) ([]*domain.Project, error) {
	res := []*domain.Project{}
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.projects[id]; ok && p.OwnerID == ownerID {
			res = append(res, p)
		}
	}
	return res, nil
}

func (m *memProjectStore) Get(_ context.Context, ownerID, id int64) (*domain.Project, error) {
	p, ok := m.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *memProjectStore) Create(_ context.Context, p *domain.Project) error {
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	if p.Tasks == nil {
		p.Tasks = []domain.SubTask{}
	}
	m.projects[p.ID] = p
	return nil
}

func (m *memProjectStore) Update(_ context.Context, ownerID, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	p, ok := m.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Due != nil {
		p.Due = *patch.Due
	}
	if patch.Tasks != nil {
		p.Tasks = *patch.Tasks
	}
	return p, nil
}

func (m *memProjectStore) Delete(_ context.Context, ownerID, id int64) error {
	p, ok := m.projects[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

type memTaskStore struct {
	nextID int64
	tasks  map[int64]*domain.Task
}

func (m *memTaskStore) List(_ context.Context, userID int64) ([]*domain.Task, error) {
	res := []*domain.Task{}
	for id := m.nextID; id >= 1; id-- {
		if t, ok := m.tasks[id]; ok && t.UserID == userID {
			res = append(res, t)
		}
	}
	return res, nil
}

func (m *memTaskStore) Get(_ context.Context, userID, id int64) (*domain.Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *memTaskStore) Create(_ context.Context, t *domain.Task) error {
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now()
	if t.Labels == nil {
		t.Labels = []string{}
	}
	m.tasks[t.ID] = t
	return nil
}

func (m *memTaskStore) Update(_ context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Labels != nil {
		t.Labels = *patch.Labels
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Done != nil {
		t.Done = *patch.Done
	}
	return t, nil
}

func (m *memTaskStore) Delete(_ context.Context, userID, id int64) error {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

// newTestRouter builds a gin engine with the same route layout as
// production, backed by in-memory stores.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenService("test-secret", time.Hour)
	auth := service.NewAuthService(&memUserStore{users: make(map[int64]*domain.User)}, tokens)
	projects := service.NewProjectService(&memProjectStore{projects: make(map[int64]*domain.Project)})
	tasks := service.NewTaskService(&memTaskStore{tasks: make(map[int64]*domain.Task)})

	h := NewHandler(auth, projects, tasks, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	guard := middleware.Auth(auth)

	projectRoutes := api.Group("/projects", guard)
	projectRoutes.GET("", h.ListProjects)
	projectRoutes.POST("", h.CreateProject)
	projectRoutes.GET("/:id", h.GetProject)
	projectRoutes.PUT("/:id", h.UpdateProject)
	projectRoutes.DELETE("/:id", h.DeleteProject)

	taskRoutes := api.Group("/tasks", guard)
	taskRoutes.GET("", h.ListTasks)
	taskRoutes.POST("", h.CreateTask)
	taskRoutes.PUT("/:id", h.UpdateTask)
	taskRoutes.PATCH("/:id/toggle", h.ToggleTask)
	taskRoutes.DELETE("/:id", h.DeleteTask)

	return r
}
