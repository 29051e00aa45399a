// Package client is the data layer used by client programs. It presents
// one store interface with two implementations: a bolt-backed local store
// for guest mode and an HTTP store for authenticated mode. The two never
// merge silently; Session.Import copies local data to the server only on
// explicit request.
package client

import (
	"context"

	"taskdeck/internal/domain"
)

type Store interface {
	Tasks(ctx context.Context) ([]*domain.Task, error)
	CreateTask(ctx context.Context, t domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	ToggleTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	Projects(ctx context.Context) ([]*domain.Project, error)
	Project(ctx context.Context, id int64) (*domain.Project, error)
	CreateProject(ctx context.Context, p domain.Project) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}
