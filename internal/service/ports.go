package service

import (
	"context"

	"taskdeck/internal/domain"
)

// Store interfaces satisfied by the pgx repositories. Tests substitute
// in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ProjectStore interface {
	List(ctx context.Context, ownerID int64) ([]*domain.Project, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, ownerID, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type TaskStore interface {
	List(ctx context.Context, userID int64) ([]*domain.Task, error)
	Get(ctx context.Context, userID, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, userID, id int64) error
}
