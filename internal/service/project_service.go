package service

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/domain"
)

// ProjectService enforces validation at the store boundary so the same
// guarantees hold for every entry point, not just the UI.
type ProjectService struct {
	projects ProjectStore
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) List(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	return s.projects.List(ctx, ownerID)
}

func (s *ProjectService) Get(ctx context.Context, ownerID, id int64) (*domain.Project, error) {
	return s.projects.Get(ctx, ownerID, id)
}

func (s *ProjectService) Create(ctx context.Context, ownerID int64, name, due string, tasks []domain.SubTask) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}

	p := &domain.Project{
		OwnerID: ownerID,
		Name:    name,
		Due:     due,
		Tasks:   tasks,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, ownerID, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: project name cannot be empty", domain.ErrValidation)
	}
	return s.projects.Update(ctx, ownerID, id, patch)
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.projects.Delete(ctx, ownerID, id)
}
