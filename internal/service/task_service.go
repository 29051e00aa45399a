package service

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/domain"
)

type TaskService struct {
	tasks TaskStore
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.List(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, userID int64, t domain.Task) (*domain.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", domain.ErrValidation)
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(t.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, t.Priority)
	}

	t.UserID = userID
	t.Done = false
	if err := s.tasks.Create(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: task title cannot be empty", domain.ErrValidation)
	}
	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *patch.Priority)
	}
	return s.tasks.Update(ctx, userID, id, patch)
}

// Toggle flips the done flag. Two toggles return the task to its original
// state.
func (s *TaskService) Toggle(ctx context.Context, userID, id int64) (*domain.Task, error) {
	t, err := s.tasks.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	done := !t.Done
	return s.tasks.Update(ctx, userID, id, domain.TaskPatch{Done: &done})
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	return s.tasks.Delete(ctx, userID, id)
}
