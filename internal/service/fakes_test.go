package service

import (
	"context"
	"strings"
	"time"

	"taskdeck/internal/domain"
)

// In-memory store fakes backing the service tests.

type fakeUserStore struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User)}
}

func (f *fakeUserStore) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			return nil, domain.ErrDuplicateUser
		}
	}
	f.nextID++
	u := &domain.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type fakeProjectStore struct {
	nextID   int64
	projects map[int64]*domain.Project
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: make(map[int64]*domain.Project)}
}

func (f *fakeProjectStore) List(_ context.Context, ownerID int64) ([]*domain.Project, error) {
	res := []*domain.Project{}
	for id := int64(1); id <= f.nextID; id++ {
		if p, ok := f.projects[id]; ok && p.OwnerID == ownerID {
			cp := *p
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (f *fakeProjectStore) Get(_ context.Context, ownerID, id int64) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectStore) Create(_ context.Context, p *domain.Project) error {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	if p.Tasks == nil {
		p.Tasks = []domain.SubTask{}
	}
	cp := *p
	f.projects[p.ID] = &cp
	return nil
}

func (f *fakeProjectStore) Update(_ context.Context, ownerID, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	p, ok := f.projects[id]
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
	cp := *p
	return &cp, nil
}

func (f *fakeProjectStore) Delete(_ context.Context, ownerID, id int64) error {
	p, ok := f.projects[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

type fakeTaskStore struct {
	nextID int64
	tasks  map[int64]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*domain.Task)}
}

func (f *fakeTaskStore) List(_ context.Context, userID int64) ([]*domain.Task, error) {
	res := []*domain.Task{}
	for id := f.nextID; id >= 1; id-- {
		if t, ok := f.tasks[id]; ok && t.UserID == userID {
			cp := *t
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (f *fakeTaskStore) Get(_ context.Context, userID, id int64) (*domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskStore) Create(_ context.Context, t *domain.Task) error {
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	if t.Labels == nil {
		t.Labels = []string{}
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskStore) Update(_ context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	t, ok := f.tasks[id]
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
	cp := *t
	return &cp, nil
}

func (f *fakeTaskStore) Delete(_ context.Context, userID, id int64) error {
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}
