package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskdeck/internal/domain"
)

// Remote talks to the REST API with a bearer token. Mutations return the
// server's record; on failure nothing is applied locally, there is no
// retry and no optimistic update to roll back.
type Remote struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token attached to every request.
func (r *Remote) SetToken(token string) {
	r.token = token
}

type apiError struct {
	Message string `json:"error"`
}

func (r *Remote) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domain.ErrInvalidToken
		case http.StatusNotFound:
			return domain.ErrNotFound
		case http.StatusBadRequest:
			switch apiErr.Message {
			case "user already exists":
				return domain.ErrDuplicateUser
			case "invalid credentials":
				return domain.ErrInvalidCredentials
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, apiErr.Message)
		}
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, apiErr.Message)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type authResult struct {
	User struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

func (r *Remote) register(ctx context.Context, email, password string) (*authResult, error) {
	var res authResult
	err := r.do(ctx, http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *Remote) login(ctx context.Context, email, password string) (*authResult, error) {
	var res authResult
	err := r.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *Remote) Tasks(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *Remote) CreateTask(ctx context.Context, t domain.Task) (*domain.Task, error) {
	var created domain.Task
	if err := r.do(ctx, http.MethodPost, "/api/tasks", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Remote) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	var updated domain.Task
	path := fmt.Sprintf("/api/tasks/%d", id)
	if err := r.do(ctx, http.MethodPut, path, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Remote) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	var updated domain.Task
	path := fmt.Sprintf("/api/tasks/%d/toggle", id)
	if err := r.do(ctx, http.MethodPatch, path, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Remote) DeleteTask(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

func (r *Remote) Projects(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *Remote) Project(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	if err := r.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Remote) CreateProject(ctx context.Context, p domain.Project) (*domain.Project, error) {
	var created domain.Project
	if err := r.do(ctx, http.MethodPost, "/api/projects", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Remote) UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	var updated domain.Project
	path := fmt.Sprintf("/api/projects/%d", id)
	if err := r.do(ctx, http.MethodPut, path, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Remote) DeleteProject(ctx context.Context, id int64) error {
	return r.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil)
}
