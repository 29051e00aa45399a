package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"taskdeck/internal/domain"
)

// fakeAPI is a minimal stand-in for the REST server.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int64
	tasks  []*domain.Task
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "pw1" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": 1, "email": req.Email},
			"token": "test-token",
		})
	})

	mux.HandleFunc("POST /api/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		var t domain.Task
		_ = json.NewDecoder(r.Body).Decode(&t)

		f.mu.Lock()
		f.nextID++
		t.ID = f.nextID
		t.Done = false
		f.tasks = append(f.tasks, &t)
		f.mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&t)
	})

	mux.HandleFunc("PUT /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		var patch domain.TaskPatch
		_ = json.NewDecoder(r.Body).Decode(&patch)

		f.mu.Lock()
		defer f.mu.Unlock()
		for _, t := range f.tasks {
			if patch.Done != nil {
				t.Done = *patch.Done
			}
			_ = json.NewEncoder(w).Encode(t)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("POST /api/projects", func(w http.ResponseWriter, r *http.Request) {
		var p domain.Project
		_ = json.NewDecoder(r.Body).Decode(&p)
		p.ID = 1
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(&p)
	})

	return mux
}

func openSessionForTest(t *testing.T, baseURL string) *Session {
	t.Helper()

	session, err := Open(filepath.Join(t.TempDir(), "taskdeck.db"), baseURL)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestSession_DefaultsToGuest(t *testing.T) {
	session := openSessionForTest(t, "http://localhost:0")

	if session.Mode() != ModeGuest {
		t.Fatalf("expected guest mode by default, got %s", session.Mode())
	}
	if _, ok := session.Store().(*Local); !ok {
		t.Fatalf("expected local store in guest mode, got %T", session.Store())
	}
}

func TestSession_LoginSwitchesModeWithoutMigratingData(t *testing.T) {
	api := &fakeAPI{}
	server := httptest.NewServer(api.handler())
	defer server.Close()

	session := openSessionForTest(t, server.URL)
	ctx := context.Background()

	// guest data first
	if err := session.GuestLogin(); err != nil {
		t.Fatalf("guest login failed: %v", err)
	}
	if _, err := session.Store().CreateTask(ctx, domain.Task{Title: "local only"}); err != nil {
		t.Fatalf("guest create failed: %v", err)
	}

	if err := session.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Mode() != ModeAuthenticated {
		t.Fatalf("expected authenticated mode, got %s", session.Mode())
	}
	if _, ok := session.Store().(*Remote); !ok {
		t.Fatalf("expected remote store after login, got %T", session.Store())
	}

	// the guest task must not have reached the server
	if len(api.tasks) != 0 {
		t.Fatalf("login migrated guest data: %d server tasks", len(api.tasks))
	}

	// and must still be in the local store
	localTasks, err := session.local.Tasks(ctx)
	if err != nil {
		t.Fatalf("local list failed: %v", err)
	}
	if len(localTasks) != 1 {
		t.Fatalf("guest data lost on login: %d local tasks", len(localTasks))
	}
}

func TestSession_LoginBadPassword(t *testing.T) {
	api := &fakeAPI{}
	server := httptest.NewServer(api.handler())
	defer server.Close()

	session := openSessionForTest(t, server.URL)

	err := session.Login(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if session.Mode() != ModeGuest {
		t.Fatalf("failed login must not switch mode, got %s", session.Mode())
	}
}

func TestSession_LogoutIsClientSideOnly(t *testing.T) {
	api := &fakeAPI{}
	server := httptest.NewServer(api.handler())
	defer server.Close()

	session := openSessionForTest(t, server.URL)
	ctx := context.Background()

	if err := session.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := session.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if session.Mode() != ModeGuest {
		t.Fatalf("expected guest mode after logout, got %s", session.Mode())
	}
	if token, _ := session.local.sessionGet(sessionKeyToken); token != "" {
		t.Fatalf("token still stored after logout: %q", token)
	}
}

func TestSession_ImportRequiresLogin(t *testing.T) {
	session := openSessionForTest(t, "http://localhost:0")

	if err := session.GuestLogin(); err != nil {
		t.Fatalf("guest login failed: %v", err)
	}

	_, err := session.Import(context.Background())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for guest import, got %v", err)
	}
}

func TestSession_ImportCopiesAndClearsLocal(t *testing.T) {
	api := &fakeAPI{}
	server := httptest.NewServer(api.handler())
	defer server.Close()

	session := openSessionForTest(t, server.URL)
	ctx := context.Background()

	if err := session.GuestLogin(); err != nil {
		t.Fatalf("guest login failed: %v", err)
	}
	for _, title := range []string{"first", "second"} {
		if _, err := session.Store().CreateTask(ctx, domain.Task{Title: title}); err != nil {
			t.Fatalf("guest create %q failed: %v", title, err)
		}
	}

	if err := session.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	report, err := session.Import(ctx)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Tasks != 2 {
		t.Fatalf("expected 2 imported tasks, got %d", report.Tasks)
	}
	if len(api.tasks) != 2 {
		t.Fatalf("server received %d tasks, want 2", len(api.tasks))
	}
	// oldest first so the server's newest-first listing matches
	if api.tasks[0].Title != "first" {
		t.Fatalf("import order wrong: first created was %q", api.tasks[0].Title)
	}

	localTasks, err := session.local.tasksOldestFirst()
	if err != nil {
		t.Fatalf("local list failed: %v", err)
	}
	if len(localTasks) != 0 {
		t.Fatalf("local store not cleared after import: %d tasks", len(localTasks))
	}
}
