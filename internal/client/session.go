package client

import (
	"context"
	"fmt"

	"taskdeck/internal/domain"
)

type Mode string

const (
	// ModeGuest: no identity, all data in the local store.
	ModeGuest Mode = "guest"
	// ModeAuthenticated: bearer token present, all data on the server.
	ModeAuthenticated Mode = "authenticated"
)

const (
	sessionKeyToken = "token"
	sessionKeyGuest = "guest"
)

// Session selects between the local and remote store based on the
// persisted guest flag and token, mirroring how the two never mix: guest
// data stays local, authenticated data stays on the server.
type Session struct {
	local  *Local
	remote *Remote
}

// Open loads the session state from the local store at path. baseURL is
// the API server used in authenticated mode.
func Open(path, baseURL string) (*Session, error) {
	local, err := OpenLocal(path)
	if err != nil {
		return nil, err
	}

	s := &Session{local: local, remote: NewRemote(baseURL)}

	token, err := local.sessionGet(sessionKeyToken)
	if err != nil {
		local.Close()
		return nil, err
	}
	s.remote.SetToken(token)
	return s, nil
}

func (s *Session) Close() error {
	return s.local.Close()
}

// Mode reports the active mode. The guest flag wins over a stored token;
// with neither present the session behaves as guest over an empty local
// store.
func (s *Session) Mode() Mode {
	if guest, _ := s.local.sessionGet(sessionKeyGuest); guest == "true" {
		return ModeGuest
	}
	if token, _ := s.local.sessionGet(sessionKeyToken); token != "" {
		return ModeAuthenticated
	}
	return ModeGuest
}

// Store returns the store matching the active mode.
func (s *Session) Store() Store {
	if s.Mode() == ModeAuthenticated {
		return s.remote
	}
	return s.local
}

// Register creates an account and switches to authenticated mode. Local
// guest data is left untouched; use Import to copy it over.
func (s *Session) Register(ctx context.Context, email, password string) error {
	res, err := s.remote.register(ctx, email, password)
	if err != nil {
		return err
	}
	return s.storeToken(res.Token)
}

// Login switches to authenticated mode. Local guest data is left
// untouched; use Import to copy it over.
func (s *Session) Login(ctx context.Context, email, password string) error {
	res, err := s.remote.login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.storeToken(res.Token)
}

func (s *Session) storeToken(token string) error {
	if err := s.local.sessionSet(sessionKeyToken, token); err != nil {
		return err
	}
	if err := s.local.sessionDelete(sessionKeyGuest); err != nil {
		return err
	}
	s.remote.SetToken(token)
	return nil
}

// GuestLogin switches to guest mode.
func (s *Session) GuestLogin() error {
	if err := s.local.sessionDelete(sessionKeyToken); err != nil {
		return err
	}
	if err := s.local.sessionSet(sessionKeyGuest, "true"); err != nil {
		return err
	}
	s.remote.SetToken("")
	return nil
}

// Logout drops the stored token and guest flag. The token itself stays
// valid server-side until it expires; there is no revocation.
func (s *Session) Logout() error {
	if err := s.local.sessionDelete(sessionKeyToken); err != nil {
		return err
	}
	if err := s.local.sessionDelete(sessionKeyGuest); err != nil {
		return err
	}
	s.remote.SetToken("")
	return nil
}

// ImportReport summarizes a completed import.
type ImportReport struct {
	Tasks    int
	Projects int
}

// Import copies local guest data to the server, then clears the local
// buckets so the records are not imported twice. It is the only path by
// which guest data reaches the server, and it only runs on explicit user
// request while authenticated.
func (s *Session) Import(ctx context.Context) (*ImportReport, error) {
	if s.Mode() != ModeAuthenticated {
		return nil, fmt.Errorf("%w: import requires login", domain.ErrValidation)
	}

	tasks, err := s.local.tasksOldestFirst()
	if err != nil {
		return nil, err
	}
	projects, err := s.local.Projects(ctx)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	for _, t := range tasks {
		created, err := s.remote.CreateTask(ctx, *t)
		if err != nil {
			return report, fmt.Errorf("import task %q: %w", t.Title, err)
		}
		if t.Done {
			done := true
			if _, err := s.remote.UpdateTask(ctx, created.ID, domain.TaskPatch{Done: &done}); err != nil {
				return report, fmt.Errorf("import task %q: %w", t.Title, err)
			}
		}
		report.Tasks++
	}
	for _, p := range projects {
		if _, err := s.remote.CreateProject(ctx, *p); err != nil {
			return report, fmt.Errorf("import project %q: %w", p.Name, err)
		}
		report.Projects++
	}

	if err := s.local.clearData(); err != nil {
		return report, err
	}
	return report, nil
}
