package client

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/domain"

	"github.com/boltdb/bolt"
)

var (
	bucketTasks    = []byte("tasks")
	bucketProjects = []byte("projects")
	bucketSession  = []byte("session")
)

// Local is the guest-mode store. Every mutation is persisted before it
// returns, so a process restart reproduces the exact same lists.
type Local struct {
	db *bolt.DB
}

func OpenLocal(path string) (*Local, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketTasks, bucketProjects, bucketSession} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store: %w", err)
	}
	return &Local{db: db}, nil
}

// Close releases the file lock.
func (l *Local) Close() error {
	return l.db.Close()
}

func itob(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

// Tasks returns the stored tasks newest-first, matching the
// prepend-on-create behavior of the UI.
func (l *Local) Tasks(_ context.Context) ([]*domain.Task, error) {
	res := []*domain.Task{}
	err := l.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketTasks).Cursor()
		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var t domain.Task
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			res = append(res, &t)
		}
		return nil
	})
	return res, err
}

func (l *Local) CreateTask(_ context.Context, t domain.Task) (*domain.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", domain.ErrValidation)
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(t.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, t.Priority)
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	t.Done = false
	t.CreatedAt = time.Now()

	err := l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketTasks)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		t.ID = int64(seq)

		value, err := json.Marshal(&t)
		if err != nil {
			return err
		}
		return bucket.Put(itob(seq), value)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (l *Local) UpdateTask(_ context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: task title cannot be empty", domain.ErrValidation)
	}
	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *patch.Priority)
	}

	var t domain.Task
	err := l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketTasks)
		key := itob(uint64(id))
		value := bucket.Get(key)
		if value == nil {
			return domain.ErrNotFound
		}
		if err := json.Unmarshal(value, &t); err != nil {
			return err
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

		updated, err := json.Marshal(&t)
		if err != nil {
			return err
		}
		return bucket.Put(key, updated)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (l *Local) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketTasks)
		key := itob(uint64(id))
		value := bucket.Get(key)
		if value == nil {
			return domain.ErrNotFound
		}
		if err := json.Unmarshal(value, &t); err != nil {
			return err
		}
		t.Done = !t.Done

		updated, err := json.Marshal(&t)
		if err != nil {
			return err
		}
		return bucket.Put(key, updated)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (l *Local) DeleteTask(_ context.Context, id int64) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketTasks)
		key := itob(uint64(id))
		if bucket.Get(key) == nil {
			return domain.ErrNotFound
		}
		return bucket.Delete(key)
	})
}

func (l *Local) Projects(_ context.Context) ([]*domain.Project, error) {
	res := []*domain.Project{}
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProjects).ForEach(func(_, v []byte) error {
			var p domain.Project
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			res = append(res, &p)
			return nil
		})
	})
	return res, err
}

func (l *Local) Project(_ context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := l.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketProjects).Get(itob(uint64(id)))
		if value == nil {
			return domain.ErrNotFound
		}
		return json.Unmarshal(value, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *Local) CreateProject(_ context.Context, p domain.Project) (*domain.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}
	if p.Tasks == nil {
		p.Tasks = []domain.SubTask{}
	}
	p.CreatedAt = time.Now()

	err := l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketProjects)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		p.ID = int64(seq)

		value, err := json.Marshal(&p)
		if err != nil {
			return err
		}
		return bucket.Put(itob(seq), value)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *Local) UpdateProject(_ context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: project name cannot be empty", domain.ErrValidation)
	}

	var p domain.Project
	err := l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketProjects)
		key := itob(uint64(id))
		value := bucket.Get(key)
		if value == nil {
			return domain.ErrNotFound
		}
		if err := json.Unmarshal(value, &p); err != nil {
			return err
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

		updated, err := json.Marshal(&p)
		if err != nil {
			return err
		}
		return bucket.Put(key, updated)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (l *Local) DeleteProject(_ context.Context, id int64) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketProjects)
		key := itob(uint64(id))
		if bucket.Get(key) == nil {
			return domain.ErrNotFound
		}
		return bucket.Delete(key)
	})
}

// tasksOldestFirst is used by Session.Import so that re-creating records
// on the server reproduces the local newest-first listing.
func (l *Local) tasksOldestFirst() ([]*domain.Task, error) {
	res := []*domain.Task{}
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTasks).ForEach(func(_, v []byte) error {
			var t domain.Task
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			res = append(res, &t)
			return nil
		})
	})
	return res, err
}

func (l *Local) clearData() error {
	return l.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketTasks, bucketProjects} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// session key/value helpers

func (l *Local) sessionGet(key string) (string, error) {
	var val string
	err := l.db.View(func(tx *bolt.Tx) error {
		val = string(tx.Bucket(bucketSession).Get([]byte(key)))
		return nil
	})
	return val, err
}

func (l *Local) sessionSet(key, value string) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put([]byte(key), []byte(value))
	})
}

func (l *Local) sessionDelete(key string) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete([]byte(key))
	})
}
