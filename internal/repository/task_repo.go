package repository

import (
	"context"
	"errors"

	"taskdeck/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns the user's tasks newest-first, matching the client's
// prepend-on-create ordering.
func (r *TaskRepository) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, due_date, labels, priority, done, created_at
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []*domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate,
			&t.Labels, &t.Priority, &t.Done, &t.CreatedAt); err != nil {
			return nil, err
		}
		if t.Labels == nil {
			t.Labels = []string{}
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Get(ctx context.Context, userID, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, description, due_date, labels, priority, done, created_at
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate,
		&t.Labels, &t.Priority, &t.Done, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.Labels == nil {
		t.Labels = []string{}
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, due_date, labels, priority, done)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		t.UserID, t.Title, t.Description, t.DueDate, t.Labels, t.Priority, t.Done,
	).Scan(&t.ID, &t.CreatedAt)
}

// Update merges the provided fields into the stored task and returns the
// updated record.
func (r *TaskRepository) Update(ctx context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title       = COALESCE($1, title),
		     description = COALESCE($2, description),
		     due_date    = COALESCE($3, due_date),
		     labels      = COALESCE($4, labels),
		     priority    = COALESCE($5, priority),
		     done        = COALESCE($6, done)
		 WHERE id = $7 AND user_id = $8
		 RETURNING id, user_id, title, description, due_date, labels, priority, done, created_at`,
		patch.Title, patch.Description, patch.DueDate, patch.Labels, patch.Priority, patch.Done,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate,
		&t.Labels, &t.Priority, &t.Done, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
