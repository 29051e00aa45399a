package repository

import (
	"context"
	"errors"

	"taskdeck/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, name, due, tasks, created_at
		 FROM projects
		 WHERE owner_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []*domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Due, &p.Tasks, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Tasks == nil {
			p.Tasks = []domain.SubTask{}
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, ownerID, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, name, due, tasks, created_at
		 FROM projects
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Due, &p.Tasks, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if p.Tasks == nil {
		p.Tasks = []domain.SubTask{}
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.Tasks == nil {
		p.Tasks = []domain.SubTask{}
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO projects (owner_id, name, due, tasks)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.OwnerID, p.Name, p.Due, p.Tasks,
	).Scan(&p.ID, &p.CreatedAt)
}

// Update merges the provided fields into the stored project and returns the
// updated record. Omitted fields keep their current value; a provided tasks
// list replaces the embedded list as a whole. Last write wins on concurrent
// updates.
func (r *ProjectRepository) Update(ctx context.Context, ownerID, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx,
		`UPDATE projects
		 SET name  = COALESCE($1, name),
		     due   = COALESCE($2, due),
		     tasks = COALESCE($3, tasks)
		 WHERE id = $4 AND owner_id = $5
		 RETURNING id, owner_id, name, due, tasks, created_at`,
		patch.Name, patch.Due, patch.Tasks, id, ownerID,
	).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Due, &p.Tasks, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if p.Tasks == nil {
		p.Tasks = []domain.SubTask{}
	}
	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
