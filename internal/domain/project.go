package domain

import "time"

// SubTask is an entry of a project's embedded task list. Sub-tasks have no
// identity of their own; the list is stored and replaced as a whole.
type SubTask struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Project struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Due       string    `db:"due" json:"due,omitempty"`
	Tasks     []SubTask `db:"tasks" json:"tasks"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProjectPatch carries a partial project update. Nil fields are left
// untouched; a non-nil Tasks replaces the embedded list entirely.
type ProjectPatch struct {
	Name  *string    `json:"name,omitempty"`
	Due   *string    `json:"due,omitempty"`
	Tasks *[]SubTask `json:"tasks,omitempty"`
}
