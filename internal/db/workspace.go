package db

import "context"

const createWorkspaceSQL = `
INSERT INTO workspaces (public_id, owner_id, name, description)
VALUES ($1, $2, $3, $4)
RETURNING id, public_id, owner_id, name, description, created_at;
`

type CreateWorkspaceParams struct {
	PublicID    string
	OwnerID     string
	Name        string
	Description string
}

func (q *Queries) CreateWorkspace(ctx context.Context, arg CreateWorkspaceParams) (Workspace, error) {
	row := q.db.QueryRow(ctx, createWorkspaceSQL, arg.PublicID, arg.OwnerID, arg.Name, arg.Description)
	var w Workspace
	err := row.Scan(&w.ID, &w.PublicID, &w.OwnerID, &w.Name, &w.Description, &w.CreatedAt)
	return w, err
}

const getWorkspacesByOwnerSQL = `
SELECT id, public_id, owner_id, name, description, created_at
FROM workspaces
WHERE owner_id = $1
ORDER BY created_at DESC;
`

func (q *Queries) GetWorkspacesByOwner(ctx context.Context, ownerID string) ([]Workspace, error) {
	rows, err := q.db.Query(ctx, getWorkspacesByOwnerSQL, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Workspace, 0)
	for rows.Next() {
		var w Workspace
		if err := rows.Scan(&w.ID, &w.PublicID, &w.OwnerID, &w.Name, &w.Description, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

const getWorkspaceForOwnerSQL = `
SELECT id, public_id, owner_id, name, description, created_at
FROM workspaces
WHERE public_id = $1 AND owner_id = $2;
`

type GetWorkspaceForOwnerParams struct {
	PublicID string
	OwnerID  string
}

// GetWorkspaceForOwner resolves a workspace only when ownerID owns it;
// otherwise pgx.ErrNoRows.
func (q *Queries) GetWorkspaceForOwner(ctx context.Context, arg GetWorkspaceForOwnerParams) (Workspace, error) {
	row := q.db.QueryRow(ctx, getWorkspaceForOwnerSQL, arg.PublicID, arg.OwnerID)
	var w Workspace
	err := row.Scan(&w.ID, &w.PublicID, &w.OwnerID, &w.Name, &w.Description, &w.CreatedAt)
	return w, err
}

const deleteWorkspaceForOwnerSQL = `
DELETE FROM workspaces
WHERE public_id = $1 AND owner_id = $2;
`

type DeleteWorkspaceForOwnerParams struct {
	PublicID string
	OwnerID  string
}

// DeleteWorkspaceForOwner removes the workspace and, through the FK
// cascades, its text items, entities and edges. Returns the number of
// workspaces deleted (0 or 1).
func (q *Queries) DeleteWorkspaceForOwner(ctx context.Context, arg DeleteWorkspaceForOwnerParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteWorkspaceForOwnerSQL, arg.PublicID, arg.OwnerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
