package db

import "context"

const createTextItemSQL = `
INSERT INTO text_items (public_id, workspace_id, raw_text, status)
VALUES ($1, $2, $3, $4)
RETURNING id, public_id, workspace_id, raw_text, status, created_at;
`

type CreateTextItemParams struct {
	PublicID    string
	WorkspaceID int64
	RawText     string
	Status      string
}

func (q *Queries) CreateTextItem(ctx context.Context, arg CreateTextItemParams) (TextItem, error) {
	row := q.db.QueryRow(ctx, createTextItemSQL, arg.PublicID, arg.WorkspaceID, arg.RawText, arg.Status)
	var item TextItem
	err := row.Scan(&item.ID, &item.PublicID, &item.WorkspaceID, &item.RawText, &item.Status, &item.CreatedAt)
	return item, err
}

const getTextItemsByWorkspaceSQL = `
SELECT id, public_id, workspace_id, raw_text, status, created_at
FROM text_items
WHERE workspace_id = $1
ORDER BY created_at DESC;
`

func (q *Queries) GetTextItemsByWorkspace(ctx context.Context, workspaceID int64) ([]TextItem, error) {
	rows, err := q.db.Query(ctx, getTextItemsByWorkspaceSQL, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TextItem, 0)
	for rows.Next() {
		var item TextItem
		if err := rows.Scan(&item.ID, &item.PublicID, &item.WorkspaceID, &item.RawText, &item.Status, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

const getTextItemForOwnerSQL = `
SELECT ti.id, ti.public_id, ti.workspace_id, ti.raw_text, ti.status, ti.created_at
FROM text_items ti
JOIN workspaces w ON w.id = ti.workspace_id
WHERE ti.public_id = $1 AND w.owner_id = $2;
`

type GetTextItemForOwnerParams struct {
	PublicID string
	OwnerID  string
}

// GetTextItemForOwner resolves a text item only when ownerID owns its
// workspace; otherwise pgx.ErrNoRows.
func (q *Queries) GetTextItemForOwner(ctx context.Context, arg GetTextItemForOwnerParams) (TextItem, error) {
	row := q.db.QueryRow(ctx, getTextItemForOwnerSQL, arg.PublicID, arg.OwnerID)
	var item TextItem
	err := row.Scan(&item.ID, &item.PublicID, &item.WorkspaceID, &item.RawText, &item.Status, &item.CreatedAt)
	return item, err
}

const updateTextItemStatusSQL = `
UPDATE text_items
SET status = $2
WHERE public_id = $1;
`

type UpdateTextItemStatusParams struct {
	PublicID string
	Status   string
}

func (q *Queries) UpdateTextItemStatus(ctx context.Context, arg UpdateTextItemStatusParams) error {
	_, err := q.db.Exec(ctx, updateTextItemStatusSQL, arg.PublicID, arg.Status)
	return err
}
