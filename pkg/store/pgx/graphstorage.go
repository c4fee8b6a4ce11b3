package pgx

import (
	"context"
	"errors"

	"textgraph/internal/db"
	"textgraph/pkg/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GraphDBStorage implements store.GraphStorage on Postgres. Replace
// operations run inside a single transaction so readers either see the
// previous derived set or the new one, never the gap between delete and
// insert.
type GraphDBStorage struct {
	conn *pgxpool.Pool
}

// NewGraphDBStorage creates a storage client on the given pool.
func NewGraphDBStorage(conn *pgxpool.Pool) *GraphDBStorage {
	return &GraphDBStorage{conn: conn}
}

func (s *GraphDBStorage) GetTextItemForOwner(ctx context.Context, textItemID, ownerID string) (store.TextItemRecord, error) {
	item, err := db.New(s.conn).GetTextItemForOwner(ctx, db.GetTextItemForOwnerParams{
		PublicID: textItemID,
		OwnerID:  ownerID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.TextItemRecord{}, store.ErrAccessDenied
		}
		return store.TextItemRecord{}, err
	}

	return store.TextItemRecord{
		ID:          item.ID,
		PublicID:    item.PublicID,
		WorkspaceID: item.WorkspaceID,
		RawText:     item.RawText,
		Status:      item.Status,
	}, nil
}

func (s *GraphDBStorage) SetTextItemStatus(ctx context.Context, textItemID, status string) error {
	return db.New(s.conn).UpdateTextItemStatus(ctx, db.UpdateTextItemStatusParams{
		PublicID: textItemID,
		Status:   status,
	})
}
