package pgx

import (
	"context"

	"textgraph/pkg/store"

	"github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// insertChunkSize bounds the rows per bulk insert statement so parameter
// arrays stay reasonable for very long text items.
const insertChunkSize = 500

const deleteEntitiesSQL = `
DELETE FROM entities
WHERE text_item_id = $1;
`

const insertEntitiesSQL = `
INSERT INTO entities (public_id, text_item_id, entity_type, value, start_offset, end_offset)
SELECT pid, $1, typ, val, so, eo
FROM unnest($2::text[], $3::text[], $4::text[], $5::int[], $6::int[])
	AS t(pid, typ, val, so, eo);
`

// ReplaceEntities drops every entity of the text item and inserts spans in
// their place, all inside one transaction. The FK cascade on edges removes
// any edge that referenced a deleted entity.
func (s *GraphDBStorage) ReplaceEntities(ctx context.Context, textItemID int64, spans []store.EntitySpan) (int, error) {
	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteEntitiesSQL, textItemID); err != nil {
		return 0, err
	}

	inserted := 0
	err = store.ChunkRange(len(spans), insertChunkSize, func(start, end int) error {
		chunk := spans[start:end]
		pids := make([]string, 0, len(chunk))
		typs := make([]string, 0, len(chunk))
		vals := make([]string, 0, len(chunk))
		starts := make([]int, 0, len(chunk))
		ends := make([]int, 0, len(chunk))

		for _, span := range chunk {
			pid, err := gonanoid.New()
			if err != nil {
				return err
			}
			pids = append(pids, pid)
			typs = append(typs, string(span.Type))
			vals = append(vals, span.Value)
			starts = append(starts, span.Start)
			ends = append(ends, span.End)
		}

		tag, err := tx.Exec(ctx, insertEntitiesSQL, textItemID, pids, typs, vals, starts, ends)
		if err != nil {
			return err
		}
		inserted += int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

const getEntityRefsSQL = `
SELECT id, public_id
FROM entities
WHERE text_item_id = $1
ORDER BY id;
`

func (s *GraphDBStorage) GetEntityRefs(ctx context.Context, textItemID int64) ([]store.EntityRef, error) {
	rows, err := s.conn.Query(ctx, getEntityRefsSQL, textItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]store.EntityRef, 0)
	for rows.Next() {
		var ref store.EntityRef
		if err := rows.Scan(&ref.ID, &ref.PublicID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
