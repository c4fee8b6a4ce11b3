package pgx

import (
	"context"

	"textgraph/pkg/common"
	"textgraph/pkg/store"

	"github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const deleteItemEdgesSQL = `
DELETE FROM edges
WHERE source_entity_id IN (SELECT id FROM entities WHERE text_item_id = $1)
   OR target_entity_id IN (SELECT id FROM entities WHERE text_item_id = $1);
`

const insertEdgesSQL = `
INSERT INTO edges (public_id, source_entity_id, target_entity_id, relation_type)
SELECT pid, src, tgt, $1
FROM unnest($2::text[], $3::bigint[], $4::bigint[]) AS t(pid, src, tgt)
ON CONFLICT (source_entity_id, target_entity_id, relation_type) DO NOTHING;
`

// ReplaceEdges invalidates every edge touching the item's current entities
// and inserts pairs in their place, all inside one transaction. The unique
// index on (source, target, relation) collapses duplicates, so the returned
// count can be lower than len(pairs).
func (s *GraphDBStorage) ReplaceEdges(ctx context.Context, textItemID int64, pairs []store.EdgePair) (int, error) {
	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteItemEdgesSQL, textItemID); err != nil {
		return 0, err
	}

	inserted := 0
	err = store.ChunkRange(len(pairs), insertChunkSize, func(start, end int) error {
		chunk := pairs[start:end]
		pids := make([]string, 0, len(chunk))
		srcs := make([]int64, 0, len(chunk))
		tgts := make([]int64, 0, len(chunk))

		for _, pair := range chunk {
			pid, err := gonanoid.New()
			if err != nil {
				return err
			}
			pids = append(pids, pid)
			srcs = append(srcs, pair.SourceID)
			tgts = append(tgts, pair.TargetID)
		}

		tag, err := tx.Exec(ctx, insertEdgesSQL, common.RelationRelatedTo, pids, srcs, tgts)
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
