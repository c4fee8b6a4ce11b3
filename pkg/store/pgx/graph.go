package pgx

import (
	"context"

	"textgraph/pkg/common"
)

const getWorkspaceNodesSQL = `
SELECT e.public_id, e.value, e.entity_type
FROM entities e
JOIN text_items ti ON ti.id = e.text_item_id
WHERE ti.workspace_id = $1
ORDER BY e.id;
`

const getWorkspaceEdgesSQL = `
SELECT ed.public_id, src.public_id, tgt.public_id, ed.relation_type
FROM edges ed
JOIN entities src ON src.id = ed.source_entity_id
JOIN entities tgt ON tgt.id = ed.target_entity_id
JOIN text_items ti ON ti.id = src.text_item_id
WHERE ti.workspace_id = $1
ORDER BY ed.id;
`

// GetWorkspaceGraph projects all entities and edges of the workspace into a
// node/edge view. Entities are never merged across text items; two items
// mentioning the same value yield two nodes.
func (s *GraphDBStorage) GetWorkspaceGraph(ctx context.Context, workspaceID int64) (common.GraphView, error) {
	view := common.GraphView{
		Nodes: make([]common.GraphNode, 0),
		Edges: make([]common.GraphEdge, 0),
	}

	rows, err := s.conn.Query(ctx, getWorkspaceNodesSQL, workspaceID)
	if err != nil {
		return common.GraphView{}, err
	}
	for rows.Next() {
		var node common.GraphNode
		if err := rows.Scan(&node.ID, &node.Label, &node.Type); err != nil {
			rows.Close()
			return common.GraphView{}, err
		}
		view.Nodes = append(view.Nodes, node)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return common.GraphView{}, err
	}

	rows, err = s.conn.Query(ctx, getWorkspaceEdgesSQL, workspaceID)
	if err != nil {
		return common.GraphView{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var edge common.GraphEdge
		if err := rows.Scan(&edge.ID, &edge.Source, &edge.Target, &edge.Label); err != nil {
			return common.GraphView{}, err
		}
		view.Edges = append(view.Edges, edge)
	}
	return view, rows.Err()
}
