package store

import (
	"context"
	"errors"

	"textgraph/pkg/common"
)

// ErrAccessDenied is returned when the caller-provided owner identity does
// not match the recorded owner of the target resource, or the resource does
// not exist. The operation performs no storage mutation in either case.
var ErrAccessDenied = errors.New("access denied")

// EntitySpan is the write shape for one extracted entity: a canonical type,
// the verbatim matched text, and a half-open [Start, End) character span.
type EntitySpan struct {
	Type  common.EntityType
	Value string
	Start int
	End   int
}

// EntityRef identifies one persisted entity by internal row ID and public ID.
// Edge derivation canonicalizes on the public ID.
type EntityRef struct {
	ID       int64
	PublicID string
}

// EdgePair is one canonical co-occurrence edge candidate. SourceID always
// refers to the entity with the lexicographically smaller public ID.
type EdgePair struct {
	SourceID int64
	TargetID int64
}

// TextItemRecord is the resolved view of a text item used by the pipeline.
type TextItemRecord struct {
	ID          int64
	PublicID    string
	WorkspaceID int64
	RawText     string
	Status      string
}

// GraphStorage defines the persistence operations of the extraction
// pipeline and the workspace graph read path. Replace operations are
// all-or-nothing: a failure leaves the prior entity or edge set intact, and
// no concurrent reader observes the delete without its paired insert.
type GraphStorage interface {
	// GetTextItemForOwner resolves a text item by public ID, failing with
	// ErrAccessDenied unless ownerID owns the item's workspace.
	GetTextItemForOwner(ctx context.Context, textItemID, ownerID string) (TextItemRecord, error)

	// SetTextItemStatus records the pipeline state of a text item.
	SetTextItemStatus(ctx context.Context, textItemID, status string) error

	// ReplaceEntities atomically removes all entities of the text item and
	// inserts the given set, returning the inserted count.
	ReplaceEntities(ctx context.Context, textItemID int64, spans []EntitySpan) (int, error)

	// GetEntityRefs returns the current entities of the text item in
	// insertion order.
	GetEntityRefs(ctx context.Context, textItemID int64) ([]EntityRef, error)

	// ReplaceEdges atomically deletes every edge referencing any entity of
	// the text item, then inserts the given canonical pairs, returning the
	// inserted count. Duplicate pairs collapse to one stored edge.
	ReplaceEdges(ctx context.Context, textItemID int64, pairs []EdgePair) (int, error)

	// GetWorkspaceGraph assembles the node/edge projection across all text
	// items of the workspace. An empty workspace yields an empty view.
	GetWorkspaceGraph(ctx context.Context, workspaceID int64) (common.GraphView, error)
}
