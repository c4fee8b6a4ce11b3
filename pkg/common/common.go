package common

import "time"

// EntityType is the canonical classification of an extracted entity.
// The recognizer's raw label vocabulary is folded into this enumeration
// by graph.MapLabel; unknown labels become EntityTypeOther.
type EntityType string

const (
	EntityTypePerson   EntityType = "PERSON"
	EntityTypeLocation EntityType = "LOCATION"
	EntityTypeOther    EntityType = "OTHER"
)

// RelationRelatedTo is the single relation label carried by co-occurrence
// edges. Edges express nothing beyond "these two entities appeared in the
// same text item".
const RelationRelatedTo = "RELATED_TO"

// Workspace groups text items under one owner.
type Workspace struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TextItem holds one immutable piece of raw text inside a workspace.
// Its entities and edges are derived state and may be regenerated; Status
// tracks the extraction pipeline state for the item.
type TextItem struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	RawText     string    `json:"raw_text"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Entity is a typed, positioned mention extracted from a text item's raw
// text. Start and End form a half-open character offset span [Start, End)
// into the owning item's text. Entities are fully replaced on each
// extraction run of their item.
type Entity struct {
	ID         string     `json:"id"`
	TextItemID string     `json:"text_item_id"`
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
}

// Edge is an undirected co-occurrence relationship between two entities of
// the same text item, stored canonically with Source < Target (lexicographic
// on the public IDs) so direction carries no meaning and duplicates collapse.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// GraphNode is the external projection of an entity for visualization.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// GraphEdge is the external projection of an edge for visualization.
type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// GraphView is the read-only node/edge projection of a whole workspace.
// It is assembled on every read and never persisted.
type GraphView struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
