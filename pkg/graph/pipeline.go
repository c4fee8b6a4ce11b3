package graph

import (
	"context"
	"strings"

	"textgraph/pkg/logger"
	"textgraph/pkg/ner"
	"textgraph/pkg/store"
)

// Pipeline states persisted on a text item. A text item enters the pipeline
// as StatusCreated and ends on StatusEdgesBuilt, or on one of the failed
// states from which a re-trigger restarts the whole sequence.
const (
	StatusCreated          = "created"
	StatusExtracting       = "extracting"
	StatusEntitiesSaved    = "entities_saved"
	StatusEdgesBuilt       = "edges_built"
	StatusFailedExtraction = "failed_extraction"
	StatusFailedPersist    = "failed_persist"
)

// Locker serializes pipeline runs per text item. Implementations must
// guarantee at most one holder per key at a time; fn runs while the lease
// is held.
type Locker interface {
	WithLease(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Result summarizes one completed pipeline run.
type Result struct {
	TextItemID string `json:"text_item_id"`
	Entities   int    `json:"entities"`
	Edges      int    `json:"edges"`
	// Skipped reports that the item's text was empty or whitespace-only and
	// the recognizer was never invoked. The run still succeeds and leaves
	// the item with zero entities and zero edges.
	Skipped bool `json:"skipped"`
}

// Pipeline runs the extraction sequence for one text item: recognize
// entity spans, map labels, replace the item's entity set, and rebuild its
// co-occurrence edges. Runs for the same item are serialized through the
// configured Locker; runs for different items proceed independently.
type Pipeline struct {
	recognizer ner.Recognizer
	storage    store.GraphStorage
	locks      Locker
}

// NewPipelineParams contains the collaborators of a Pipeline.
type NewPipelineParams struct {
	Recognizer ner.Recognizer
	Storage    store.GraphStorage
	Locks      Locker
}

// NewPipeline creates a pipeline from its collaborators.
func NewPipeline(params NewPipelineParams) *Pipeline {
	return &Pipeline{
		recognizer: params.Recognizer,
		storage:    params.Storage,
		locks:      params.Locks,
	}
}

// Process runs the full pipeline for the text item identified by its public
// ID. The owner check happens before any mutation; a mismatch returns
// store.ErrAccessDenied untouched. Recognizer failures surface as
// *ExtractionError, persistence failures as *StorageError, both after the
// item has been moved to the matching failed status.
func (p *Pipeline) Process(ctx context.Context, textItemID, ownerID string) (Result, error) {
	item, err := p.storage.GetTextItemForOwner(ctx, textItemID, ownerID)
	if err != nil {
		return Result{}, err
	}

	var res Result
	err = p.locks.WithLease(ctx, "textitem:"+item.PublicID, func(ctx context.Context) error {
		var runErr error
		res, runErr = p.run(ctx, item)
		return runErr
	})
	return res, err
}

func (p *Pipeline) run(ctx context.Context, item store.TextItemRecord) (Result, error) {
	res := Result{TextItemID: item.PublicID}

	p.setStatus(ctx, item.PublicID, StatusExtracting)

	var spans []ner.Span
	if strings.TrimSpace(item.RawText) == "" {
		logger.Debug("[Pipeline] Text item is empty, skipping recognition", "text_item_id", item.PublicID)
		res.Skipped = true
	} else {
		var err error
		spans, err = p.recognizer.Recognize(ctx, item.RawText)
		if err != nil {
			p.setStatus(ctx, item.PublicID, StatusFailedExtraction)
			return res, &ExtractionError{Cause: err}
		}
	}

	entitySpans := make([]store.EntitySpan, 0, len(spans))
	for _, s := range spans {
		entitySpans = append(entitySpans, store.EntitySpan{
			Type:  MapLabel(s.Label),
			Value: s.Word,
			Start: s.Start,
			End:   s.End,
		})
	}

	count, err := p.storage.ReplaceEntities(ctx, item.ID, entitySpans)
	if err != nil {
		p.setStatus(ctx, item.PublicID, StatusFailedPersist)
		return res, &StorageError{Op: "replace entities", Cause: err}
	}
	res.Entities = count
	p.setStatus(ctx, item.PublicID, StatusEntitiesSaved)
	logger.Debug("[Pipeline] Entities saved", "text_item_id", item.PublicID, "count", count)

	refs, err := p.storage.GetEntityRefs(ctx, item.ID)
	if err != nil {
		p.setStatus(ctx, item.PublicID, StatusFailedPersist)
		return res, &StorageError{Op: "load entities for edge rebuild", Cause: err}
	}

	pairs := BuildCoOccurrenceEdges(refs)
	inserted, err := p.storage.ReplaceEdges(ctx, item.ID, pairs)
	if err != nil {
		p.setStatus(ctx, item.PublicID, StatusFailedPersist)
		return res, &StorageError{Op: "rebuild edges", Cause: err}
	}
	res.Edges = inserted
	p.setStatus(ctx, item.PublicID, StatusEdgesBuilt)
	logger.Debug("[Pipeline] Edges rebuilt", "text_item_id", item.PublicID, "count", inserted)

	return res, nil
}

// setStatus records the pipeline state. Status bookkeeping must not abort a
// run that can still make progress, so failures are only logged.
func (p *Pipeline) setStatus(ctx context.Context, textItemID, status string) {
	if err := p.storage.SetTextItemStatus(ctx, textItemID, status); err != nil {
		logger.Warn("[Pipeline] Failed to update text item status", "text_item_id", textItemID, "status", status, "err", err)
	}
}
