package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"textgraph/pkg/graph"
	"textgraph/pkg/leaselock"
	"textgraph/pkg/logger"
	"textgraph/pkg/ner"
	"textgraph/pkg/store"
	graphstorage "textgraph/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QueueExtractMsg is the payload published to the extract queue for every
// requested extraction run of a text item.
type QueueExtractMsg struct {
	Message    string `json:"message"`
	TextItemID string `json:"text_item_id"`
	OwnerID    string `json:"owner_id"`
}

// ProcessExtractMessage runs the full extraction pipeline for the text item
// named in msg. Only transient conditions (a busy item lease, connection
// problems) surface as errors and get the message retried. Pipeline
// failures are final: the item already carries a failed status and recovery
// is an explicit re-trigger, so the message is consumed.
func ProcessExtractMessage(
	ctx context.Context,
	recognizer ner.Recognizer,
	conn *pgxpool.Pool,
	msg string,
) error {
	data := new(QueueExtractMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("failed to unmarshal extract message: %w", err)
	}
	if data.TextItemID == "" || data.OwnerID == "" {
		return errors.New("extract message is missing text_item_id or owner_id")
	}

	pipeline := graph.NewPipeline(graph.NewPipelineParams{
		Recognizer: recognizer,
		Storage:    graphstorage.NewGraphDBStorage(conn),
		Locks:      leaselock.New(conn, leaselock.Options{}),
	})

	res, err := pipeline.Process(ctx, data.TextItemID, data.OwnerID)
	if err != nil {
		if errors.Is(err, store.ErrAccessDenied) {
			// The item is gone or the owner no longer matches. Retrying
			// cannot change that, so drop the message.
			logger.Warn("[Queue] Dropping extract message, item not resolvable for owner", "text_item_id", data.TextItemID)
			return nil
		}

		var extractionErr *graph.ExtractionError
		var storageErr *graph.StorageError
		if errors.As(err, &extractionErr) || errors.As(err, &storageErr) {
			// The item sits on a failed status now; a new run only starts
			// on an explicit re-trigger.
			logger.Error("[Queue] Extraction run failed", "text_item_id", data.TextItemID, "err", err)
			return nil
		}

		return err
	}

	logger.Info(
		"[Queue] Extraction finished",
		"text_item_id", res.TextItemID,
		"entities", res.Entities,
		"edges", res.Edges,
		"skipped", res.Skipped,
	)
	return nil
}
