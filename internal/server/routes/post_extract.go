package routes

import (
	"encoding/json"
	"net/http"

	"textgraph/internal/db"
	"textgraph/internal/queue"
	"textgraph/internal/server/middleware"
	"textgraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TriggerExtractionHandler queues a fresh extraction run for a text item.
// Re-running a processed item fully replaces its entities and edges.
func TriggerExtractionHandler(c echo.Context) error {
	type triggerExtractionParams struct {
		TextItemID string `param:"id" validate:"required"`
	}

	type triggerExtractionResponse struct {
		Message    string `json:"message"`
		TextItemID string `json:"text_item_id,omitempty"`
		Status     string `json:"status,omitempty"`
	}

	params := new(triggerExtractionParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, triggerExtractionResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, triggerExtractionResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	item, err := q.GetTextItemForOwner(ctx, db.GetTextItemForOwnerParams{
		PublicID: params.TextItemID,
		OwnerID:  user.OwnerID,
	})
	if err != nil {
		return c.JSON(http.StatusNotFound, triggerExtractionResponse{
			Message: "Text item not found",
		})
	}

	queueData := queue.QueueExtractMsg{
		Message:    "Extraction requested",
		TextItemID: item.PublicID,
		OwnerID:    user.OwnerID,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		logger.Error("Failed to marshal queue message", "text_item_id", item.PublicID, "err", err)
		return c.JSON(http.StatusInternalServerError, triggerExtractionResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.ExtractQueue, msgBytes); err != nil {
		logger.Error("Failed to publish to extract_queue", "text_item_id", item.PublicID, "err", err)
		return c.JSON(http.StatusInternalServerError, triggerExtractionResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, triggerExtractionResponse{
		Message:    "Extraction queued",
		TextItemID: item.PublicID,
		Status:     item.Status,
	})
}
