package routes

import (
	"encoding/json"
	"net/http"

	"textgraph/internal/db"
	"textgraph/internal/queue"
	"textgraph/internal/server/middleware"
	"textgraph/internal/util"
	"textgraph/pkg/graph"
	"textgraph/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateTextItemHandler adds a text item to a workspace and queues its
// extraction run. The item's raw text is immutable after creation.
func CreateTextItemHandler(c echo.Context) error {
	type createTextItemBody struct {
		WorkspaceID string `param:"id" validate:"required"`
		RawText     string `json:"raw_text"`
	}

	type createTextItemResponse struct {
		Message  string       `json:"message"`
		TextItem *db.TextItem `json:"text_item,omitempty"`
	}

	data := new(createTextItemBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createTextItemResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createTextItemResponse{
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

	workspace, err := q.GetWorkspaceForOwner(ctx, db.GetWorkspaceForOwnerParams{
		PublicID: data.WorkspaceID,
		OwnerID:  user.OwnerID,
	})
	if err != nil {
		return c.JSON(http.StatusNotFound, createTextItemResponse{
			Message: "Workspace not found",
		})
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createTextItemResponse{
			Message: "Internal server error",
		})
	}

	item, err := q.CreateTextItem(ctx, db.CreateTextItemParams{
		PublicID:    publicID,
		WorkspaceID: workspace.ID,
		RawText:     util.SanitizePostgresText(data.RawText),
		Status:      graph.StatusCreated,
	})
	if err != nil {
		logger.Error("Failed to create text item", "workspace_id", data.WorkspaceID, "err", err)
		return c.JSON(http.StatusInternalServerError, createTextItemResponse{
			Message: "Internal server error",
		})
	}

	queueData := queue.QueueExtractMsg{
		Message:    "Text item created",
		TextItemID: item.PublicID,
		OwnerID:    user.OwnerID,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		logger.Error("Failed to marshal queue message", "text_item_id", item.PublicID, "err", err)
	} else {
		ch := c.(*middleware.AppContext).App.Queue
		if err := queue.PublishFIFO(ch, queue.ExtractQueue, msgBytes); err != nil {
			logger.Error("Failed to publish to extract_queue", "text_item_id", item.PublicID, "err", err)
		}
	}

	return c.JSON(http.StatusOK, createTextItemResponse{
		Message:  "Text item created successfully",
		TextItem: &item,
	})
}
