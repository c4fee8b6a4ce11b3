package routes

import (
	"net/http"

	"textgraph/internal/db"
	"textgraph/internal/server/middleware"
	"textgraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetWorkspaceHandler returns a single workspace together with its text
// items, newest first, including each item's pipeline status.
func GetWorkspaceHandler(c echo.Context) error {
	type getWorkspaceParams struct {
		WorkspaceID string `param:"id" validate:"required"`
	}

	type getWorkspaceResponse struct {
		Message   string        `json:"message"`
		Workspace *db.Workspace `json:"workspace,omitempty"`
		TextItems []db.TextItem `json:"text_items,omitempty"`
	}

	params := new(getWorkspaceParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getWorkspaceResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getWorkspaceResponse{
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
		PublicID: params.WorkspaceID,
		OwnerID:  user.OwnerID,
	})
	if err != nil {
		return c.JSON(http.StatusNotFound, getWorkspaceResponse{
			Message: "Workspace not found",
		})
	}

	items, err := q.GetTextItemsByWorkspace(ctx, workspace.ID)
	if err != nil {
		logger.Error("Failed to get text items", "workspace_id", params.WorkspaceID, "err", err)
		return c.JSON(http.StatusInternalServerError, getWorkspaceResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getWorkspaceResponse{
		Message:   "Workspace retrieved successfully",
		Workspace: &workspace,
		TextItems: items,
	})
}
