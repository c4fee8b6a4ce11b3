package routes

import (
	"net/http"

	"textgraph/internal/db"
	"textgraph/internal/server/middleware"
	"textgraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeleteWorkspaceHandler removes a workspace and all of its derived data.
// The delete cascades over text items, entities and edges.
func DeleteWorkspaceHandler(c echo.Context) error {
	type deleteWorkspaceParams struct {
		WorkspaceID string `param:"id" validate:"required"`
	}

	type deleteWorkspaceResponse struct {
		Message string `json:"message"`
	}

	params := new(deleteWorkspaceParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteWorkspaceResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteWorkspaceResponse{
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

	deleted, err := q.DeleteWorkspaceForOwner(ctx, db.DeleteWorkspaceForOwnerParams{
		PublicID: params.WorkspaceID,
		OwnerID:  user.OwnerID,
	})
	if err != nil {
		logger.Error("Failed to delete workspace", "workspace_id", params.WorkspaceID, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteWorkspaceResponse{
			Message: "Internal server error",
		})
	}
	if deleted == 0 {
		return c.JSON(http.StatusNotFound, deleteWorkspaceResponse{
			Message: "Workspace not found",
		})
	}

	return c.JSON(http.StatusOK, deleteWorkspaceResponse{
		Message: "Workspace deleted successfully",
	})
}
