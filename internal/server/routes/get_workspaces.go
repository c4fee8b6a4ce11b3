package routes

import (
	"net/http"

	"textgraph/internal/db"
	"textgraph/internal/server/middleware"
	"textgraph/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GetWorkspacesHandler lists the caller's workspaces, newest first.
func GetWorkspacesHandler(c echo.Context) error {
	type getWorkspacesResponse struct {
		Message    string         `json:"message"`
		Workspaces []db.Workspace `json:"workspaces"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	workspaces, err := q.GetWorkspacesByOwner(ctx, user.OwnerID)
	if err != nil {
		logger.Error("Failed to get workspaces", "err", err)
		return c.JSON(http.StatusInternalServerError, getWorkspacesResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getWorkspacesResponse{
		Message:    "Workspaces retrieved successfully",
		Workspaces: workspaces,
	})
}
