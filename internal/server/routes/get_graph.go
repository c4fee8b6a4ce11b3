package routes

import (
	"net/http"

	"textgraph/internal/db"
	"textgraph/internal/server/middleware"
	"textgraph/pkg/common"
	"textgraph/pkg/logger"
	graphstorage "textgraph/pkg/store/pgx"

	"github.com/labstack/echo/v4"
)

// GetWorkspaceGraphHandler assembles the node/edge projection of a whole
// workspace. The view is computed on every request, never cached.
func GetWorkspaceGraphHandler(c echo.Context) error {
	type getGraphParams struct {
		WorkspaceID string `param:"id" validate:"required"`
	}

	type getGraphResponse struct {
		Message string            `json:"message"`
		Graph   *common.GraphView `json:"graph,omitempty"`
	}

	params := new(getGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getGraphResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getGraphResponse{
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
		return c.JSON(http.StatusNotFound, getGraphResponse{
			Message: "Workspace not found",
		})
	}

	storage := graphstorage.NewGraphDBStorage(conn)
	view, err := storage.GetWorkspaceGraph(ctx, workspace.ID)
	if err != nil {
		logger.Error("Failed to assemble workspace graph", "workspace_id", params.WorkspaceID, "err", err)
		return c.JSON(http.StatusInternalServerError, getGraphResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getGraphResponse{
		Message: "Graph retrieved successfully",
		Graph:   &view,
	})
}
