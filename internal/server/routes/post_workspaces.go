package routes

import (
	"net/http"

	"textgraph/internal/db"
	"textgraph/internal/server/middleware"
	"textgraph/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateWorkspaceHandler creates a new workspace owned by the caller.
func CreateWorkspaceHandler(c echo.Context) error {
	type createWorkspaceBody struct {
		Name        string `json:"name" validate:"required,max=200"`
		Description string `json:"description" validate:"max=2000"`
	}

	type createWorkspaceResponse struct {
		Message   string        `json:"message"`
		Workspace *db.Workspace `json:"workspace,omitempty"`
	}

	data := new(createWorkspaceBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createWorkspaceResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createWorkspaceResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createWorkspaceResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := db.New(conn)

	workspace, err := q.CreateWorkspace(ctx, db.CreateWorkspaceParams{
		PublicID:    publicID,
		OwnerID:     user.OwnerID,
		Name:        data.Name,
		Description: data.Description,
	})
	if err != nil {
		logger.Error("Failed to create workspace", "err", err)
		return c.JSON(http.StatusInternalServerError, createWorkspaceResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, createWorkspaceResponse{
		Message:   "Workspace created successfully",
		Workspace: &workspace,
	})
}
