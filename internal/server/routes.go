package server

import (
	"textgraph/internal/server/middleware"
	"textgraph/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Workspace routes
	apiRoutes.GET("/workspaces", routes.GetWorkspacesHandler)
	apiRoutes.POST("/workspaces", routes.CreateWorkspaceHandler)
	apiRoutes.GET("/workspaces/:id", routes.GetWorkspaceHandler)
	apiRoutes.DELETE("/workspaces/:id", routes.DeleteWorkspaceHandler)

	// Text item routes
	apiRoutes.POST("/workspaces/:id/items", routes.CreateTextItemHandler)
	apiRoutes.POST("/items/:id/extract", routes.TriggerExtractionHandler)

	// Graph routes
	apiRoutes.GET("/workspaces/:id/graph", routes.GetWorkspaceGraphHandler)
}
