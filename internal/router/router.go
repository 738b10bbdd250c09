package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/tidydo/api/handler"
)

type Handlers struct {
	Category   *apiHandler.CategoryHandler
	Item       *apiHandler.ItemHandler
	SimpleItem *apiHandler.SimpleItemHandler
	View       *apiHandler.ViewHandler
	Report     *apiHandler.ReportHandler
	Backup     *apiHandler.BackupHandler
	Settings   *apiHandler.SettingsHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	api := r.Group("/api/v1")

	// Categories
	api.GET("/categories", authMiddleware(handlers.Category.List))
	api.POST("/categories", authMiddleware(handlers.Category.Create))
	api.PUT("/categories/{id}", authMiddleware(handlers.Category.Update))
	api.DELETE("/categories/{id}", authMiddleware(handlers.Category.Delete))
	api.PUT("/categories/{id}/expanded", authMiddleware(handlers.Category.SetExpanded))
	api.POST("/categories/{id}/move", authMiddleware(handlers.Category.Move))
	api.POST("/categories/{id}/reorder", authMiddleware(handlers.Category.Reorder))
	api.GET("/categories/{id}/items", authMiddleware(handlers.Category.Items))

	// Items
	api.GET("/items", authMiddleware(handlers.Item.List))
	api.POST("/items", authMiddleware(handlers.Item.Create))
	api.GET("/items/export", authMiddleware(handlers.Item.Export))
	api.GET("/items/stats", authMiddleware(handlers.Item.Statistics))
	api.POST("/items/batch/status", authMiddleware(handlers.Item.BatchStatus))
	api.POST("/items/batch/archive", authMiddleware(handlers.Item.BatchArchive))
	api.GET("/items/{id}", authMiddleware(handlers.Item.Get))
	api.PUT("/items/{id}", authMiddleware(handlers.Item.Update))
	api.DELETE("/items/{id}", authMiddleware(handlers.Item.Delete))
	api.PUT("/items/{id}/status", authMiddleware(handlers.Item.UpdateStatus))
	api.PUT("/items/{id}/archive", authMiddleware(handlers.Item.Archive))

	// Simple items
	api.GET("/simple-items", authMiddleware(handlers.SimpleItem.List))
	api.POST("/simple-items", authMiddleware(handlers.SimpleItem.Create))
	api.POST("/simple-items/status", authMiddleware(handlers.SimpleItem.BatchStatus))
	api.PUT("/simple-items/{id}", authMiddleware(handlers.SimpleItem.Update))
	api.DELETE("/simple-items/{id}", authMiddleware(handlers.SimpleItem.Delete))
	api.PUT("/simple-items/{id}/status", authMiddleware(handlers.SimpleItem.UpdateStatus))

	// View selection
	api.GET("/view", authMiddleware(handlers.View.Current))
	api.PATCH("/view", authMiddleware(handlers.View.Patch))

	api.GET("/reports", authMiddleware(handlers.Report.Get))

	// Backup
	api.GET("/backup/export", authMiddleware(handlers.Backup.Export))
	api.POST("/backup/import", authMiddleware(handlers.Backup.Import))
	api.POST("/backup/run", authMiddleware(handlers.Backup.Run))
	api.GET("/backup/status", authMiddleware(handlers.Backup.Status))
	api.GET("/backup/stats", authMiddleware(handlers.Backup.Stats))
	api.PUT("/backup/directory", authMiddleware(handlers.Backup.SetDirectory))

	// Settings
	api.GET("/settings", authMiddleware(handlers.Settings.Get))
	api.PUT("/settings", authMiddleware(handlers.Settings.Put))
	api.PATCH("/settings/section", authMiddleware(handlers.Settings.PatchSection))
	api.POST("/settings/reset", authMiddleware(handlers.Settings.Reset))

	return r
}
