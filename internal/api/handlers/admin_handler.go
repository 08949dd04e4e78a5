package handlers

import (
	"net/http"

	"material-requisition-api-server/internal/database"
	"material-requisition-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Seeder *database.Seeder
	Cache  *store.Cache
}

// Seed bootstraps the sheet schema and the default records on demand and
// returns the aggregate per-step report. Partial failures are reported, not
// rolled back.
func (h *AdminHandler) Seed(c *gin.Context) {
	ctx := c.Request.Context()

	sheetsReport := h.Seeder.EnsureSheets(ctx)
	defaultsReport := h.Seeder.SeedDefaults(ctx)
	h.Cache.LoadAll(ctx)

	c.JSON(http.StatusOK, gin.H{
		"sheets":   sheetsReport,
		"defaults": defaultsReport,
	})
}

// Reload forces a full refresh of every cached collection.
func (h *AdminHandler) Reload(c *gin.Context) {
	h.Cache.LoadAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Collections reloaded"})
}
