package handlers

import (
	"net/http"

	"material-requisition-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	Cache *store.Cache
}

// GetDashboard returns the headline counters and the five most recent
// requisitions, recomputed from the snapshot on every call.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats":               h.Cache.DashboardStats(),
		"recent_requisitions": h.Cache.RecentRequisitions(5),
	})
}
