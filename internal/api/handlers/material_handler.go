package handlers

import (
	"net/http"

	"material-requisition-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	Cache *store.Cache
}

// GetAllMaterials lists the cached material catalog.
func (h *MaterialHandler) GetAllMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Materials())
}

// GetLowStockMaterials lists the materials at or below their minimum stock.
func (h *MaterialHandler) GetLowStockMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.LowStockMaterials())
}
