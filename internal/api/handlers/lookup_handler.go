package handlers

import (
	"net/http"

	"material-requisition-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves the department and category selection lists.
type LookupHandler struct {
	Cache *store.Cache
}

func (h *LookupHandler) GetAllDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Departments())
}

func (h *LookupHandler) GetAllCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Categories())
}
