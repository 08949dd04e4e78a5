package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"material-requisition-api-server/internal/models"
	"material-requisition-api-server/internal/sheets"
	"material-requisition-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RequisitionHandler struct {
	Client *sheets.Client
	Cache  *store.Cache
	Logger *zap.Logger
}

type LineItemPayload struct {
	MaterialID string `json:"material_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Note       string `json:"note"`
}

type CreateRequisitionPayload struct {
	Date       string            `json:"date" binding:"required"`
	Department string            `json:"department" binding:"required"`
	Purpose    string            `json:"purpose" binding:"required"`
	Items      []LineItemPayload `json:"items" binding:"required,min=1,dive"`
}

// CreateRequisition submits a new requisition. Line items are enriched with
// the material's code, name and unit from the catalog snapshot; those fields
// stay frozen on the requisition from then on. Stock is never decremented.
func (h *RequisitionHandler) CreateRequisition(c *gin.Context) {
	requester := c.GetString("user_full_name")

	var payload CreateRequisitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		// Covers the empty item list: rejected before any store call.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]models.LineItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		material, ok := h.Cache.FindMaterial(item.MaterialID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Material with id '%s' not found", item.MaterialID)})
			return
		}
		items = append(items, models.LineItem{
			MaterialID:   material.ID,
			MaterialCode: material.MaterialCode,
			MaterialName: material.MaterialName,
			Unit:         material.Unit,
			Quantity:     item.Quantity,
			Note:         item.Note,
		})
	}

	now := time.Now()
	requisition := models.Requisition{
		ID:              models.NewRequisitionID(now),
		RequisitionCode: models.GenerateRequisitionCode(now),
		Date:            payload.Date,
		Requester:       requester,
		Department:      payload.Department,
		Purpose:         payload.Purpose,
		Status:          models.StatusPending,
		Items:           items,
		CreatedDate:     now,
	}

	row, err := requisition.ToRow()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode requisition"})
		return
	}
	if err := h.Client.Insert(c.Request.Context(), models.SheetRequisitions, row); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create requisition"})
		return
	}

	h.reloadRequisitions(c)

	c.JSON(http.StatusCreated, requisition)
}

// GetAllRequisitions lists the cached requisitions, optionally filtered by
// status.
func (h *RequisitionHandler) GetAllRequisitions(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusOK, h.Cache.Requisitions())
		return
	}

	parsed, err := models.ParseStatus(status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.Cache.FilterRequisitions(func(r models.Requisition) bool {
		return r.Status == parsed
	}))
}

// GetRequisitionByID returns one cached requisition.
func (h *RequisitionHandler) GetRequisitionByID(c *gin.Context) {
	requisition, ok := h.Cache.FindRequisition(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requisition not found"})
		return
	}
	c.JSON(http.StatusOK, requisition)
}

// ApproveRequisition moves a pending requisition to approved, stamping the
// approver and timestamp. Only the changed columns are written; the store
// updates them in place. Two admins racing on the same record are not
// detected, last write wins.
func (h *RequisitionHandler) ApproveRequisition(c *gin.Context) {
	id := c.Param("id")

	requisition, ok := h.Cache.FindRequisition(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requisition not found"})
		return
	}
	if requisition.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending requisitions can be approved"})
		return
	}

	err := h.Client.Update(c.Request.Context(), models.SheetRequisitions, id, sheets.Row{
		"status":        string(models.StatusApproved),
		"approved_date": time.Now().UTC().Format(time.RFC3339),
		"approved_by":   c.GetString("user_full_name"),
	})
	if err != nil {
		h.writeUpdateError(c, err, "Failed to approve requisition")
		return
	}

	h.reloadRequisitions(c)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Requisition approved"})
}

type RejectRequisitionPayload struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectRequisition moves a pending requisition to rejected. A non-empty
// reason is required before any store call is made.
func (h *RequisitionHandler) RejectRequisition(c *gin.Context) {
	id := c.Param("id")

	var payload RejectRequisitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rejection reason is required"})
		return
	}

	requisition, ok := h.Cache.FindRequisition(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requisition not found"})
		return
	}
	if requisition.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending requisitions can be rejected"})
		return
	}

	err := h.Client.Update(c.Request.Context(), models.SheetRequisitions, id, sheets.Row{
		"status":        string(models.StatusRejected),
		"approved_date": time.Now().UTC().Format(time.RFC3339),
		"approved_by":   c.GetString("user_full_name"),
		"reject_reason": payload.Reason,
	})
	if err != nil {
		h.writeUpdateError(c, err, "Failed to reject requisition")
		return
	}

	h.reloadRequisitions(c)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Requisition rejected"})
}

// DeleteRequisition removes a requisition record from the store.
func (h *RequisitionHandler) DeleteRequisition(c *gin.Context) {
	err := h.Client.Delete(c.Request.Context(), models.SheetRequisitions, c.Param("id"))
	if err != nil {
		h.writeUpdateError(c, err, "Failed to delete requisition")
		return
	}

	h.reloadRequisitions(c)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Requisition deleted"})
}

// reloadRequisitions refreshes the requisitions snapshot after a mutation so
// the change becomes visible. A failed reload only logs: the mutation itself
// already succeeded.
func (h *RequisitionHandler) reloadRequisitions(c *gin.Context) {
	if err := h.Cache.LoadRequisitions(c.Request.Context()); err != nil {
		h.Logger.Warn("reloading requisitions after mutation failed", zap.Error(err))
	}
}

func (h *RequisitionHandler) writeUpdateError(c *gin.Context, err error, fallback string) {
	var storeErr *sheets.StoreError
	if errors.As(err, &storeErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": storeErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
