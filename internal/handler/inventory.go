package handler

import (
	"net/http"
	"strconv"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ─── Categories ──────────────────────────────────────────────────────────────

func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	category, err := h.svc.CreateCategory(c.Request.Context(), req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusCreated, categoryToResponse(category))
}

func (h *InventoryHandler) ListCategories(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("branch_id is required"))
		return
	}
	categories, err := h.svc.ListCategories(c.Request.Context(), branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list categories"))
		return
	}
	resp := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, categoryToResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	category, err := h.svc.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(category))
}

func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Items ───────────────────────────────────────────────────────────────────

// CreateItem godoc
// @Summary Create inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateItemRequest true "Item data"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusCreated, itemToResponse(item))
}

// ListItems godoc
// @Summary List inventory items
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param branch_id query string false "Branch UUID"
// @Param category_id query string false "Category UUID"
// @Param name query string false "Name substring"
// @Param barcode query string false "Exact barcode"
// @Param active query string false "true (default) | false | all"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 20)"
// @Success 200 {object} dto.ItemListResponse
// @Router /v1/inventory/items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := dto.ItemFilter{
		BranchID:   c.Query("branch_id"),
		CategoryID: c.Query("category_id"),
		Name:       c.Query("name"),
		Barcode:    c.Query("barcode"),
		Active:     c.Query("active"),
		Page:       page,
		Limit:      limit,
	}

	items, total, err := h.svc.ListItems(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list items"))
		return
	}

	data := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		data = append(data, itemToResponse(&items[i]))
	}
	c.JSON(http.StatusOK, dto.ItemListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	item, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Item not found"))
		return
	}
	c.JSON(http.StatusOK, itemToResponse(item))
}

// GetByBarcode resolves a scanned barcode to the matching active item.
func (h *InventoryHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	item, err := h.svc.GetItemByBarcode(c.Request.Context(), barcode)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("No item with that barcode"))
		return
	}
	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *InventoryHandler) DeactivateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.DeactivateItem(c.Request.Context(), id); err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) ReactivateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.ReactivateItem(c.Request.Context(), id); err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Stock ───────────────────────────────────────────────────────────────────

// AdjustStock godoc
// @Summary Manually adjust stock
// @Description Applies a signed delta and writes the audit movement atomically.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item UUID"
// @Param body body dto.AdjustStockRequest true "Delta and reason"
// @Success 200 {object} dto.ItemResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventory/items/{id}/stock [patch]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrStockBelowZero {
			status = http.StatusConflict
		}
		serviceError(c, status, err)
		return
	}
	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("branch_id is required"))
		return
	}
	items, err := h.svc.ListLowStock(c.Request.Context(), branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list low stock items"))
		return
	}
	resp := make([]dto.LowStockAlertResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.LowStockAlertResponse{
			ItemID:     it.ID.String(),
			Name:       it.Name,
			Stock:      it.Stock,
			LowStockAt: it.LowStockAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	movements, err := h.svc.ListMovements(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list movements"))
		return
	}
	resp := make([]dto.StockMovementResponse, 0, len(movements))
	for i := range movements {
		resp = append(resp, movementToResponse(&movements[i]))
	}
	c.JSON(http.StatusOK, resp)
}
