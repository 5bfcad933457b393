package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/middleware"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Register godoc
// @Summary Register a new order
// @Description Creates a sale atomically: allocates the order number, decrements stock, writes movements and enqueues the receipt job. Replays with the same client_ref return the original order.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegisterOrderRequest true "Order detail"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders [post]
func (h *OrdersHandler) Register(c *gin.Context) {
	var req dto.RegisterOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	workerID, _ := uuid.Parse(claims.WorkerID)

	result, err := h.svc.Register(c.Request.Context(), workerID, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrStockConflict) {
			status = http.StatusConflict
		}
		serviceError(c, status, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, orderToResponse(result.Order, result.Change))
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Order not found"))
		return
	}
	c.JSON(http.StatusOK, orderToResponse(order, decimal.Zero))
}

// Void godoc
// @Summary Void an order
// @Description Restores stock with void_restore movements and marks the order voided. One transaction.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order UUID"
// @Param body body dto.VoidOrderRequest true "Void reason"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/orders/{id}/void [post]
func (h *OrdersHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.VoidOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	order, err := h.svc.Void(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, orderToResponse(order, decimal.Zero))
}

// List godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param branch_id query string false "Branch UUID"
// @Param status query string false "completed | voided | all"
// @Param date query string false "YYYY-MM-DD (default: today)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 20)"
// @Success 200 {object} dto.OrderListResponse
// @Router /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := dto.OrderFilter{
		BranchID: c.Query("branch_id"),
		Status:   c.Query("status"),
		Date:     c.Query("date"),
		Page:     page,
		Limit:    limit,
	}

	orders, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list orders"))
		return
	}

	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, orderToResponse(&orders[i], decimal.Zero))
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}
