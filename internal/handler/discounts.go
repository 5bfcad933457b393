package handler

import (
	"net/http"
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DiscountsHandler struct{ svc service.DiscountService }

func NewDiscountsHandler(svc service.DiscountService) *DiscountsHandler {
	return &DiscountsHandler{svc: svc}
}

// Create godoc
// @Summary Create discount
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateDiscountRequest true "Discount data"
// @Success 201 {object} dto.DiscountResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/discounts [post]
func (h *DiscountsHandler) Create(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	discount, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusCreated, discountToResponse(discount))
}

func (h *DiscountsHandler) List(c *gin.Context) {
	discounts, err := h.svc.List(c.Request.Context(), c.Query("active"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list discounts"))
		return
	}
	resp := make([]dto.DiscountResponse, 0, len(discounts))
	for i := range discounts {
		resp = append(resp, discountToResponse(&discounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Applicable godoc
// @Summary Discounts usable at a branch right now
// @Description The storefront calls this to populate its discount picker.
// @Tags discounts
// @Produce json
// @Security BearerAuth
// @Param branch_id query string true "Branch UUID"
// @Success 200 {array} dto.DiscountResponse
// @Router /v1/discounts/applicable [get]
func (h *DiscountsHandler) Applicable(c *gin.Context) {
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("branch_id is required"))
		return
	}
	discounts, err := h.svc.ListApplicable(c.Request.Context(), branchID, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list discounts"))
		return
	}
	resp := make([]dto.DiscountResponse, 0, len(discounts))
	for i := range discounts {
		resp = append(resp, discountToResponse(&discounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DiscountsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	discount, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Discount not found"))
		return
	}
	c.JSON(http.StatusOK, discountToResponse(discount))
}

func (h *DiscountsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	discount, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, discountToResponse(discount))
}

func (h *DiscountsHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.Status(http.StatusNoContent)
}
