package handler

import (
	"net/http"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BranchesHandler struct{ svc service.BranchService }

func NewBranchesHandler(svc service.BranchService) *BranchesHandler {
	return &BranchesHandler{svc: svc}
}

// Create godoc
// @Summary Create branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateBranchRequest true "Branch data"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/branches [post]
func (h *BranchesHandler) Create(c *gin.Context) {
	var req dto.CreateBranchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	branch, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusCreated, branchToResponse(branch))
}

// List godoc
// @Summary List branches
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param active query string false "true (default) | false | all"
// @Success 200 {array} dto.BranchResponse
// @Router /v1/branches [get]
func (h *BranchesHandler) List(c *gin.Context) {
	branches, err := h.svc.List(c.Request.Context(), c.Query("active"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list branches"))
		return
	}
	resp := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		resp = append(resp, branchToResponse(&branches[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BranchesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	branch, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Branch not found"))
		return
	}
	c.JSON(http.StatusOK, branchToResponse(branch))
}

func (h *BranchesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateBranchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	branch, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, branchToResponse(branch))
}

func (h *BranchesHandler) Deactivate(c *gin.Context) {
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

func (h *BranchesHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.Status(http.StatusNoContent)
}
