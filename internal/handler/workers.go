package handler

import (
	"net/http"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkersHandler struct{ svc service.WorkerService }

func NewWorkersHandler(svc service.WorkerService) *WorkersHandler {
	return &WorkersHandler{svc: svc}
}

// Create godoc
// @Summary Create worker account
// @Description Creates a staff account with its branch role assignments. Non-admin accounts need at least one active assignment.
// @Tags workers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateWorkerRequest true "Worker data"
// @Success 201 {object} dto.WorkerResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/workers [post]
func (h *WorkersHandler) Create(c *gin.Context) {
	var req dto.CreateWorkerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	worker, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusCreated, workerToResponse(worker))
}

// List godoc
// @Summary List workers
// @Tags workers
// @Produce json
// @Security BearerAuth
// @Param include_inactive query bool false "Include deactivated accounts"
// @Param branch_id query string false "Only workers assigned to this branch"
// @Success 200 {array} dto.WorkerResponse
// @Router /v1/workers [get]
func (h *WorkersHandler) List(c *gin.Context) {
	var (
		workers []model.Worker
		err     error
	)
	if raw := c.Query("branch_id"); raw != "" {
		branchID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid branch_id"))
			return
		}
		workers, err = h.svc.ListByBranch(c.Request.Context(), branchID)
	} else {
		workers, err = h.svc.List(c.Request.Context(), c.Query("include_inactive") == "true")
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list workers"))
		return
	}

	resp := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		resp = append(resp, workerToResponse(&workers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	worker, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Worker not found"))
		return
	}
	c.JSON(http.StatusOK, workerToResponse(worker))
}

func (h *WorkersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateWorkerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	worker, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, workerToResponse(worker))
}

// ReplaceAssignments godoc
// @Summary Replace a worker's branch assignments
// @Description Swaps the whole assignment set in one transaction.
// @Tags workers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Worker UUID"
// @Param body body dto.ReplaceAssignmentsRequest true "New assignment set"
// @Success 200 {object} dto.WorkerResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/workers/{id}/assignments [put]
func (h *WorkersHandler) ReplaceAssignments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.ReplaceAssignmentsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	worker, err := h.svc.ReplaceAssignments(c.Request.Context(), id, req)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, workerToResponse(worker))
}

func (h *WorkersHandler) Deactivate(c *gin.Context) {
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

func (h *WorkersHandler) Reactivate(c *gin.Context) {
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
