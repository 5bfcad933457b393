package handler

import (
	"net/http"
	"strconv"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/middleware"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TimeclockHandler struct{ svc service.TimeclockService }

func NewTimeclockHandler(svc service.TimeclockService) *TimeclockHandler {
	return &TimeclockHandler{svc: svc}
}

// ClockIn godoc
// @Summary Clock in at a branch
// @Description Opens a work session for the authenticated worker. Fails if one is already open.
// @Tags timeclock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClockInRequest true "Branch and optional note"
// @Success 201 {object} dto.WorkSessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/timeclock/clock-in [post]
func (h *TimeclockHandler) ClockIn(c *gin.Context) {
	var req dto.ClockInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	workerID, _ := uuid.Parse(claims.WorkerID)

	session, err := h.svc.ClockIn(c.Request.Context(), workerID, claims, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrAlreadyClockedIn {
			status = http.StatusConflict
		}
		serviceError(c, status, err)
		return
	}
	c.JSON(http.StatusCreated, sessionToResponse(session))
}

// ClockOut godoc
// @Summary Clock out
// @Tags timeclock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClockOutRequest true "Optional note"
// @Success 200 {object} dto.WorkSessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/timeclock/clock-out [post]
func (h *TimeclockHandler) ClockOut(c *gin.Context) {
	var req dto.ClockOutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	workerID, _ := uuid.Parse(claims.WorkerID)

	session, err := h.svc.ClockOut(c.Request.Context(), workerID, req)
	if err != nil {
		status := http.StatusBadRequest
		if err == service.ErrNotClockedIn {
			status = http.StatusConflict
		}
		serviceError(c, status, err)
		return
	}
	c.JSON(http.StatusOK, sessionToResponse(session))
}

// Current returns the caller's open session, 404 when clocked out.
func (h *TimeclockHandler) Current(c *gin.Context) {
	claims := middleware.GetClaims(c)
	workerID, _ := uuid.Parse(claims.WorkerID)

	session, err := h.svc.CurrentSession(c.Request.Context(), workerID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("No open session"))
		return
	}
	c.JSON(http.StatusOK, sessionToResponse(session))
}

// List godoc
// @Summary List work sessions
// @Tags timeclock
// @Produce json
// @Security BearerAuth
// @Param worker_id query string false "Filter by worker"
// @Param branch_id query string false "Filter by branch"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 20)"
// @Success 200 {object} dto.WorkSessionListResponse
// @Router /v1/timeclock/sessions [get]
func (h *TimeclockHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := dto.SessionFilter{
		WorkerID: c.Query("worker_id"),
		BranchID: c.Query("branch_id"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     page,
		Limit:    limit,
	}

	sessions, total, err := h.svc.ListSessions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list sessions"))
		return
	}

	data := make([]dto.WorkSessionResponse, 0, len(sessions))
	for i := range sessions {
		data = append(data, sessionToResponse(&sessions[i]))
	}
	c.JSON(http.StatusOK, dto.WorkSessionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Timesheet godoc
// @Summary Worker timesheet totals for a date range
// @Tags timeclock
// @Produce json
// @Security BearerAuth
// @Param id path string true "Worker UUID"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.TimesheetResponse
// @Router /v1/timeclock/timesheet/{id} [get]
func (h *TimeclockHandler) Timesheet(c *gin.Context) {
	workerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Timesheet(c.Request.Context(), workerID, c.Query("from"), c.Query("to"))
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
