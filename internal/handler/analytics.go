package handler

import (
	"net/http"
	"strconv"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/dto"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/report"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler struct{ svc service.AnalyticsService }

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Summary godoc
// @Summary Sales summary for a branch and date range
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param branch_id query string true "Branch UUID"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.SalesSummaryResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	filter := analyticsFilter(c)
	resp, err := h.svc.Summary(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopItems godoc
// @Summary Best selling items by quantity
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param branch_id query string true "Branch UUID"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Param limit query int false "Max rows (default 10)"
// @Success 200 {array} dto.TopItemResponse
// @Router /v1/analytics/top-items [get]
func (h *AnalyticsHandler) TopItems(c *gin.Context) {
	filter := analyticsFilter(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := h.svc.TopItems(c.Request.Context(), filter, limit)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Daily godoc
// @Summary Daily net sales series for dashboard charts
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param branch_id query string true "Branch UUID"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {array} dto.DailyPoint
// @Router /v1/analytics/daily [get]
func (h *AnalyticsHandler) Daily(c *gin.Context) {
	filter := analyticsFilter(c)
	resp, err := h.svc.DailySeries(c.Request.Context(), filter)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary Download the sales summary as an XLSX workbook
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param branch_id query string true "Branch UUID"
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {file} binary
// @Failure 400 {object} apierror.APIError
// @Router /v1/analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	filter := analyticsFilter(c)
	ctx := c.Request.Context()

	summary, err := h.svc.Summary(ctx, filter)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	topItems, err := h.svc.TopItems(ctx, filter, 10)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}
	daily, err := h.svc.DailySeries(ctx, filter)
	if err != nil {
		serviceError(c, http.StatusBadRequest, err)
		return
	}

	buf, err := report.SalesXLSX(summary, topItems, daily)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to render workbook"))
		return
	}

	filename := report.SalesXLSXFilename(filter.From, filter.To)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func analyticsFilter(c *gin.Context) dto.AnalyticsFilter {
	return dto.AnalyticsFilter{
		BranchID: c.Query("branch_id"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
}
