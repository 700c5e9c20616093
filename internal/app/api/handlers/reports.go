package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulsekit/pulse/internal/app/service/identity"
	reportsvc "github.com/pulsekit/pulse/internal/app/service/report"
	"github.com/pulsekit/pulse/pkg/response"
	"github.com/pulsekit/pulse/pkg/types"
)

type createReportRequest struct {
	Title       string    `json:"title"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// @Summary      Create report
// @Description  Records a report, gated by the plan's monthly report allowance.
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Param        id      path  string               true "Workspace id"
// @Param        request body  createReportRequest  true "Report"
// @Success      201  {object}  models.Report
// @Failure      402  {object}  response.Error
// @Router       /api/v1/workspaces/{id}/reports [post]
func ApiCreateReport(gate identity.Authorizer, reports *reportsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")

		ctx := c.Request.Context()
		userID, err := gate.Authorize(ctx, token, workspaceID,
			types.RoleAdmin, types.RoleConsultant)
		if err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		var req createReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err("Invalid request body"))
			return
		}

		rep, err := reports.Create(ctx, workspaceID, userID, reportsvc.CreateParams{
			Title:       req.Title,
			PeriodStart: req.PeriodStart,
			PeriodEnd:   req.PeriodEnd,
		})
		if err != nil {
			switch {
			case errors.Is(err, reportsvc.ErrInvalidTitle), errors.Is(err, reportsvc.ErrInvalidPeriod):
				c.JSON(http.StatusBadRequest, response.ErrDetails("Invalid report", err))
			case errors.Is(err, reportsvc.ErrLimitReached):
				c.JSON(http.StatusPaymentRequired, response.Err("Monthly report limit reached for current plan"))
			default:
				abortInternal(c, err)
			}
			return
		}
		c.JSON(http.StatusCreated, rep)
	}
}

// @Summary      List reports
// @Tags         Reports
// @Produce      json
// @Param        id  path  string  true "Workspace id"
// @Success      200  {array}  models.Report
// @Router       /api/v1/workspaces/{id}/reports [get]
func ApiListReports(gate identity.Authorizer, reports *reportsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")

		ctx := c.Request.Context()
		if _, err := gate.Authorize(ctx, token, workspaceID); err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		list, err := reports.List(ctx, workspaceID)
		if err != nil {
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func RegisterReportRoutes(r gin.IRouter, gate identity.Authorizer, reports *reportsvc.Service) {
	r.POST("/workspaces/:id/reports", ApiCreateReport(gate, reports))
	r.GET("/workspaces/:id/reports", ApiListReports(gate, reports))
}
