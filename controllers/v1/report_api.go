package apiv1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"eia-backend/config"
	"eia-backend/controllers"
	reporthandler "eia-backend/lib/report"
	"eia-backend/middleware"
	apimodels "eia-backend/models/api"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ReviewerRoleRequired())

		router.Get("dashboard", controller.dashboard)
		router.Get("aging", controller.aging)
		router.Get("high-value", controller.highValue)
		router.Get("energy", controller.energy)
		router.Get("payments", controller.payments)
		router.Get("payments/export", controller.paymentsExport)
	})
}

// @Summary Status dashboard
// @Tags Reports
// @Description Status counts and the recent application feed
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=reportapimodels.DashboardView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/dashboard [get]
func (c *reportApiController) dashboard(ctx *fiber.Ctx) error {
	view, err := reporthandler.Instance.Dashboard()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to build the dashboard")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Aging report
// @Tags Reports
// @Description Open applications older than the given number of days
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   days				query		int		false	"minimum age in days"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.AgingRow}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/aging [get]
func (c *reportApiController) aging(ctx *fiber.Ctx) error {
	days := ctx.QueryInt("days", config.Conf.Rebate.AgingDays)
	if days < 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("days must not be negative"))
	}
	rows, err := reporthandler.Instance.Aging(days)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to build the aging report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rows))
}

// @Summary High value audit
// @Tags Reports
// @Description Approvals at or above the given amount
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   amount				query		number	false	"minimum approved amount"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.HighValueRow}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/high-value [get]
func (c *reportApiController) highValue(ctx *fiber.Ctx) error {
	minAmount := config.Conf.Rebate.HighValueThreshold
	if value := ctx.Query("amount", ""); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || parsed < 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("invalid value of parameter amount"))
		}
		minAmount = parsed
	}
	rows, err := reporthandler.Instance.HighValue(minAmount)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to build the high value report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rows))
}

// @Summary Campaign rollup
// @Tags Reports
// @Description Per-campaign application counts and committed amounts
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]reportapimodels.CampaignMetrics}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/energy [get]
func (c *reportApiController) energy(ctx *fiber.Ctx) error {
	rows, err := reporthandler.Instance.Energy()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to build the campaign report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rows))
}

// @Summary Payment ledger
// @Tags Reports
// @Description Payments of approved and disbursed applications within the date range
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   start_date			query		string	false	"YYYY-MM-DD"
// @Param   end_date			query		string	false	"YYYY-MM-DD"
// @Success 200 {object} apimodels.Response{data=reportapimodels.PaymentLedger}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/payments [get]
func (c *reportApiController) payments(ctx *fiber.Ctx) error {
	startDate, endDate, err := c.dateRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	ledger, err := reporthandler.Instance.Payments(startDate, endDate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to build the payment ledger")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(ledger))
}

// @Summary Payment ledger. Export to Excel
// @Tags Reports
// @Description Payment ledger for the date range as an xlsx file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   start_date			query		string	false	"YYYY-MM-DD"
// @Param   end_date			query		string	false	"YYYY-MM-DD"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/payments/export [get]
func (c *reportApiController) paymentsExport(ctx *fiber.Ctx) error {
	startDate, endDate, err := c.dateRange(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := reporthandler.Instance.PaymentsExportToXls(startDate, endDate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to export the payment ledger to Excel")
	}
	fileName := fmt.Sprintf("payments-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

func (c *reportApiController) dateRange(ctx *fiber.Ctx) (startDate, endDate string, err error) {
	startDate = ctx.Query("start_date", "")
	endDate = ctx.Query("end_date", "")
	if startDate != "" {
		if _, err = time.Parse("2006-01-02", startDate); err != nil {
			return "", "", errors.New("start_date must be YYYY-MM-DD")
		}
	}
	if endDate != "" {
		if _, err = time.Parse("2006-01-02", endDate); err != nil {
			return "", "", errors.New("end_date must be YYYY-MM-DD")
		}
	}
	return startDate, endDate, nil
}
