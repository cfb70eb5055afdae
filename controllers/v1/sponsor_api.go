package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"eia-backend/controllers"
	approvalhandler "eia-backend/lib/approval"
	"eia-backend/middleware"
	"eia-backend/models"
	apimodels "eia-backend/models/api"
	rebateapimodels "eia-backend/models/api/rebate"
)

type sponsorApiController struct {
	controllers.BaseAPIController
}

func InitSponsorApiRouters(app *fiber.App) {
	controller := sponsorApiController{}
	app.Route("sponsor", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.SponsorRoleRequired())

		router.Get("approvals", controller.approvals)
		router.Post("rebates/:id/disburse", controller.disburse)
		router.Get("rebates/:id/receipt", controller.receipt)
	})
}

// @Summary Assigned applications
// @Tags Sponsor
// @Description Applications assigned to the signed-in sponsor, with reconciled approval data
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status_filter		query		string	false	"all | pending | approved"
// @Success 200 {object} apimodels.Response{data=[]rebateapimodels.SponsorApprovalView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sponsor/approvals [get]
func (c *sponsorApiController) approvals(ctx *fiber.Ctx) error {
	sponsorID := middleware.GetPrincipalID(ctx)
	filter := models.SponsorFilter(ctx.Query("status_filter", string(models.SponsorFilterAll)))
	list, err := approvalhandler.Instance.ListForSponsor(sponsorID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to list the assigned applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Disburse an application
// @Tags Sponsor
// @Description Record the disbursed amount and payment date for an assigned application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "SOP number"
// @Param	body				body		rebateapimodels.DisburseData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sponsor/rebates/{id}/disburse [post]
func (c *sponsorApiController) disburse(ctx *fiber.Ctx) error {
	sopNumber, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload rebateapimodels.DisburseData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	sponsorID := middleware.GetPrincipalID(ctx)
	hMsg, err := approvalhandler.Instance.Disburse(sponsorID, sopNumber, payload.Amount)
	if err != nil {
		if errors.Is(err, approvalhandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to disburse the application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary Disbursement receipt
// @Tags Sponsor
// @Description PDF receipt for a disbursed application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "SOP number"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/sponsor/rebates/{id}/receipt [get]
func (c *sponsorApiController) receipt(ctx *fiber.Ctx) error {
	sopNumber, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	sponsorID := middleware.GetPrincipalID(ctx)
	data, err := approvalhandler.Instance.Receipt(sponsorID, sopNumber)
	if err != nil {
		if errors.Is(err, approvalhandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to build the receipt")
	}
	fileName := fmt.Sprintf("receipt-%v.pdf", sopNumber)
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
