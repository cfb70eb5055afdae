package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"eia-backend/controllers"
	adminhandler "eia-backend/lib/admin"
	"eia-backend/middleware"
	apimodels "eia-backend/models/api"
	adminapimodels "eia-backend/models/api/admin"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Route("admin", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ReviewerRoleRequired())

		router.Post("set-password", controller.setPassword)
		router.Post("principals", controller.registerPrincipal)
	})
}

// @Summary Reset a principal's password
// @Tags Admin
// @Description Replace the stored credential of a reviewer, sponsor or applicant department
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		adminapimodels.SetPasswordData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/set-password [post]
func (c *adminApiController) setPassword(ctx *fiber.Ctx) error {
	var payload adminapimodels.SetPasswordData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	hMsg, err := adminhandler.Instance.SetPassword(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to reset the password")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary Register a principal
// @Tags Admin
// @Description Create a reviewer, sponsor or applicant department account
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		adminapimodels.RegisterPrincipalData	true	"request body"
// @Success 200 {object} apimodels.Response{data=adminapimodels.RegisterPrincipalView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/principals [post]
func (c *adminApiController) registerPrincipal(ctx *fiber.Ctx) error {
	var payload adminapimodels.RegisterPrincipalData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	id, hMsg, err := adminhandler.Instance.RegisterPrincipal(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to register the principal")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(adminapimodels.RegisterPrincipalView{
		PrincipalID: id,
		Role:        payload.Role,
	}))
}
