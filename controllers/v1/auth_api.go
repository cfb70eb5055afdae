package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"eia-backend/controllers"
	authhandler "eia-backend/lib/auth"
	"eia-backend/middleware"
	apimodels "eia-backend/models/api"
	authapimodels "eia-backend/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Use(middleware.AuthorizationRequired()).Get("me", controller.me)
	})
}

// @Summary Sign in
// @Tags Authentication
// @Description Sign in with reviewer/sponsor e-mail or applicant department number
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(payload.Login, payload.Password)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Current principal
// @Tags Authentication
// @Description Identity and role recorded in the access token
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.MeResponse}
// @Failure 401
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	resp := authapimodels.MeResponse{
		PrincipalID: middleware.GetPrincipalID(ctx),
		Role:        string(middleware.GetUserRole(ctx)),
		Name:        middleware.GetUserName(ctx),
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
