package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"eia-backend/controllers"
	rebatehandler "eia-backend/lib/rebate"
	"eia-backend/middleware"
	"eia-backend/models"
	apimodels "eia-backend/models/api"
	rebateapimodels "eia-backend/models/api/rebate"
)

type rebateApiController struct {
	controllers.BaseAPIController
}

func InitRebateApiRouters(app *fiber.App) {
	controller := rebateApiController{}
	app.Route("rebates", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())

		router.Post("submit", middleware.ApplicantRoleRequired(), controller.submit)
		router.Post("draft", middleware.ApplicantRoleRequired(), controller.saveDraft)
		router.Delete("draft/:id", middleware.ApplicantRoleRequired(), controller.deleteDraft)
		router.Get("my", middleware.ApplicantRoleRequired(), controller.myApplications)
		router.Post(":id/resubmit", middleware.ApplicantRoleRequired(), controller.resubmit)

		router.Post("", middleware.ReviewerRoleRequired(), controller.submitAssisted)
		router.Get("", middleware.ReviewerRoleRequired(), controller.list)
		router.Get(":id/review", middleware.ReviewerRoleRequired(), controller.review)
		router.Post(":id/decision", middleware.ReviewerRoleRequired(), controller.decision)
		router.Post(":id/status", middleware.ReviewerRoleRequired(), controller.updateStatus)
	})
}

// @Summary Submit a rebate application
// @Tags Rebates
// @Description Submit a new application for the signed-in department
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		rebateapimodels.SubmitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/submit [post]
func (c *rebateApiController) submit(ctx *fiber.Ctx) error {
	var payload rebateapimodels.SubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	departmentID := middleware.GetPrincipalID(ctx)
	sopNumber, err := rebatehandler.Instance.Submit(departmentID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to submit the application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(sopNumber))
}

// @Summary Save a draft application
// @Tags Rebates
// @Description Save an incomplete application without entering review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		rebateapimodels.SubmitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/draft [post]
func (c *rebateApiController) saveDraft(ctx *fiber.Ctx) error {
	var payload rebateapimodels.SubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.ValidateDraft(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	departmentID := middleware.GetPrincipalID(ctx)
	sopNumber, err := rebatehandler.Instance.SaveDraft(departmentID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to save the draft")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(sopNumber))
}

// @Summary Delete a draft application
// @Tags Rebates
// @Description Delete an own application while it is still in draft
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "SOP number"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/draft/{id} [delete]
func (c *rebateApiController) deleteDraft(ctx *fiber.Ctx) error {
	sopNumber, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	departmentID := middleware.GetPrincipalID(ctx)
	hMsg, err := rebatehandler.Instance.DeleteDraft(departmentID, sopNumber)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to delete the draft")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary List own applications
// @Tags Rebates
// @Description Recent applications of the signed-in department
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]rebateapimodels.RebateView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/my [get]
func (c *rebateApiController) myApplications(ctx *fiber.Ctx) error {
	departmentID := middleware.GetPrincipalID(ctx)
	list, err := rebatehandler.Instance.ListByDepartment(departmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to list the applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Resubmit after revision
// @Tags Rebates
// @Description Return an own revision-requested application to the review queue
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "SOP number"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/{id}/resubmit [post]
func (c *rebateApiController) resubmit(ctx *fiber.Ctx) error {
	sopNumber, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	departmentID := middleware.GetPrincipalID(ctx)
	hMsg, err := rebatehandler.Instance.Resubmit(departmentID, sopNumber)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to resubmit the application")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary Submit an application for a department
// @Tags Rebates
// @Description Assisted intake, enters review on behalf of the named department
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		rebateapimodels.AssistedSubmitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int64}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates [post]
func (c *rebateApiController) submitAssisted(ctx *fiber.Ctx) error {
	var payload rebateapimodels.AssistedSubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	sopNumber, err := rebatehandler.Instance.SubmitAssisted(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to submit the application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(sopNumber))
}

// @Summary List applications
// @Tags Rebates
// @Description All applications with committed amounts, optionally narrowed by status filter
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status_filter		query		string	false	"all | disbursed | pending_disbursement | rejected | pending"
// @Success 200 {object} apimodels.Response{data=rebateapimodels.RebateListView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates [get]
func (c *rebateApiController) list(ctx *fiber.Ctx) error {
	filter := models.ListStatusFilter(ctx.Query("status_filter", string(models.ListFilterAll)))
	view, err := rebatehandler.Instance.ListAll(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to list the applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Application review card
// @Tags Rebates
// @Description Full application detail for review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "SOP number"
// @Success 200 {object} apimodels.Response{data=rebateapimodels.ReviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/{id}/review [get]
func (c *rebateApiController) review(ctx *fiber.Ctx) error {
	sopNumber, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	view, err := rebatehandler.Instance.GetReview(sopNumber)
	if err != nil {
		if errors.Is(err, rebatehandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to load the application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Record a decision
// @Tags Rebates
// @Description Approve, reject or request revision of an application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "SOP number"
// @Param	body				body		rebateapimodels.DecisionData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/{id}/decision [post]
func (c *rebateApiController) decision(ctx *fiber.Ctx) error {
	sopNumber, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload rebateapimodels.DecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	reviewerID := middleware.GetPrincipalID(ctx)
	hMsg, err := rebatehandler.Instance.Decision(sopNumber, reviewerID, payload)
	if err != nil {
		if errors.Is(err, rebatehandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to record the decision")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.SendStatus(fiber.StatusOK)
}

// @Summary Set application status
// @Tags Rebates
// @Description Administrative status override with a note
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "SOP number"
// @Param	body				body		rebateapimodels.StatusUpdateData	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/rebates/{id}/status [post]
func (c *rebateApiController) updateStatus(ctx *fiber.Ctx) error {
	sopNumber, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload rebateapimodels.StatusUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := rebatehandler.Instance.UpdateStatus(sopNumber, payload); err != nil {
		if errors.Is(err, rebatehandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "unable to update the status")
	}
	return ctx.SendStatus(fiber.StatusOK)
}
