package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"expense-claims-backend/controllers"
	"expense-claims-backend/lib/roles"
	"expense-claims-backend/models"
	apimodels "expense-claims-backend/models/api"
	claimapimodels "expense-claims-backend/models/api/claim"
)

type reviewApiController struct {
	controllers.BaseAPIController
}

func InitReviewApiRouters(app *fiber.App) {
	controller := reviewApiController{}
	app.Route("review", func(router fiber.Router) {
		router.Get("claims", controller.pendingClaims)
		router.Get("employees", controller.managedEmployees)
		router.Route("claims/:id", func(idRoute fiber.Router) {
			idRoute.Post("approve", controller.approve)
			idRoute.Post("reject", controller.reject)
		})
	})
}

func (c *reviewApiController) getReviewer(ctx *fiber.Ctx) (roles.Reviewer, error) {
	actor, err := controllers.GetActor(ctx)
	if err != nil {
		return nil, err
	}
	reviewer, ok := actor.(roles.Reviewer)
	if !ok {
		return nil, errors.Wrapf(models.ErrUnauthorized, "роль «%s» не рассматривает заявки", actor.Role().ToHuman())
	}
	return reviewer, nil
}

// @Summary Заявки подчинённых на рассмотрении
// @Tags Рассмотрение заявок
// @Description Заявки подчинённых, ожидающие решения
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]claimapimodels.ClaimView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/claims [get]
func (c *reviewApiController) pendingClaims(ctx *fiber.Ctx) error {
	reviewer, err := c.getReviewer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	list, err := reviewer.GetEmployeeSubmittedClaims()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Список подчинённых
// @Tags Рассмотрение заявок
// @Description Список подчинённых сотрудников
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/employees [get]
func (c *reviewApiController) managedEmployees(ctx *fiber.Ctx) error {
	reviewer, err := c.getReviewer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	list, err := reviewer.ManagedEmployees()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка подчинённых")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Согласование заявки
// @Tags Рассмотрение заявок
// @Description Согласование заявки подчинённого
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/claims/{id}/approve [post]
func (c *reviewApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	reviewer, err := c.getReviewer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = reviewer.ApproveClaim(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонение заявки
// @Tags Рассмотрение заявок
// @Description Отклонение заявки подчинённого с указанием причины
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 claimapimodels.RejectRequest	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/review/claims/{id}/reject [post]
func (c *reviewApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload claimapimodels.RejectRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	reviewer, err := c.getReviewer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = reviewer.RejectClaim(id, payload.Feedback)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
