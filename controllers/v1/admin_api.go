package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"expense-claims-backend/controllers"
	employeehandler "expense-claims-backend/lib/employee"
	"expense-claims-backend/lib/roles"
	"expense-claims-backend/models"
	"expense-claims-backend/middleware"
	apimodels "expense-claims-backend/models/api"
	employeeapimodels "expense-claims-backend/models/api/employee"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Route("accounts", func(router fiber.Router) {
		router.Use(middleware.AdministratorRequired())

		router.Post("", controller.create)
		router.Get("managers", controller.listManagers)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("role", controller.changeRole)
			idRoute.Put("line_manager", controller.setLineManager)
			idRoute.Put("region", controller.changeRegion)
			idRoute.Put("email", controller.changeEmail)
		})
	})
}

func (c *adminApiController) getManager(ctx *fiber.Ctx) (roles.AccountManager, error) {
	actor, err := controllers.GetActor(ctx)
	if err != nil {
		return nil, err
	}
	manager, ok := actor.(roles.AccountManager)
	if !ok {
		return nil, errors.Wrapf(models.ErrUnauthorized, "роль «%s» не управляет учётными записями", actor.Role().ToHuman())
	}
	return manager, nil
}

// @Summary Создание учётной записи
// @Tags Учётные записи
// @Description Создание учётной записи сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.CreateAccount	true	"request body"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts [post]
func (c *adminApiController) create(ctx *fiber.Ctx) error {
	var payload employeeapimodels.CreateAccount
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	manager, err := c.getManager(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	view, err := manager.CreateAccount(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания учётной записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список линейных руководителей
// @Tags Учётные записи
// @Description Список линейных руководителей для назначения сотрудникам
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts/managers [get]
func (c *adminApiController) listManagers(ctx *fiber.Ctx) error {
	manager, err := c.getManager(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	list, err := manager.ListManagers()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка руководителей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение учётной записи
// @Tags Учётные записи
// @Description Получение учётной записи сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=employeeapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts/{id} [get]
func (c *adminApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if _, err = c.getManager(ctx); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	view, err := employeehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения учётной записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Удаление учётной записи
// @Tags Учётные записи
// @Description Отключение учётной записи сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts/{id} [delete]
func (c *adminApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	manager, err := c.getManager(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = manager.DeleteAccount(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления учётной записи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Изменение роли
// @Tags Учётные записи
// @Description Изменение роли сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.ChangeRole	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts/{id}/role [put]
func (c *adminApiController) changeRole(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload employeeapimodels.ChangeRole
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	manager, err := c.getManager(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = manager.ChangeRole(id, payload.Role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения роли")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Назначение руководителя
// @Tags Учётные записи
// @Description Назначение руководителя сотруднику
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.SetLineManager	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts/{id}/line_manager [put]
func (c *adminApiController) setLineManager(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload employeeapimodels.SetLineManager
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	manager, err := c.getManager(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = manager.SetEmployeesLineManager(id, payload.LineManagerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения руководителя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Изменение региона
// @Tags Учётные записи
// @Description Изменение региона сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.ChangeRegion	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts/{id}/region [put]
func (c *adminApiController) changeRegion(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload employeeapimodels.ChangeRegion
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	manager, err := c.getManager(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = manager.ChangeEmployeesRegion(id, payload.Region)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения региона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Изменение почты
// @Tags Учётные записи
// @Description Изменение почты сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employeeapimodels.ChangeEmail	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/accounts/{id}/email [put]
func (c *adminApiController) changeEmail(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload employeeapimodels.ChangeEmail
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	manager, err := c.getManager(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = manager.ChangeEmployeesEmail(id, payload.Email)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения почты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
