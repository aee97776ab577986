package apiv1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"expense-claims-backend/controllers"
	claimhandler "expense-claims-backend/lib/claim"
	"expense-claims-backend/lib/roles"
	"expense-claims-backend/models"
	apimodels "expense-claims-backend/models/api"
	claimapimodels "expense-claims-backend/models/api/claim"
)

type claimApiController struct {
	controllers.BaseAPIController
}

func InitClaimApiRouters(app *fiber.App) {
	controller := claimApiController{}
	app.Route("claims", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("amount", controller.updateAmount)
			idRoute.Put("bank_details", controller.updateBankDetails)
			idRoute.Post("submit", controller.submit)
			idRoute.Post("appeal", controller.appeal)
			idRoute.Route("evidence", func(evidenceRoute fiber.Router) {
				evidenceRoute.Post("", controller.uploadEvidence)
				evidenceRoute.Get(":file_name", controller.downloadEvidence)
				evidenceRoute.Delete(":file_name", controller.deleteEvidence)
			})
		})
	})
}

func (c *claimApiController) getOwner(ctx *fiber.Ctx) (roles.ClaimOwner, error) {
	actor, err := controllers.GetActor(ctx)
	if err != nil {
		return nil, err
	}
	owner, ok := actor.(roles.ClaimOwner)
	if !ok {
		return nil, errors.Wrapf(models.ErrUnauthorized, "роль «%s» не работает с собственными заявками", actor.Role().ToHuman())
	}
	return owner, nil
}

// @Summary Создание черновика заявки
// @Tags Заявки на возмещение
// @Description Создание черновика заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 claimapimodels.ClaimData	true	"request body"
// @Success 200 {object} apimodels.Response{data=claimapimodels.ClaimView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims [post]
func (c *claimApiController) create(ctx *fiber.Ctx) error {
	var payload claimapimodels.ClaimData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	view, err := owner.CreateDraftClaim(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Список собственных заявок в статусе
// @Tags Заявки на возмещение
// @Description Список собственных заявок в статусе
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 claimapimodels.ClaimListFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]claimapimodels.ClaimView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/list [post]
func (c *claimApiController) list(ctx *fiber.Ctx) error {
	var payload claimapimodels.ClaimListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	list, err := owner.GetClaimsByStatus(payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение заявки
// @Tags Заявки на возмещение
// @Description Получение заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=claimapimodels.ClaimView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id} [get]
func (c *claimApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor, err := controllers.GetActor(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	view, err := claimhandler.Instance.Get(actor.UserID(), actor.Role(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Изменение описания заявки
// @Tags Заявки на возмещение
// @Description Изменение описания заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 claimapimodels.ClaimData	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id} [put]
func (c *claimApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload claimapimodels.ClaimData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = owner.UpdateClaimDetails(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление черновика заявки
// @Tags Заявки на возмещение
// @Description Удаление черновика заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id} [delete]
func (c *claimApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = owner.DeleteDraftClaim(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления черновика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Изменение суммы заявки
// @Tags Заявки на возмещение
// @Description Изменение суммы заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 claimapimodels.AmountUpdate	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id}/amount [put]
func (c *claimApiController) updateAmount(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload claimapimodels.AmountUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = owner.UpdateClaimAmount(id, payload.Amount)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения суммы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Изменение банковских реквизитов
// @Tags Заявки на возмещение
// @Description Изменение банковских реквизитов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 claimapimodels.BankDetails	true	"request body"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id}/bank_details [put]
func (c *claimApiController) updateBankDetails(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload claimapimodels.BankDetails
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = owner.UpdateClaimBankAccountDetails(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения реквизитов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Подача заявки на рассмотрение
// @Tags Заявки на возмещение
// @Description Подача черновика на рассмотрение руководителю
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=claimapimodels.ClaimView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id}/submit [post]
func (c *claimApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	view, err := owner.SubmitClaim(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Повторная подача после отклонения
// @Tags Заявки на возмещение
// @Description Повторная подача отклонённой заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response{data=claimapimodels.ClaimView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id}/appeal [post]
func (c *claimApiController) appeal(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	view, err := owner.AppealClaim(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка повторной подачи заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Добавление вложения
// @Tags Заявки на возмещение
// @Description Добавление подтверждающего документа к заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param   file				formData	file	true	"вложение"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id}/evidence [post]
func (c *claimApiController) uploadEvidence(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл из запроса"))
	}

	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = owner.AddEvidence(ctx.UserContext(), id, fileHeader.Filename, body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Скачивание вложения
// @Tags Заявки на возмещение
// @Description Скачивание подтверждающего документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param   file_name    		path    string  true	"имя файла"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id}/evidence/{file_name} [get]
func (c *claimApiController) downloadEvidence(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, err := c.GetIDByKey(ctx, "file_name")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	actor, err := controllers.GetActor(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	body, err := claimhandler.Instance.GetEvidence(ctx.UserContext(), actor.UserID(), actor.Role(), id, fileName)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения вложения")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Удаление вложения
// @Tags Заявки на возмещение
// @Description Удаление подтверждающего документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Param   file_name    		path    string  true	"имя файла"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/claims/{id}/evidence/{file_name} [delete]
func (c *claimApiController) deleteEvidence(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, err := c.GetIDByKey(ctx, "file_name")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	owner, err := c.getOwner(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = owner.RemoveEvidence(ctx.UserContext(), id, fileName)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
