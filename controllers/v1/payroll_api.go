package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"expense-claims-backend/controllers"
	claimhandler "expense-claims-backend/lib/claim"
	pdfexport "expense-claims-backend/lib/export/pdf"
	xlsexport "expense-claims-backend/lib/export/xls"
	"expense-claims-backend/lib/roles"
	"expense-claims-backend/models"
	apimodels "expense-claims-backend/models/api"
)

type payrollApiController struct {
	controllers.BaseAPIController
}

func InitPayrollApiRouters(app *fiber.App) {
	controller := payrollApiController{}
	app.Route("payroll", func(router fiber.Router) {
		router.Get("claims", controller.acceptedClaims)
		router.Get("claims/export", controller.exportAccepted)
		router.Route("claims/:id", func(idRoute fiber.Router) {
			idRoute.Get("remittance", controller.remittanceAdvice)
			idRoute.Post("reimburse", controller.reimburse)
		})
	})
}

func (c *payrollApiController) getPayer(ctx *fiber.Ctx) (roles.Payer, error) {
	actor, err := controllers.GetActor(ctx)
	if err != nil {
		return nil, err
	}
	payer, ok := actor.(roles.Payer)
	if !ok {
		return nil, errors.Wrapf(models.ErrUnauthorized, "роль «%s» не выполняет возмещение", actor.Role().ToHuman())
	}
	return payer, nil
}

// @Summary Согласованные заявки
// @Tags Возмещение расходов
// @Description Заявки, согласованные руководителями и ожидающие возмещения
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]claimapimodels.ClaimView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/claims [get]
func (c *payrollApiController) acceptedClaims(ctx *fiber.Ctx) error {
	payer, err := c.getPayer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	list, err := payer.GetAcceptedClaims()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Выгрузка согласованных заявок в xlsx
// @Tags Возмещение расходов
// @Description Выгрузка согласованных заявок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/claims/export [get]
func (c *payrollApiController) exportAccepted(ctx *fiber.Ctx) error {
	payer, err := c.getPayer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	list, err := payer.GetAcceptedClaims()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	buf, err := xlsexport.Instance.ExportClaimList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки заявок")
	}
	fileName := fmt.Sprintf("accepted_claims_%s.xlsx", time.Now().Format("02-01-2006"))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Справка о возмещении
// @Tags Возмещение расходов
// @Description Справка о возмещении по заявке в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/claims/{id}/remittance [get]
func (c *payrollApiController) remittanceAdvice(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	payer, err := c.getPayer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	view, err := claimhandler.Instance.Get(payer.UserID(), payer.Role(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	if view.Status != string(models.ClaimStatusReimbursed) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError("справка формируется только для возмещённых заявок"))
	}
	pdfFile, err := pdfexport.GenerateRemittanceAdvice(view)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования справки")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="remittance_%s.pdf"`, id))
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}

// @Summary Возмещение расходов по заявке
// @Tags Возмещение расходов
// @Description Перевод согласованной заявки в возмещённые
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/payroll/claims/{id}/reimburse [post]
func (c *payrollApiController) reimburse(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	payer, err := c.getPayer(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения пользователя")
	}
	err = payer.ReimburseExpense(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка возмещения по заявке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
