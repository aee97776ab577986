package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"expense-claims-backend/controllers"
	"expense-claims-backend/lib/rbac"
	"expense-claims-backend/middleware"
	apimodels "expense-claims-backend/models/api"
)

type profileApiController struct {
	controllers.BaseAPIController
}

func InitProfileApiRouters(app *fiber.App) {
	controller := profileApiController{}
	app.Route("profile", func(router fiber.Router) {
		router.Get("permissions", controller.permissions)
	})
}

// @Summary Доступные операции
// @Tags Профиль
// @Description Операции, доступные роли текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile/permissions [get]
func (c *profileApiController) permissions(ctx *fiber.Ctx) error {
	role := middleware.GetUserRole(ctx)
	if role == "" {
		return ctx.SendStatus(fiber.StatusForbidden)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rbac.Instance.GetPermissions(role)))
}
