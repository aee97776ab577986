package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"expense-claims-backend/db"
	employeestore "expense-claims-backend/lib/employee/store"
	"expense-claims-backend/lib/roles"
	"expense-claims-backend/middleware"
	"expense-claims-backend/models"
)

var employees employeestore.Provider

func InitActorSource() {
	employees = employeestore.NewInstance(db.DB)
}

// GetActor - пользователь запроса в виде ролевого типа.
// Учётная запись перечитывается из базы: токен мог быть выдан до смены роли
func GetActor(ctx *fiber.Ctx) (roles.Actor, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, errors.Wrap(models.ErrUnauthorized, "пользователь не определён")
	}
	rec, err := employees.GetByID(userID)
	if err != nil {
		return nil, errors.Wrap(models.ErrPersistence, err.Error())
	}
	if rec == nil || !rec.IsActive {
		return nil, errors.Wrap(models.ErrUnauthorized, "учётная запись не найдена или отключена")
	}
	return roles.New(*rec)
}
