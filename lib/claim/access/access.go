package claimaccess

import (
	"github.com/pkg/errors"

	employeestore "expense-claims-backend/lib/employee/store"
	"expense-claims-backend/models"
	dbmodels "expense-claims-backend/models/db"
)

// Provider - проверки права пользователя на операцию с конкретной заявкой.
// Владение - для операций сотрудника над своей заявкой, подчинённость -
// для решений руководителя, запрет самопроверки - для решений и выплат.
type Provider interface {
	CheckOwner(actorID string, claim dbmodels.Claim) error
	CheckReview(managerID string, claim dbmodels.Claim) error
	CheckReimburse(officerID string, claim dbmodels.Claim) error
}

func NewInstance(employeeStore employeestore.Provider) Provider {
	return &impl{
		employeeStore: employeeStore,
	}
}

type impl struct {
	employeeStore employeestore.Provider
}

func (i impl) CheckOwner(actorID string, claim dbmodels.Claim) error {
	if claim.EmployeeID != actorID {
		return errors.Wrap(models.ErrUnauthorized, "заявка принадлежит другому сотруднику")
	}
	return nil
}

func (i impl) CheckReview(managerID string, claim dbmodels.Claim) error {
	if claim.EmployeeID == managerID {
		return errors.Wrap(models.ErrUnauthorized, "руководитель не может рассматривать собственную заявку")
	}
	owner := claim.Employee
	if owner == nil {
		rec, err := i.employeeStore.GetByID(claim.EmployeeID)
		if err != nil {
			return errors.Wrap(models.ErrPersistence, err.Error())
		}
		if rec == nil {
			return errors.Wrap(models.ErrNotFound, "владелец заявки не найден")
		}
		owner = rec
	}
	if !owner.IsManagedBy(managerID) {
		return errors.Wrap(models.ErrUnauthorized, "сотрудник не числится за этим руководителем")
	}
	return nil
}

func (i impl) CheckReimburse(officerID string, claim dbmodels.Claim) error {
	if claim.EmployeeID == officerID {
		return errors.Wrap(models.ErrUnauthorized, "нельзя возместить собственную заявку")
	}
	return nil
}
