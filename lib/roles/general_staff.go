package roles

import (
	"expense-claims-backend/models"
)

type GeneralStaff struct {
	selfService
}

func (r *GeneralStaff) Role() models.UserRole {
	return models.GeneralStaffRole
}
