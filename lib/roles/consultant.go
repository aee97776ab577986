package roles

import (
	"expense-claims-backend/models"
)

// Consultant совпадает по возможностям с GeneralStaff: только собственные
// заявки. Отдельный тип сохраняет различие ролей в учётных записях.
type Consultant struct {
	selfService
}

func (r *Consultant) Role() models.UserRole {
	return models.ConsultantRole
}
