package roles

import (
	"github.com/pkg/errors"

	claimhandler "expense-claims-backend/lib/claim"
	employeehandler "expense-claims-backend/lib/employee"
	"expense-claims-backend/models"
	dbmodels "expense-claims-backend/models/db"
)

// Actor - пользователь, связанный со своим набором операций.
// По одному конкретному типу на роль; общие операции сотрудника живут
// в selfService и подключаются встраиванием, без общего базового состояния.
type Actor interface {
	UserID() string
	Role() models.UserRole
}

// Deps - зависимости ролей; по умолчанию берутся глобальные обработчики
type Deps struct {
	Claims   claimhandler.Provider
	Accounts employeehandler.Provider
}

func defaultDeps() Deps {
	return Deps{
		Claims:   claimhandler.Instance,
		Accounts: employeehandler.Instance,
	}
}

func New(user dbmodels.Employee) (Actor, error) {
	return NewWithDeps(user, defaultDeps())
}

func NewWithDeps(user dbmodels.Employee, deps Deps) (Actor, error) {
	base := selfService{
		userID: user.ID,
		claims: deps.Claims,
	}
	switch user.Role {
	case models.GeneralStaffRole:
		return &GeneralStaff{selfService: base}, nil
	case models.ConsultantRole:
		return &Consultant{selfService: base}, nil
	case models.LineManagerRole:
		return &LineManager{
			selfService: base,
			accounts:    deps.Accounts,
		}, nil
	case models.PayrollOfficerRole:
		return &PayrollOfficer{selfService: base}, nil
	case models.AdministratorRole:
		return &Administrator{
			userID:   user.ID,
			accounts: deps.Accounts,
		}, nil
	}
	return nil, errors.Errorf("неизвестная роль пользователя (%v)", user.Role)
}
