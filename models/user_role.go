package models

type UserRole string

const (
	GeneralStaffRole   UserRole = "GENERAL_STAFF"
	ConsultantRole     UserRole = "CONSULTANT"
	LineManagerRole    UserRole = "LINE_MANAGER"
	PayrollOfficerRole UserRole = "PAYROLL_OFFICER"
	AdministratorRole  UserRole = "ADMINISTRATOR"
)

var roleHumanName = map[UserRole]string{
	GeneralStaffRole:   "Сотрудник",
	ConsultantRole:     "Консультант",
	LineManagerRole:    "Линейный руководитель",
	PayrollOfficerRole: "Сотрудник расчётного отдела",
	AdministratorRole:  "Администратор",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

func (r UserRole) IsAdministrator() bool {
	return r == AdministratorRole
}

// CanOwnClaims - роли, от имени которых заводятся авансовые отчёты.
// Администратор работает только с учётными записями и заявок не имеет.
func (r UserRole) CanOwnClaims() bool {
	return r != AdministratorRole && r.IsValid()
}
