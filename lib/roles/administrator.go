package roles

import (
	employeehandler "expense-claims-backend/lib/employee"
	"expense-claims-backend/models"
	employeeapimodels "expense-claims-backend/models/api/employee"
)

// Administrator управляет учётными записями и не участвует в жизненном
// цикле заявок, поэтому не содержит selfService.
type Administrator struct {
	userID   string
	accounts employeehandler.Provider
}

func (r *Administrator) UserID() string {
	return r.userID
}

func (r *Administrator) Role() models.UserRole {
	return models.AdministratorRole
}

func (r *Administrator) CreateAccount(request employeeapimodels.CreateAccount) (employeeapimodels.EmployeeView, error) {
	return r.accounts.CreateAccount(request)
}

func (r *Administrator) ChangeRole(employeeID string, role models.UserRole) error {
	return r.accounts.ChangeRole(employeeID, role)
}

func (r *Administrator) DeleteAccount(employeeID string) error {
	return r.accounts.DeleteAccount(employeeID)
}

func (r *Administrator) SetEmployeesLineManager(employeeID, managerID string) error {
	return r.accounts.SetLineManager(employeeID, managerID)
}

func (r *Administrator) ChangeEmployeesRegion(employeeID, region string) error {
	return r.accounts.ChangeRegion(employeeID, region)
}

func (r *Administrator) ChangeEmployeesEmail(employeeID, email string) error {
	return r.accounts.ChangeEmail(employeeID, email)
}

func (r *Administrator) ListManagers() ([]employeeapimodels.EmployeeView, error) {
	return r.accounts.ListManagers()
}
