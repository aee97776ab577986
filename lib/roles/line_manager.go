package roles

import (
	employeehandler "expense-claims-backend/lib/employee"
	"expense-claims-backend/models"
	claimapimodels "expense-claims-backend/models/api/claim"
	employeeapimodels "expense-claims-backend/models/api/employee"
)

// LineManager - самообслуживание плюс решения по заявкам подчинённых.
// Запрет самопроверки и границу подчинённости контролирует движок.
type LineManager struct {
	selfService
	accounts employeehandler.Provider

	// список подчинённых, загружается при первом обращении
	managed []employeeapimodels.EmployeeView
}

func (r *LineManager) Role() models.UserRole {
	return models.LineManagerRole
}

// GetEmployeeSubmittedClaims - заявки подчинённых, ожидающие решения
func (r *LineManager) GetEmployeeSubmittedClaims() ([]claimapimodels.ClaimView, error) {
	return r.claims.ListManagedPending(r.userID)
}

func (r *LineManager) ApproveClaim(claimID string) error {
	return r.claims.Approve(r.userID, claimID)
}

func (r *LineManager) RejectClaim(claimID, feedback string) error {
	return r.claims.Reject(r.userID, claimID, feedback)
}

func (r *LineManager) ManagedEmployees() ([]employeeapimodels.EmployeeView, error) {
	if r.managed != nil {
		return r.managed, nil
	}
	list, err := r.accounts.ListManagedBy(r.userID)
	if err != nil {
		return nil, err
	}
	r.managed = list
	return list, nil
}
