package roles

import (
	"expense-claims-backend/models"
	claimapimodels "expense-claims-backend/models/api/claim"
)

// PayrollOfficer - самообслуживание плюс возмещение согласованных заявок.
// Видит согласованные заявки по всей системе, без привязки к руководителю.
type PayrollOfficer struct {
	selfService
}

func (r *PayrollOfficer) Role() models.UserRole {
	return models.PayrollOfficerRole
}

func (r *PayrollOfficer) GetAcceptedClaims() ([]claimapimodels.ClaimView, error) {
	return r.claims.ListAccepted()
}

func (r *PayrollOfficer) ReimburseExpense(claimID string) error {
	return r.claims.Reimburse(r.userID, claimID)
}
