package roles

import (
	"context"

	"github.com/shopspring/decimal"

	"expense-claims-backend/models"
	claimapimodels "expense-claims-backend/models/api/claim"
	employeeapimodels "expense-claims-backend/models/api/employee"
)

// ClaimOwner - операции сотрудника над собственными заявками.
// Реализуется всеми ролями, кроме администратора.
type ClaimOwner interface {
	Actor
	CreateDraftClaim(data claimapimodels.ClaimData) (claimapimodels.ClaimView, error)
	SubmitClaim(claimID string) (claimapimodels.ClaimView, error)
	AppealClaim(claimID string) (claimapimodels.ClaimView, error)
	UpdateClaimDetails(claimID string, data claimapimodels.ClaimData) error
	UpdateClaimAmount(claimID string, amount decimal.Decimal) error
	UpdateClaimBankAccountDetails(claimID string, details claimapimodels.BankDetails) error
	DeleteDraftClaim(claimID string) error
	AddEvidence(ctx context.Context, claimID, fileName string, body []byte) error
	RemoveEvidence(ctx context.Context, claimID, fileName string) error
	GetClaimsByStatus(status models.ClaimStatus) ([]claimapimodels.ClaimView, error)
}

// Reviewer - решения по заявкам подчинённых
type Reviewer interface {
	Actor
	GetEmployeeSubmittedClaims() ([]claimapimodels.ClaimView, error)
	ApproveClaim(claimID string) error
	RejectClaim(claimID, feedback string) error
	ManagedEmployees() ([]employeeapimodels.EmployeeView, error)
}

// Payer - возмещение согласованных заявок
type Payer interface {
	Actor
	GetAcceptedClaims() ([]claimapimodels.ClaimView, error)
	ReimburseExpense(claimID string) error
}

// AccountManager - управление учётными записями
type AccountManager interface {
	Actor
	CreateAccount(request employeeapimodels.CreateAccount) (employeeapimodels.EmployeeView, error)
	ChangeRole(employeeID string, role models.UserRole) error
	DeleteAccount(employeeID string) error
	SetEmployeesLineManager(employeeID, managerID string) error
	ChangeEmployeesRegion(employeeID, region string) error
	ChangeEmployeesEmail(employeeID, email string) error
	ListManagers() ([]employeeapimodels.EmployeeView, error)
}
