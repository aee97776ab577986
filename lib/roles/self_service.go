package roles

import (
	"context"

	"github.com/shopspring/decimal"

	claimhandler "expense-claims-backend/lib/claim"
	"expense-claims-backend/models"
	claimapimodels "expense-claims-backend/models/api/claim"
)

// selfService - операции сотрудника над собственными заявками.
// Проверку владения выполняет движок; здесь только привязка к userID.
type selfService struct {
	userID string
	claims claimhandler.Provider
}

func (s selfService) UserID() string {
	return s.userID
}

func (s selfService) CreateDraftClaim(data claimapimodels.ClaimData) (claimapimodels.ClaimView, error) {
	return s.claims.CreateDraft(s.userID, data)
}

func (s selfService) SubmitClaim(claimID string) (claimapimodels.ClaimView, error) {
	return s.claims.Submit(s.userID, claimID)
}

func (s selfService) AppealClaim(claimID string) (claimapimodels.ClaimView, error) {
	return s.claims.Appeal(s.userID, claimID)
}

func (s selfService) UpdateClaimDetails(claimID string, data claimapimodels.ClaimData) error {
	return s.claims.UpdateDetails(s.userID, claimID, data)
}

func (s selfService) UpdateClaimAmount(claimID string, amount decimal.Decimal) error {
	return s.claims.UpdateAmount(s.userID, claimID, amount)
}

func (s selfService) UpdateClaimBankAccountDetails(claimID string, details claimapimodels.BankDetails) error {
	return s.claims.UpdateBankDetails(s.userID, claimID, details)
}

func (s selfService) DeleteDraftClaim(claimID string) error {
	return s.claims.DeleteDraft(s.userID, claimID)
}

func (s selfService) AddEvidence(ctx context.Context, claimID, fileName string, body []byte) error {
	return s.claims.AddEvidence(ctx, s.userID, claimID, fileName, body)
}

func (s selfService) RemoveEvidence(ctx context.Context, claimID, fileName string) error {
	return s.claims.RemoveEvidence(ctx, s.userID, claimID, fileName)
}

func (s selfService) GetClaimsByStatus(status models.ClaimStatus) ([]claimapimodels.ClaimView, error) {
	return s.claims.ListByStatus(s.userID, status)
}
