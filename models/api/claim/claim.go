package claimapimodels

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"expense-claims-backend/models"
	dbmodels "expense-claims-backend/models/db"
)

// ClaimData - данные авансового отчёта при создании черновика
// и при редактировании описания
type ClaimData struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r ClaimData) Validate() error {
	if r.Title == "" {
		return errors.New("не указано название заявки")
	}
	if len(r.Currency) != 3 {
		return errors.New("валюта указывается трёхбуквенным кодом")
	}
	// сумма намеренно не проверяется: в черновике допустима нулевая
	// и отрицательная (корректировочная) сумма
	return nil
}

type AmountUpdate struct {
	Amount decimal.Decimal `json:"amount"`
}

type BankDetails struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	SortCode      string `json:"sort_code"`
}

func (r BankDetails) Validate() error {
	if r.AccountName == "" || r.AccountNumber == "" || r.SortCode == "" {
		return errors.New("реквизиты указаны не полностью")
	}
	return nil
}

type RejectRequest struct {
	Feedback string `json:"feedback"`
}

func (r RejectRequest) Validate() error {
	if r.Feedback == "" {
		return errors.New("не указана причина отклонения")
	}
	return nil
}

type ClaimView struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Status       string          `json:"status"`
	StatusName   string          `json:"status_name"`
	AttemptCount int             `json:"attempt_count"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Currency     string          `json:"currency"`
	Amount       decimal.Decimal `json:"amount"`
	Feedback     string          `json:"feedback,omitempty"`
	BankDetails  *BankDetails    `json:"bank_details,omitempty"`
	Evidence     []string        `json:"evidence"`
	CreatedAt    time.Time       `json:"created_at"`
	LastUpdated  time.Time       `json:"last_updated"`
}

func ClaimConvert(rec dbmodels.Claim) ClaimView {
	view := ClaimView{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		Status:       string(rec.Status),
		StatusName:   rec.Status.ToHuman(),
		AttemptCount: rec.AttemptCount,
		Title:        rec.Title,
		Description:  rec.Description,
		Category:     rec.Category,
		Currency:     rec.Currency,
		Amount:       rec.Amount,
		Feedback:     rec.Feedback,
		Evidence:     append([]string{}, rec.Evidence...),
		CreatedAt:    rec.CreatedAt,
		LastUpdated:  rec.UpdatedAt,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	if rec.AccountName != nil && rec.AccountNumber != nil && rec.SortCode != nil {
		view.BankDetails = &BankDetails{
			AccountName:   *rec.AccountName,
			AccountNumber: *rec.AccountNumber,
			SortCode:      *rec.SortCode,
		}
	}
	return view
}

type ClaimListFilter struct {
	Status models.ClaimStatus `json:"status"`
}

func (r ClaimListFilter) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("неизвестный статус заявки")
	}
	return nil
}
