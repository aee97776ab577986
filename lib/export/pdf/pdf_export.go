package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	claimapimodels "expense-claims-backend/models/api/claim"
)

// GenerateRemittanceAdvice - справка о возмещении по заявке для сотрудника.
// Формируется по запросу расчётного отдела для возмещённых заявок.
func GenerateRemittanceAdvice(claim claimapimodels.ClaimView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateRemittanceAdvice panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 12, "Справка о возмещении расходов", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	_, lineHt := pdf.GetFontSize()
	lines := []string{
		fmt.Sprintf("Заявка: %s", claim.ID),
		fmt.Sprintf("Сотрудник: %s", claim.EmployeeName),
		fmt.Sprintf("Название: %s", claim.Title),
		fmt.Sprintf("Категория: %s", claim.Category),
		fmt.Sprintf("Сумма к возмещению: %s %s", claim.Amount.StringFixed(2), claim.Currency),
		fmt.Sprintf("Дата последнего изменения: %s", claim.LastUpdated.Format("02.01.2006 15:04")),
	}
	for _, line := range lines {
		pdf.CellFormat(0, lineHt+4, line, "", 1, "L", false, 0, "")
	}

	if claim.BankDetails != nil {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, lineHt+4, "Реквизиты для выплаты", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		details := []string{
			fmt.Sprintf("Получатель: %s", claim.BankDetails.AccountName),
			fmt.Sprintf("Счёт: %s", claim.BankDetails.AccountNumber),
			fmt.Sprintf("Код банка: %s", claim.BankDetails.SortCode),
		}
		for _, line := range details {
			pdf.CellFormat(0, lineHt+4, line, "", 1, "L", false, 0, "")
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
