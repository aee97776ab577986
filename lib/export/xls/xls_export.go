package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	claimapimodels "expense-claims-backend/models/api/claim"
)

type Provider interface {
	ExportClaimList(list []claimapimodels.ClaimView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var claimHeaders = []string{"Сотрудник", "Название", "Категория", "Сумма", "Валюта", "Статус", "Подач", "Создана", "Обновлена"}

func (i impl) ExportClaimList(list []claimapimodels.ClaimView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, claimHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeClaimData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Заявки")
	return f.WriteToBuffer()
}

func writeClaimData(f *excelize.File, sheet string, list []claimapimodels.ClaimView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(claimHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.EmployeeName); err != nil {
			return row, err
		}

		// "Название"
		col++
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Категория"
		col++
		if err := writeColumn(f, sheet, col, row, item.Category); err != nil {
			return row, err
		}

		// "Сумма"
		col++
		if err := writeColumn(f, sheet, col, row, item.Amount.StringFixed(2)); err != nil {
			return row, err
		}

		// "Валюта"
		col++
		if err := writeColumn(f, sheet, col, row, item.Currency); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.StatusName); err != nil {
			return row, err
		}

		// "Подач"
		col++
		if err := writeColumn(f, sheet, col, row, item.AttemptCount); err != nil {
			return row, err
		}

		// "Создана"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Обновлена"
		col++
		if err := writeColumn(f, sheet, col, row, item.LastUpdated.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}
	}
	return row, nil
}
