package claimstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"expense-claims-backend/models"
	dbmodels "expense-claims-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Claim) (id string, err error)
	GetByID(id string) (rec *dbmodels.Claim, err error)
	// UpdateInStatus применяет изменения, только если заявка всё ещё в одном
	// из ожидаемых статусов; false - запись не найдена или статус уже сменился
	UpdateInStatus(id string, expected []models.ClaimStatus, updMap map[string]interface{}) (updated bool, err error)
	// UpdateTransition - атомарный переход статуса: применяется одной записью
	// с условием на исходный статус (compare-and-set)
	UpdateTransition(id string, from models.ClaimStatus, updMap map[string]interface{}) (updated bool, err error)
	DeleteDraft(id string) (deleted bool, err error)
	ListByEmployeeAndStatus(employeeID string, status models.ClaimStatus) (list []dbmodels.Claim, err error)
	ListManagedBy(managerID string, status models.ClaimStatus) (list []dbmodels.Claim, err error)
	ListByStatus(status models.ClaimStatus) (list []dbmodels.Claim, err error)
	ListPendingOlderThan(cutoff time.Time) (list []dbmodels.Claim, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Claim) (id string, err error) {
	err = i.db.
		Omit("Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Claim, error) {
	rec := dbmodels.Claim{}
	err := i.db.
		Where("id = ?", id).
		Preload("Employee").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateInStatus(id string, expected []models.ClaimStatus, updMap map[string]interface{}) (bool, error) {
	if len(updMap) == 0 {
		return true, nil
	}
	tx := i.db.
		Model(&dbmodels.Claim{}).
		Where("id = ?", id).
		Where("status IN ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) UpdateTransition(id string, from models.ClaimStatus, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Claim{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) DeleteDraft(id string) (bool, error) {
	// удаление существует только для черновиков, условие на статус
	// защищает от гонки с подачей
	tx := i.db.
		Where("id = ?", id).
		Where("status = ?", models.ClaimStatusDraft).
		Delete(&dbmodels.Claim{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) ListByEmployeeAndStatus(employeeID string, status models.ClaimStatus) (list []dbmodels.Claim, err error) {
	list = []dbmodels.Claim{}
	err = i.db.
		Where("employee_id = ?", employeeID).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListManagedBy(managerID string, status models.ClaimStatus) (list []dbmodels.Claim, err error) {
	list = []dbmodels.Claim{}
	err = i.db.
		Joins("JOIN employees ON employees.id = claims.employee_id").
		Where("employees.line_manager_id = ?", managerID).
		Where("claims.status = ?", status).
		Order("claims.created_at ASC").
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByStatus(status models.ClaimStatus) (list []dbmodels.Claim, err error) {
	list = []dbmodels.Claim{}
	err = i.db.
		Where("status = ?", status).
		Order("created_at ASC").
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListPendingOlderThan(cutoff time.Time) (list []dbmodels.Claim, err error) {
	list = []dbmodels.Claim{}
	err = i.db.
		Where("status = ?", models.ClaimStatusPending).
		Where("updated_at < ?", cutoff).
		Preload("Employee").
		Preload("Employee.LineManager").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
