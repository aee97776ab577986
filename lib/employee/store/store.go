package employeestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"expense-claims-backend/models"
	dbmodels "expense-claims-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	GetByID(id string) (rec *dbmodels.Employee, err error)
	FindByEmail(email string) (rec *dbmodels.Employee, err error)
	ExistByEmail(email string) (bool, error)
	ListByManager(managerID string) (list []dbmodels.Employee, err error)
	ListByRole(role models.UserRole) (list []dbmodels.Employee, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (string, error) {
	err := i.db.
		Omit("LineManager").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Employee{}).
		Error
}

func (i impl) GetByID(id string) (rec *dbmodels.Employee, err error) {
	err = i.db.
		Model(dbmodels.Employee{}).
		Where("id = ?", id).
		Preload("LineManager").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.Employee, err error) {
	err = i.db.
		Model(dbmodels.Employee{}).
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) ExistByEmail(email string) (bool, error) {
	err := i.db.
		Where("email = ?", email).
		First(&dbmodels.Employee{}).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (i impl) ListByManager(managerID string) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.
		Where("line_manager_id = ?", managerID).
		Order("last_name ASC").
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

func (i impl) ListByRole(role models.UserRole) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.
		Where("role = ?", role).
		Order("last_name ASC").
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
