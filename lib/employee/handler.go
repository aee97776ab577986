package employeehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"expense-claims-backend/db"
	employeestore "expense-claims-backend/lib/employee/store"
	authutils "expense-claims-backend/lib/utils/auth-utils"
	"expense-claims-backend/models"
	employeeapimodels "expense-claims-backend/models/api/employee"
	dbmodels "expense-claims-backend/models/db"
)

// Provider - операции администратора над учётными записями.
// Инварианты заявок здесь не участвуют: администратор не работает с заявками.
type Provider interface {
	CreateAccount(request employeeapimodels.CreateAccount) (employeeapimodels.EmployeeView, error)
	ChangeRole(employeeID string, role models.UserRole) error
	DeleteAccount(employeeID string) error
	SetLineManager(employeeID, managerID string) error
	ChangeRegion(employeeID, region string) error
	ChangeEmail(employeeID, email string) error
	GetByID(employeeID string) (employeeapimodels.EmployeeView, error)
	ListManagedBy(managerID string) ([]employeeapimodels.EmployeeView, error)
	ListManagers() ([]employeeapimodels.EmployeeView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(employeestore.NewInstance(db.DB))
}

func NewInstance(store employeestore.Provider) Provider {
	return &impl{
		store: store,
	}
}

type impl struct {
	store employeestore.Provider
}

func (i impl) GetLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

func (i impl) CreateAccount(request employeeapimodels.CreateAccount) (employeeapimodels.EmployeeView, error) {
	exist, err := i.store.ExistByEmail(request.Email)
	if err != nil {
		return employeeapimodels.EmployeeView{}, errors.Wrap(models.ErrPersistence, err.Error())
	}
	if exist {
		return employeeapimodels.EmployeeView{}, errors.Wrap(models.ErrInvalidState, "сотрудник с такой почтой уже существует")
	}
	role := request.Role
	if role == "" {
		role = models.GeneralStaffRole
	}
	rec := dbmodels.Employee{
		Password:  authutils.GetMD5Hash(request.Password),
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Region:    request.Region,
		Role:      role,
		IsActive:  true,
	}
	if request.LineManagerID != "" {
		if err = i.checkManager(request.LineManagerID); err != nil {
			return employeeapimodels.EmployeeView{}, err
		}
		rec.LineManagerID = &request.LineManagerID
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return employeeapimodels.EmployeeView{}, errors.Wrap(models.ErrPersistence, err.Error())
	}
	i.GetLogger(id).
		WithField("role", role).
		Info("создана учётная запись сотрудника")
	return i.GetByID(id)
}

func (i impl) ChangeRole(employeeID string, role models.UserRole) error {
	rec, err := i.getEmployee(employeeID)
	if err != nil {
		return err
	}
	err = i.store.Update(rec.ID, map[string]interface{}{"role": role})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	i.GetLogger(employeeID).
		WithField("role", role).
		Info("изменена роль сотрудника")
	return nil
}

// DeleteAccount - учётные записи администраторов не удаляются,
// чтобы нельзя было остаться без доступа к управлению
func (i impl) DeleteAccount(employeeID string) error {
	rec, err := i.getEmployee(employeeID)
	if err != nil {
		return err
	}
	if rec.Role.IsAdministrator() {
		return errors.Wrap(models.ErrUnauthorized, "учётная запись администратора не может быть удалена")
	}
	err = i.store.Delete(employeeID)
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	i.GetLogger(employeeID).Info("учётная запись удалена")
	return nil
}

func (i impl) SetLineManager(employeeID, managerID string) error {
	rec, err := i.getEmployee(employeeID)
	if err != nil {
		return err
	}
	if rec.ID == managerID {
		return errors.Wrap(models.ErrInvalidState, "сотрудник не может быть руководителем самому себе")
	}
	if err = i.checkManager(managerID); err != nil {
		return err
	}
	err = i.store.Update(employeeID, map[string]interface{}{"line_manager_id": managerID})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	return nil
}

func (i impl) ChangeRegion(employeeID, region string) error {
	if _, err := i.getEmployee(employeeID); err != nil {
		return err
	}
	err := i.store.Update(employeeID, map[string]interface{}{"region": region})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	return nil
}

func (i impl) ChangeEmail(employeeID, email string) error {
	if _, err := i.getEmployee(employeeID); err != nil {
		return err
	}
	exist, err := i.store.ExistByEmail(email)
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if exist {
		return errors.Wrap(models.ErrInvalidState, "сотрудник с такой почтой уже существует")
	}
	err = i.store.Update(employeeID, map[string]interface{}{"email": email})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	return nil
}

func (i impl) GetByID(employeeID string) (employeeapimodels.EmployeeView, error) {
	rec, err := i.getEmployee(employeeID)
	if err != nil {
		return employeeapimodels.EmployeeView{}, err
	}
	return employeeapimodels.EmployeeConvert(rec), nil
}

func (i impl) ListManagedBy(managerID string) ([]employeeapimodels.EmployeeView, error) {
	list, err := i.store.ListByManager(managerID)
	if err != nil {
		return nil, errors.Wrap(models.ErrPersistence, err.Error())
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, employeeapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) ListManagers() ([]employeeapimodels.EmployeeView, error) {
	list, err := i.store.ListByRole(models.LineManagerRole)
	if err != nil {
		return nil, errors.Wrap(models.ErrPersistence, err.Error())
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, employeeapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) getEmployee(employeeID string) (dbmodels.Employee, error) {
	rec, err := i.store.GetByID(employeeID)
	if err != nil {
		return dbmodels.Employee{}, errors.Wrap(models.ErrPersistence, err.Error())
	}
	if rec == nil {
		return dbmodels.Employee{}, errors.Wrap(models.ErrNotFound, "сотрудник не найден")
	}
	return *rec, nil
}

func (i impl) checkManager(managerID string) error {
	manager, err := i.store.GetByID(managerID)
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if manager == nil {
		return errors.Wrap(models.ErrNotFound, "руководитель не найден")
	}
	if manager.Role != models.LineManagerRole {
		return errors.Wrap(models.ErrInvalidState, "указанный сотрудник не является линейным руководителем")
	}
	return nil
}
