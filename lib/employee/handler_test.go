package employeehandler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"expense-claims-backend/models"
	employeeapimodels "expense-claims-backend/models/api/employee"
	dbmodels "expense-claims-backend/models/db"
)

type fakeEmployeeStore struct {
	seq  int
	recs map[string]*dbmodels.Employee
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{recs: map[string]*dbmodels.Employee{}}
}

func (s *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) {
	s.seq++
	rec.ID = fmt.Sprintf("employee-%d", s.seq)
	s.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (s *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := s.recs[id]
	if !ok {
		return nil
	}
	for key, value := range updMap {
		switch key {
		case "role":
			rec.Role = value.(models.UserRole)
		case "region":
			rec.Region = value.(string)
		case "email":
			rec.Email = value.(string)
		case "line_manager_id":
			v := value.(string)
			rec.LineManagerID = &v
		}
	}
	return nil
}

func (s *fakeEmployeeStore) Delete(id string) error {
	delete(s.recs, id)
	return nil
}

func (s *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	return s.recs[id], nil
}

func (s *fakeEmployeeStore) FindByEmail(email string) (*dbmodels.Employee, error) {
	for _, rec := range s.recs {
		if rec.Email == email {
			return rec, nil
		}
	}
	return nil, nil
}

func (s *fakeEmployeeStore) ExistByEmail(email string) (bool, error) {
	rec, _ := s.FindByEmail(email)
	return rec != nil, nil
}

func (s *fakeEmployeeStore) ListByManager(managerID string) ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for _, rec := range s.recs {
		if rec.LineManagerID != nil && *rec.LineManagerID == managerID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (s *fakeEmployeeStore) ListByRole(role models.UserRole) ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for _, rec := range s.recs {
		if rec.Role == role {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func TestEmployeeAccounts(t *testing.T) {
	newAccount := func(email string, role models.UserRole) employeeapimodels.CreateAccount {
		return employeeapimodels.CreateAccount{
			Email:     email,
			Password:  "secret",
			FirstName: "Иван",
			LastName:  "Петров",
			Region:    "Москва",
			Role:      role,
		}
	}

	t.Run(`создание с ролью по умолчанию`, func(t *testing.T) {
		handler := NewInstance(newFakeEmployeeStore())
		view, err := handler.CreateAccount(newAccount("ivan@example.com", ""))
		require.Nil(t, err)
		require.Equal(t, string(models.GeneralStaffRole), view.Role)
		require.True(t, view.IsActive)
	})

	t.Run(`почта уникальна`, func(t *testing.T) {
		handler := NewInstance(newFakeEmployeeStore())
		_, err := handler.CreateAccount(newAccount("ivan@example.com", ""))
		require.Nil(t, err)
		_, err = handler.CreateAccount(newAccount("ivan@example.com", ""))
		require.True(t, models.IsInvalidState(err))
	})

	t.Run(`руководителем может быть только линейный руководитель`, func(t *testing.T) {
		handler := NewInstance(newFakeEmployeeStore())
		manager, err := handler.CreateAccount(newAccount("manager@example.com", models.LineManagerRole))
		require.Nil(t, err)
		staff, err := handler.CreateAccount(newAccount("staff@example.com", ""))
		require.Nil(t, err)

		require.Nil(t, handler.SetLineManager(staff.ID, manager.ID))

		// сам себе
		err = handler.SetLineManager(manager.ID, manager.ID)
		require.True(t, models.IsInvalidState(err))

		// не руководитель
		err = handler.SetLineManager(manager.ID, staff.ID)
		require.True(t, models.IsInvalidState(err))

		// несуществующий
		err = handler.SetLineManager(staff.ID, "missing")
		require.True(t, models.IsNotFound(err))
	})

	t.Run(`администратор не удаляется`, func(t *testing.T) {
		handler := NewInstance(newFakeEmployeeStore())
		admin, err := handler.CreateAccount(newAccount("admin@example.com", models.AdministratorRole))
		require.Nil(t, err)
		staff, err := handler.CreateAccount(newAccount("staff@example.com", ""))
		require.Nil(t, err)

		err = handler.DeleteAccount(admin.ID)
		require.True(t, models.IsUnauthorized(err))

		require.Nil(t, handler.DeleteAccount(staff.ID))
		_, err = handler.GetByID(staff.ID)
		require.True(t, models.IsNotFound(err))
	})

	t.Run(`смена почты с проверкой занятости`, func(t *testing.T) {
		handler := NewInstance(newFakeEmployeeStore())
		first, err := handler.CreateAccount(newAccount("first@example.com", ""))
		require.Nil(t, err)
		_, err = handler.CreateAccount(newAccount("second@example.com", ""))
		require.Nil(t, err)

		err = handler.ChangeEmail(first.ID, "second@example.com")
		require.True(t, models.IsInvalidState(err))
		require.Nil(t, handler.ChangeEmail(first.ID, "third@example.com"))
	})

	t.Run(`список руководителей`, func(t *testing.T) {
		handler := NewInstance(newFakeEmployeeStore())
		_, err := handler.CreateAccount(newAccount("manager@example.com", models.LineManagerRole))
		require.Nil(t, err)
		_, err = handler.CreateAccount(newAccount("staff@example.com", ""))
		require.Nil(t, err)

		list, err := handler.ListManagers()
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, string(models.LineManagerRole), list[0].Role)
	})

	t.Run(`список подчинённых`, func(t *testing.T) {
		handler := NewInstance(newFakeEmployeeStore())
		manager, err := handler.CreateAccount(newAccount("manager@example.com", models.LineManagerRole))
		require.Nil(t, err)

		account := newAccount("staff@example.com", "")
		account.LineManagerID = manager.ID
		_, err = handler.CreateAccount(account)
		require.Nil(t, err)

		list, err := handler.ListManagedBy(manager.ID)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, manager.ID, list[0].LineManagerID)
	})
}
