package claimhandler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	claimaccess "expense-claims-backend/lib/claim/access"
	evidencestorage "expense-claims-backend/lib/evidence-storage"
	"expense-claims-backend/models"
	claimapimodels "expense-claims-backend/models/api/claim"
	dbmodels "expense-claims-backend/models/db"
)

type fakeClaimStore struct {
	seq  int
	recs map[string]*dbmodels.Claim
}

func newFakeClaimStore() *fakeClaimStore {
	return &fakeClaimStore{recs: map[string]*dbmodels.Claim{}}
}

func (s *fakeClaimStore) Create(rec dbmodels.Claim) (string, error) {
	s.seq++
	rec.ID = fmt.Sprintf("claim-%d", s.seq)
	s.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (s *fakeClaimStore) GetByID(id string) (*dbmodels.Claim, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s *fakeClaimStore) UpdateInStatus(id string, expected []models.ClaimStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := s.recs[id]
	if !ok {
		return false, nil
	}
	found := false
	for _, status := range expected {
		if rec.Status == status {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	s.apply(rec, updMap)
	return true, nil
}

func (s *fakeClaimStore) UpdateTransition(id string, from models.ClaimStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := s.recs[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	s.apply(rec, updMap)
	return true, nil
}

func (s *fakeClaimStore) DeleteDraft(id string) (bool, error) {
	rec, ok := s.recs[id]
	if !ok || rec.Status != models.ClaimStatusDraft {
		return false, nil
	}
	delete(s.recs, id)
	return true, nil
}

func (s *fakeClaimStore) ListByEmployeeAndStatus(employeeID string, status models.ClaimStatus) ([]dbmodels.Claim, error) {
	list := []dbmodels.Claim{}
	for _, rec := range s.recs {
		if rec.EmployeeID == employeeID && rec.Status == status {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (s *fakeClaimStore) ListManagedBy(managerID string, status models.ClaimStatus) ([]dbmodels.Claim, error) {
	return nil, nil
}

func (s *fakeClaimStore) ListByStatus(status models.ClaimStatus) ([]dbmodels.Claim, error) {
	list := []dbmodels.Claim{}
	for _, rec := range s.recs {
		if rec.Status == status {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (s *fakeClaimStore) ListPendingOlderThan(cutoff time.Time) ([]dbmodels.Claim, error) {
	return nil, nil
}

func (s *fakeClaimStore) apply(rec *dbmodels.Claim, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.ClaimStatus)
		case "attempt_count":
			rec.AttemptCount = value.(int)
		case "feedback":
			rec.Feedback = value.(string)
		case "evidence":
			rec.Evidence = value.(pq.StringArray)
		case "amount":
			rec.Amount = value.(decimal.Decimal)
		case "title":
			rec.Title = value.(string)
		case "description":
			rec.Description = value.(string)
		case "category":
			rec.Category = value.(string)
		case "currency":
			rec.Currency = value.(string)
		case "account_name":
			v := value.(string)
			rec.AccountName = &v
		case "account_number":
			v := value.(string)
			rec.AccountNumber = &v
		case "sort_code":
			v := value.(string)
			rec.SortCode = &v
		}
	}
}

type fakeEmployeeStore struct {
	recs map[string]*dbmodels.Employee
}

func (s *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) { return rec.ID, nil }
func (s *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}
func (s *fakeEmployeeStore) Delete(id string) error { return nil }
func (s *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	return s.recs[id], nil
}
func (s *fakeEmployeeStore) FindByEmail(email string) (*dbmodels.Employee, error) { return nil, nil }
func (s *fakeEmployeeStore) ExistByEmail(email string) (bool, error)              { return false, nil }
func (s *fakeEmployeeStore) ListByManager(managerID string) ([]dbmodels.Employee, error) {
	return nil, nil
}
func (s *fakeEmployeeStore) ListByRole(role models.UserRole) ([]dbmodels.Employee, error) {
	return nil, nil
}

type fakeEvidenceStorage struct {
	blobs map[string][]byte
}

func newFakeEvidenceStorage() *fakeEvidenceStorage {
	return &fakeEvidenceStorage{blobs: map[string][]byte{}}
}

func (s *fakeEvidenceStorage) key(claimID, fileName string) string {
	return claimID + "/" + fileName
}

func (s *fakeEvidenceStorage) Write(ctx context.Context, claimID, fileName string, body []byte) error {
	if _, exist := s.blobs[s.key(claimID, fileName)]; exist {
		return evidencestorage.ErrObjectExists
	}
	s.blobs[s.key(claimID, fileName)] = body
	return nil
}

func (s *fakeEvidenceStorage) Delete(ctx context.Context, claimID, fileName string) error {
	delete(s.blobs, s.key(claimID, fileName))
	return nil
}

func (s *fakeEvidenceStorage) Read(ctx context.Context, claimID, fileName string) ([]byte, error) {
	body, exist := s.blobs[s.key(claimID, fileName)]
	if !exist {
		return nil, errors.New("файл не найден")
	}
	return body, nil
}

func (s *fakeEvidenceStorage) List(ctx context.Context, claimID string) ([]string, error) {
	return nil, nil
}

func (s *fakeEvidenceStorage) EnsureBucket(ctx context.Context) error { return nil }

const (
	staffID    = "employee-1"
	managerID  = "manager-1"
	otherMgrID = "manager-2"
	officerID  = "officer-1"
)

func newTestEngine() (*fakeClaimStore, *fakeEvidenceStorage, Provider) {
	mgrID := managerID
	employees := &fakeEmployeeStore{recs: map[string]*dbmodels.Employee{
		staffID: {
			BaseModel:     dbmodels.BaseModel{ID: staffID},
			FirstName:     "Иван",
			LastName:      "Петров",
			Role:          models.GeneralStaffRole,
			LineManagerID: &mgrID,
			IsActive:      true,
		},
		managerID: {
			BaseModel: dbmodels.BaseModel{ID: managerID},
			Role:      models.LineManagerRole,
			IsActive:  true,
		},
		otherMgrID: {
			BaseModel: dbmodels.BaseModel{ID: otherMgrID},
			Role:      models.LineManagerRole,
			IsActive:  true,
		},
		officerID: {
			BaseModel:     dbmodels.BaseModel{ID: officerID},
			Role:          models.PayrollOfficerRole,
			LineManagerID: &mgrID,
			IsActive:      true,
		},
	}}
	store := newFakeClaimStore()
	storage := newFakeEvidenceStorage()
	engine := NewInstance(store, claimaccess.NewInstance(employees), storage)
	return store, storage, engine
}

func createDraft(t *testing.T, engine Provider, employeeID string) claimapimodels.ClaimView {
	view, err := engine.CreateDraft(employeeID, claimapimodels.ClaimData{
		Title:    "Командировка в Казань",
		Category: "TRAVEL",
		Currency: "RUB",
		Amount:   decimal.NewFromInt(12500),
	})
	require.Nil(t, err)
	require.Equal(t, string(models.ClaimStatusDraft), view.Status)
	require.Equal(t, 0, view.AttemptCount)
	return view
}

func TestClaimLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run(`полный путь до возмещения`, func(t *testing.T) {
		store, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)

		require.Nil(t, engine.AddEvidence(ctx, staffID, view.ID, "чек.pdf", []byte("pdf")))

		submitted, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)
		require.Equal(t, string(models.ClaimStatusPending), submitted.Status)
		require.Equal(t, 1, submitted.AttemptCount)

		require.Nil(t, engine.Approve(managerID, view.ID))
		require.Nil(t, engine.Reimburse(officerID, view.ID))

		rec, err := store.GetByID(view.ID)
		require.Nil(t, err)
		require.Equal(t, models.ClaimStatusReimbursed, rec.Status)

		// терминальный статус: повторное возмещение невозможно
		err = engine.Reimburse(officerID, view.ID)
		require.True(t, models.IsInvalidState(err))
	})

	t.Run(`подача возможна только из черновика`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)

		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)

		_, err = engine.Submit(staffID, view.ID)
		require.True(t, models.IsInvalidState(err))

		// апелляция из рассмотрения тоже запрещена
		_, err = engine.Appeal(staffID, view.ID)
		require.True(t, models.IsInvalidState(err))
	})

	t.Run(`лимит подач`, func(t *testing.T) {
		store, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)

		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)
		require.Nil(t, engine.Reject(managerID, view.ID, "нет чеков"))

		for attempt := 2; attempt <= models.MaxAttemptCount; attempt++ {
			resubmitted, appealErr := engine.Appeal(staffID, view.ID)
			require.Nil(t, appealErr)
			require.Equal(t, attempt, resubmitted.AttemptCount)
			require.Nil(t, engine.Reject(managerID, view.ID, "нет чеков"))
		}

		_, err = engine.Appeal(staffID, view.ID)
		require.True(t, models.IsAttemptLimitExceeded(err))

		// отказ без побочных изменений: статус и счётчик прежние
		rec, err := store.GetByID(view.ID)
		require.Nil(t, err)
		require.Equal(t, models.ClaimStatusRejected, rec.Status)
		require.Equal(t, models.MaxAttemptCount, rec.AttemptCount)
	})

	t.Run(`отклонение требует причину`, func(t *testing.T) {
		store, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)
		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)

		err = engine.Reject(managerID, view.ID, "")
		require.True(t, models.IsInvalidState(err))

		rec, err := store.GetByID(view.ID)
		require.Nil(t, err)
		require.Equal(t, models.ClaimStatusPending, rec.Status)
	})

	t.Run(`решение по чужой заявке`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)
		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)

		// не тот руководитель
		err = engine.Approve(otherMgrID, view.ID)
		require.True(t, models.IsUnauthorized(err))
	})

	t.Run(`запрет самопроверки`, func(t *testing.T) {
		_, _, engine := newTestEngine()

		// руководитель подаёт собственную заявку и не может её согласовать
		view := createDraft(t, engine, managerID)
		_, err := engine.Submit(managerID, view.ID)
		require.Nil(t, err)
		err = engine.Approve(managerID, view.ID)
		require.True(t, models.IsUnauthorized(err))

		// расчётный отдел не возмещает собственную заявку
		officerClaim := createDraft(t, engine, officerID)
		_, err = engine.Submit(officerID, officerClaim.ID)
		require.Nil(t, err)
		require.Nil(t, engine.Approve(managerID, officerClaim.ID))
		err = engine.Reimburse(officerID, officerClaim.ID)
		require.True(t, models.IsUnauthorized(err))
	})

	t.Run(`операции только владельца`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)

		_, err := engine.Submit(managerID, view.ID)
		require.True(t, models.IsUnauthorized(err))
		err = engine.UpdateAmount(managerID, view.ID, decimal.NewFromInt(1))
		require.True(t, models.IsUnauthorized(err))
		err = engine.DeleteDraft(managerID, view.ID)
		require.True(t, models.IsUnauthorized(err))
	})

	t.Run(`заявка не найдена`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		_, err := engine.Submit(staffID, "missing")
		require.True(t, models.IsNotFound(err))
	})
}

func TestClaimEditing(t *testing.T) {
	t.Run(`сумма и описание до решения`, func(t *testing.T) {
		store, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)

		require.Nil(t, engine.UpdateAmount(staffID, view.ID, decimal.NewFromInt(9900)))
		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)
		require.Nil(t, engine.UpdateAmount(staffID, view.ID, decimal.NewFromInt(8800)))

		require.Nil(t, engine.Approve(managerID, view.ID))
		err = engine.UpdateAmount(staffID, view.ID, decimal.NewFromInt(100))
		require.True(t, models.IsInvalidState(err))

		rec, err := store.GetByID(view.ID)
		require.Nil(t, err)
		require.True(t, rec.Amount.Equal(decimal.NewFromInt(8800)))
	})

	t.Run(`реквизиты до выплаты`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)
		details := claimapimodels.BankDetails{
			AccountName:   "Петров Иван",
			AccountNumber: "40817810000000000001",
			SortCode:      "044525225",
		}
		require.Nil(t, engine.UpdateBankDetails(staffID, view.ID, details))

		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)
		require.Nil(t, engine.Approve(managerID, view.ID))
		// после согласования реквизиты ещё можно уточнить
		require.Nil(t, engine.UpdateBankDetails(staffID, view.ID, details))

		require.Nil(t, engine.Reimburse(officerID, view.ID))
		err = engine.UpdateBankDetails(staffID, view.ID, details)
		require.True(t, models.IsInvalidState(err))
	})

	t.Run(`удаление черновика`, func(t *testing.T) {
		store, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)
		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)

		err = engine.DeleteDraft(staffID, view.ID)
		require.True(t, models.IsInvalidState(err))

		draft := createDraft(t, engine, staffID)
		require.Nil(t, engine.DeleteDraft(staffID, draft.ID))
		rec, err := store.GetByID(draft.ID)
		require.Nil(t, err)
		require.Nil(t, rec)
	})
}

func TestClaimEvidence(t *testing.T) {
	ctx := context.Background()

	t.Run(`добавление и удаление по статусам`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)

		require.Nil(t, engine.AddEvidence(ctx, staffID, view.ID, "чек.pdf", []byte("pdf")))

		_, err := engine.Submit(staffID, view.ID)
		require.Nil(t, err)

		// на рассмотрении добавлять можно, удалять нельзя
		require.Nil(t, engine.AddEvidence(ctx, staffID, view.ID, "билет.pdf", []byte("pdf")))
		err = engine.RemoveEvidence(ctx, staffID, view.ID, "чек.pdf")
		require.True(t, models.IsInvalidState(err))

		// после отклонения наоборот
		require.Nil(t, engine.Reject(managerID, view.ID, "лишний документ"))
		err = engine.AddEvidence(ctx, staffID, view.ID, "счёт.pdf", []byte("pdf"))
		require.True(t, models.IsInvalidState(err))
		require.Nil(t, engine.RemoveEvidence(ctx, staffID, view.ID, "чек.pdf"))

		rec, err := engine.Get(staffID, models.GeneralStaffRole, view.ID)
		require.Nil(t, err)
		require.Equal(t, []string{"билет.pdf"}, rec.Evidence)
	})

	t.Run(`повтор имени файла`, func(t *testing.T) {
		_, storage, engine := newTestEngine()
		view := createDraft(t, engine, staffID)

		require.Nil(t, engine.AddEvidence(ctx, staffID, view.ID, "чек.pdf", []byte("v1")))
		err := engine.AddEvidence(ctx, staffID, view.ID, "чек.pdf", []byte("v2"))
		require.True(t, models.IsInvalidState(err))

		// первый файл не перезаписан
		body, err := storage.Read(ctx, view.ID, "чек.pdf")
		require.Nil(t, err)
		require.Equal(t, []byte("v1"), body)
	})

	t.Run(`удаление отсутствующего вложения`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)
		err := engine.RemoveEvidence(ctx, staffID, view.ID, "нет.pdf")
		require.True(t, models.IsNotFound(err))
	})

	t.Run(`чтение вложения по ролям`, func(t *testing.T) {
		_, _, engine := newTestEngine()
		view := createDraft(t, engine, staffID)
		require.Nil(t, engine.AddEvidence(ctx, staffID, view.ID, "чек.pdf", []byte("pdf")))

		_, err := engine.GetEvidence(ctx, staffID, models.GeneralStaffRole, view.ID, "чек.pdf")
		require.Nil(t, err)

		// руководитель сотрудника видит вложение
		_, err = engine.GetEvidence(ctx, managerID, models.LineManagerRole, view.ID, "чек.pdf")
		require.Nil(t, err)

		// чужой руководитель - нет
		_, err = engine.GetEvidence(ctx, otherMgrID, models.LineManagerRole, view.ID, "чек.pdf")
		require.True(t, models.IsUnauthorized(err))

		// расчётный отдел видит любую заявку
		_, err = engine.GetEvidence(ctx, officerID, models.PayrollOfficerRole, view.ID, "чек.pdf")
		require.Nil(t, err)
	})
}
