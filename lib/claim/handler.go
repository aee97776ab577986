package claimhandler

import (
	"context"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"expense-claims-backend/db"
	claimaccess "expense-claims-backend/lib/claim/access"
	claimstore "expense-claims-backend/lib/claim/store"
	employeestore "expense-claims-backend/lib/employee/store"
	evidencestorage "expense-claims-backend/lib/evidence-storage"
	"expense-claims-backend/lib/smtp"
	"expense-claims-backend/models"
	claimapimodels "expense-claims-backend/models/api/claim"
	dbmodels "expense-claims-backend/models/db"
)

// Provider - движок жизненного цикла авансового отчёта. Единственная точка
// изменения заявок: проверяет право доступа, допустимость перехода и лимит
// подач, затем делегирует сохранение хранилищу одной условной записью.
type Provider interface {
	CreateDraft(employeeID string, data claimapimodels.ClaimData) (claimapimodels.ClaimView, error)
	Submit(actorID, claimID string) (claimapimodels.ClaimView, error)
	Appeal(actorID, claimID string) (claimapimodels.ClaimView, error)
	UpdateDetails(actorID, claimID string, data claimapimodels.ClaimData) error
	UpdateAmount(actorID, claimID string, amount decimal.Decimal) error
	UpdateBankDetails(actorID, claimID string, details claimapimodels.BankDetails) error
	DeleteDraft(actorID, claimID string) error

	Approve(managerID, claimID string) error
	Reject(managerID, claimID, feedback string) error
	Reimburse(officerID, claimID string) error

	AddEvidence(ctx context.Context, actorID, claimID, fileName string, body []byte) error
	RemoveEvidence(ctx context.Context, actorID, claimID, fileName string) error
	GetEvidence(ctx context.Context, actorID string, role models.UserRole, claimID, fileName string) ([]byte, error)

	Get(actorID string, role models.UserRole, claimID string) (claimapimodels.ClaimView, error)
	ListByStatus(employeeID string, status models.ClaimStatus) ([]claimapimodels.ClaimView, error)
	ListManagedPending(managerID string) ([]claimapimodels.ClaimView, error)
	ListAccepted() ([]claimapimodels.ClaimView, error)
}

var Instance Provider

func NewHandler(evidenceStorage evidencestorage.Provider) {
	employeeStore := employeestore.NewInstance(db.DB)
	Instance = NewInstance(
		claimstore.NewInstance(db.DB),
		claimaccess.NewInstance(employeeStore),
		evidenceStorage,
	)
}

func NewInstance(store claimstore.Provider, access claimaccess.Provider, evidenceStorage evidencestorage.Provider) Provider {
	return &impl{
		store:           store,
		access:          access,
		evidenceStorage: evidenceStorage,
	}
}

type impl struct {
	store           claimstore.Provider
	access          claimaccess.Provider
	evidenceStorage evidencestorage.Provider
}

func (i impl) GetLogger(claimID, actorID string) *log.Entry {
	logger := log.
		WithField("claim_id", claimID).
		WithField("actor_id", actorID)
	return logger
}

func (i impl) getClaim(claimID string) (dbmodels.Claim, error) {
	rec, err := i.store.GetByID(claimID)
	if err != nil {
		return dbmodels.Claim{}, errors.Wrap(models.ErrPersistence, err.Error())
	}
	if rec == nil {
		return dbmodels.Claim{}, errors.Wrap(models.ErrNotFound, "заявка не найдена")
	}
	return *rec, nil
}

func (i impl) CreateDraft(employeeID string, data claimapimodels.ClaimData) (claimapimodels.ClaimView, error) {
	rec := dbmodels.Claim{
		EmployeeID:   employeeID,
		Status:       models.ClaimStatusDraft,
		AttemptCount: 0,
		Title:        data.Title,
		Description:  data.Description,
		Category:     data.Category,
		Currency:     data.Currency,
		Amount:       data.Amount,
		Evidence:     pq.StringArray{},
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return claimapimodels.ClaimView{}, errors.Wrap(models.ErrPersistence, err.Error())
	}
	created, err := i.getClaim(id)
	if err != nil {
		return claimapimodels.ClaimView{}, err
	}
	i.GetLogger(id, employeeID).Info("создан черновик заявки")
	return claimapimodels.ClaimConvert(created), nil
}

// Submit - подача черновика на рассмотрение.
// Draft -> Pending, счётчик подач увеличивается на единицу.
func (i impl) Submit(actorID, claimID string) (claimapimodels.ClaimView, error) {
	return i.submitForReview(actorID, claimID, models.ClaimStatusDraft)
}

// Appeal - повторная подача после отклонения.
// Rejected -> Pending, используется тот же счётчик, что и при подаче.
func (i impl) Appeal(actorID, claimID string) (claimapimodels.ClaimView, error) {
	return i.submitForReview(actorID, claimID, models.ClaimStatusRejected)
}

func (i impl) submitForReview(actorID, claimID string, from models.ClaimStatus) (claimapimodels.ClaimView, error) {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return claimapimodels.ClaimView{}, err
	}
	if err = i.access.CheckOwner(actorID, rec); err != nil {
		return claimapimodels.ClaimView{}, err
	}
	if rec.Status != from {
		return claimapimodels.ClaimView{}, errors.Wrapf(models.ErrInvalidState,
			"подать можно только заявку в статусе «%s», текущий статус «%s»", from.ToHuman(), rec.Status.ToHuman())
	}
	if rec.AttemptCount >= models.MaxAttemptCount {
		return claimapimodels.ClaimView{}, errors.Wrapf(models.ErrAttemptLimitExceeded,
			"заявка подавалась %d раз(а), повторная подача невозможна", rec.AttemptCount)
	}
	updated, err := i.store.UpdateTransition(claimID, from, map[string]interface{}{
		"status":        models.ClaimStatusPending,
		"attempt_count": rec.AttemptCount + 1,
	})
	if err != nil {
		return claimapimodels.ClaimView{}, errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return claimapimodels.ClaimView{}, errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	rec.Status = models.ClaimStatusPending
	rec.AttemptCount++
	i.GetLogger(claimID, actorID).
		WithField("attempt_count", rec.AttemptCount).
		Info("заявка подана на рассмотрение")
	return claimapimodels.ClaimConvert(rec), nil
}

func (i impl) UpdateDetails(actorID, claimID string, data claimapimodels.ClaimData) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckOwner(actorID, rec); err != nil {
		return err
	}
	if !rec.Status.CanEditAmount() {
		return errors.Wrap(models.ErrInvalidState, "описание можно менять только в черновике или на рассмотрении")
	}
	updated, err := i.store.UpdateInStatus(claimID,
		[]models.ClaimStatus{models.ClaimStatusDraft, models.ClaimStatusPending},
		map[string]interface{}{
			"title":       data.Title,
			"description": data.Description,
			"category":    data.Category,
			"currency":    data.Currency,
			"amount":      data.Amount,
		})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	return nil
}

func (i impl) UpdateAmount(actorID, claimID string, amount decimal.Decimal) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckOwner(actorID, rec); err != nil {
		return err
	}
	if !rec.Status.CanEditAmount() {
		return errors.Wrap(models.ErrInvalidState, "сумму можно менять только в черновике или на рассмотрении")
	}
	updated, err := i.store.UpdateInStatus(claimID,
		[]models.ClaimStatus{models.ClaimStatusDraft, models.ClaimStatusPending},
		map[string]interface{}{"amount": amount})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	return nil
}

func (i impl) UpdateBankDetails(actorID, claimID string, details claimapimodels.BankDetails) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckOwner(actorID, rec); err != nil {
		return err
	}
	if !rec.Status.CanEditBankDetails() {
		return errors.Wrap(models.ErrInvalidState, "после возмещения реквизиты не меняются")
	}
	updated, err := i.store.UpdateInStatus(claimID,
		[]models.ClaimStatus{models.ClaimStatusDraft, models.ClaimStatusPending, models.ClaimStatusAccepted, models.ClaimStatusRejected},
		map[string]interface{}{
			"account_name":   details.AccountName,
			"account_number": details.AccountNumber,
			"sort_code":      details.SortCode,
		})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	return nil
}

func (i impl) DeleteDraft(actorID, claimID string) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckOwner(actorID, rec); err != nil {
		return err
	}
	if rec.Status != models.ClaimStatusDraft {
		return errors.Wrap(models.ErrInvalidState, "удалить можно только черновик")
	}
	deleted, err := i.store.DeleteDraft(claimID)
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !deleted {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	i.GetLogger(claimID, actorID).Info("черновик заявки удалён")
	return nil
}

func (i impl) Approve(managerID, claimID string) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckReview(managerID, rec); err != nil {
		return err
	}
	if rec.Status != models.ClaimStatusPending {
		return errors.Wrapf(models.ErrInvalidState,
			"согласовать можно только заявку на рассмотрении, текущий статус «%s»", rec.Status.ToHuman())
	}
	updated, err := i.store.UpdateTransition(claimID, models.ClaimStatusPending, map[string]interface{}{
		"status": models.ClaimStatusAccepted,
	})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	i.GetLogger(claimID, managerID).Info("заявка согласована")
	return nil
}

// Reject переводит заявку на рассмотрении в отклонённые. Причина обязательна:
// сотрудник должен видеть, что исправлять перед апелляцией.
func (i impl) Reject(managerID, claimID, feedback string) error {
	if feedback == "" {
		return errors.Wrap(models.ErrInvalidState, "не указана причина отклонения")
	}
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckReview(managerID, rec); err != nil {
		return err
	}
	if rec.Status != models.ClaimStatusPending {
		return errors.Wrapf(models.ErrInvalidState,
			"отклонить можно только заявку на рассмотрении, текущий статус «%s»", rec.Status.ToHuman())
	}
	updated, err := i.store.UpdateTransition(claimID, models.ClaimStatusPending, map[string]interface{}{
		"status":   models.ClaimStatusRejected,
		"feedback": feedback,
	})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	i.GetLogger(claimID, managerID).Info("заявка отклонена")
	i.notifyEmployee(rec, "Заявка отклонена",
		"Заявка «"+rec.Title+"» отклонена. Причина: "+feedback)
	return nil
}

func (i impl) Reimburse(officerID, claimID string) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckReimburse(officerID, rec); err != nil {
		return err
	}
	if rec.Status != models.ClaimStatusAccepted {
		return errors.Wrapf(models.ErrInvalidState,
			"возместить можно только согласованную заявку, текущий статус «%s»", rec.Status.ToHuman())
	}
	updated, err := i.store.UpdateTransition(claimID, models.ClaimStatusAccepted, map[string]interface{}{
		"status": models.ClaimStatusReimbursed,
	})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	i.GetLogger(claimID, officerID).Info("заявка возмещена")
	i.notifyEmployee(rec, "Заявка возмещена",
		"Заявка «"+rec.Title+"» возмещена на сумму "+rec.Amount.StringFixed(2)+" "+rec.Currency)
	return nil
}

func (i impl) AddEvidence(ctx context.Context, actorID, claimID, fileName string, body []byte) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckOwner(actorID, rec); err != nil {
		return err
	}
	if !rec.Status.CanAddEvidence() {
		return errors.Wrap(models.ErrInvalidState, "вложения добавляются только в черновике или на рассмотрении")
	}
	if rec.HasEvidence(fileName) {
		return errors.Wrap(models.ErrInvalidState, "вложение с таким именем уже добавлено")
	}
	// сначала пишем файл: при ошибке записи список имён не меняется
	err = i.evidenceStorage.Write(ctx, claimID, fileName, body)
	if err != nil {
		if errors.Is(err, evidencestorage.ErrObjectExists) {
			return errors.Wrap(models.ErrInvalidState, "вложение с таким именем уже добавлено")
		}
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	newList := append(append(pq.StringArray{}, rec.Evidence...), fileName)
	updated, err := i.store.UpdateInStatus(claimID,
		[]models.ClaimStatus{models.ClaimStatusDraft, models.ClaimStatusPending},
		map[string]interface{}{"evidence": newList})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		// статус сменился между проверкой и записью, файл убираем
		if delErr := i.evidenceStorage.Delete(ctx, claimID, fileName); delErr != nil {
			i.GetLogger(claimID, actorID).WithError(delErr).Error("ошибка удаления вложения после конфликта статуса")
		}
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	i.GetLogger(claimID, actorID).
		WithField("file_name", fileName).
		Info("добавлено вложение")
	return nil
}

func (i impl) RemoveEvidence(ctx context.Context, actorID, claimID, fileName string) error {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return err
	}
	if err = i.access.CheckOwner(actorID, rec); err != nil {
		return err
	}
	if !rec.Status.CanRemoveEvidence() {
		return errors.Wrap(models.ErrInvalidState, "вложения удаляются только в черновике или после отклонения")
	}
	if !rec.HasEvidence(fileName) {
		return errors.Wrap(models.ErrNotFound, "вложение не найдено")
	}
	err = i.evidenceStorage.Delete(ctx, claimID, fileName)
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	newList := pq.StringArray{}
	for _, name := range rec.Evidence {
		if name != fileName {
			newList = append(newList, name)
		}
	}
	updated, err := i.store.UpdateInStatus(claimID,
		[]models.ClaimStatus{models.ClaimStatusDraft, models.ClaimStatusRejected},
		map[string]interface{}{"evidence": newList})
	if err != nil {
		return errors.Wrap(models.ErrPersistence, err.Error())
	}
	if !updated {
		return errors.Wrap(models.ErrInvalidState, "статус заявки уже изменился")
	}
	i.GetLogger(claimID, actorID).
		WithField("file_name", fileName).
		Info("удалено вложение")
	return nil
}

func (i impl) GetEvidence(ctx context.Context, actorID string, role models.UserRole, claimID, fileName string) ([]byte, error) {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return nil, err
	}
	if err = i.checkViewAccess(actorID, role, rec); err != nil {
		return nil, err
	}
	if !rec.HasEvidence(fileName) {
		return nil, errors.Wrap(models.ErrNotFound, "вложение не найдено")
	}
	body, err := i.evidenceStorage.Read(ctx, claimID, fileName)
	if err != nil {
		return nil, errors.Wrap(models.ErrPersistence, err.Error())
	}
	return body, nil
}

func (i impl) Get(actorID string, role models.UserRole, claimID string) (claimapimodels.ClaimView, error) {
	rec, err := i.getClaim(claimID)
	if err != nil {
		return claimapimodels.ClaimView{}, err
	}
	if err = i.checkViewAccess(actorID, role, rec); err != nil {
		return claimapimodels.ClaimView{}, err
	}
	return claimapimodels.ClaimConvert(rec), nil
}

// checkViewAccess - чтение заявки: владелец, его руководитель либо
// расчётный отдел (без ограничения по подчинённости)
func (i impl) checkViewAccess(actorID string, role models.UserRole, rec dbmodels.Claim) error {
	if rec.EmployeeID == actorID {
		return nil
	}
	if role == models.PayrollOfficerRole {
		return nil
	}
	if role == models.LineManagerRole {
		return i.access.CheckReview(actorID, rec)
	}
	return errors.Wrap(models.ErrUnauthorized, "заявка принадлежит другому сотруднику")
}

func (i impl) ListByStatus(employeeID string, status models.ClaimStatus) ([]claimapimodels.ClaimView, error) {
	list, err := i.store.ListByEmployeeAndStatus(employeeID, status)
	if err != nil {
		return nil, errors.Wrap(models.ErrPersistence, err.Error())
	}
	return convertList(list), nil
}

func (i impl) ListManagedPending(managerID string) ([]claimapimodels.ClaimView, error) {
	list, err := i.store.ListManagedBy(managerID, models.ClaimStatusPending)
	if err != nil {
		return nil, errors.Wrap(models.ErrPersistence, err.Error())
	}
	return convertList(list), nil
}

func (i impl) ListAccepted() ([]claimapimodels.ClaimView, error) {
	list, err := i.store.ListByStatus(models.ClaimStatusAccepted)
	if err != nil {
		return nil, errors.Wrap(models.ErrPersistence, err.Error())
	}
	return convertList(list), nil
}

func convertList(list []dbmodels.Claim) []claimapimodels.ClaimView {
	result := make([]claimapimodels.ClaimView, 0, len(list))
	for _, rec := range list {
		result = append(result, claimapimodels.ClaimConvert(rec))
	}
	return result
}

func (i impl) notifyEmployee(rec dbmodels.Claim, subject, message string) {
	if smtp.Instance == nil || rec.Employee == nil {
		return
	}
	err := smtp.Instance.SendEMail(rec.Employee.Email, message, subject)
	if err != nil {
		i.GetLogger(rec.ID, rec.EmployeeID).WithError(err).Error("ошибка отправки уведомления сотруднику")
	}
}
