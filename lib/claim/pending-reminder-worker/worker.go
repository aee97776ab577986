package pendingreminderworker

import (
	"context"
	"fmt"
	"time"

	"expense-claims-backend/config"
	"expense-claims-backend/db"
	claimstore "expense-claims-backend/lib/claim/store"
	"expense-claims-backend/lib/smtp"
	baseworker "expense-claims-backend/lib/utils/base-worker"
	"expense-claims-backend/lib/utils/helpers"
)

// Напоминание руководителям о заявках, давно ожидающих решения
func StartWorker(ctx context.Context) {
	interval := time.Second * time.Duration(config.Conf.Reminder.IntervalInSec)
	w := impl{
		BaseImpl: *baseworker.NewInstance("PendingClaimsReminder", time.Minute, interval),
		store:    claimstore.NewInstance(db.DB),
	}
	go w.Run(ctx, w.do)
}

type impl struct {
	baseworker.BaseImpl
	store claimstore.Provider
}

func (i impl) do(ctx context.Context) {
	logger := i.GetLogger()
	cutoff := time.Now().Add(-time.Hour * time.Duration(config.Conf.Reminder.PendingAgeInH))
	list, err := i.store.ListPendingOlderThan(cutoff)
	if err != nil {
		logger.WithError(err).Error("ошибка получения заявок, ожидающих решения")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return
		}
		if rec.Employee == nil || rec.Employee.LineManager == nil {
			continue
		}
		message := fmt.Sprintf("Заявка «%s» сотрудника %s ожидает решения с %s.",
			rec.Title, rec.Employee.GetFullName(), rec.UpdatedAt.Format("02.01.2006"))
		err = smtp.Instance.SendEMail(rec.Employee.LineManager.Email, message, "Заявка ожидает решения")
		if err != nil {
			logger.
				WithField("claim_id", rec.ID).
				WithError(err).
				Error("ошибка отправки напоминания руководителю")
		}
	}
}
