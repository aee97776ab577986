package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"expense-claims-backend/config"
	"expense-claims-backend/controllers"
	"expense-claims-backend/fiberlog"
	authhandler "expense-claims-backend/lib/auth"
	claimhandler "expense-claims-backend/lib/claim"
	pendingreminderworker "expense-claims-backend/lib/claim/pending-reminder-worker"
	employeehandler "expense-claims-backend/lib/employee"
	evidencestorage "expense-claims-backend/lib/evidence-storage"
	xlsexport "expense-claims-backend/lib/export/xls"
	"expense-claims-backend/lib/rbac"
	s3client "expense-claims-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	rbac.NewHandler()
	xlsexport.NewHandler()
	authhandler.NewHandler()
	employeehandler.NewHandler()

	storage := evidencestorage.NewInstance(s3client.Client)
	if err := storage.EnsureBucket(ctx); err != nil {
		log.WithError(err).Error("ошибка создания бакета для вложений")
	}
	claimhandler.NewHandler(storage)
	controllers.InitActorSource()

	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача напоминаний о заявках, давно ожидающих решения
	if *config.Conf.Reminder.Enabled {
		pendingreminderworker.StartWorker(ctx)
	}
}
