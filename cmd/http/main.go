package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/app/delivery/http/routers"
	"telemed-service/internal/app/drivers/database"
	"telemed-service/internal/app/drivers/logger"
	"telemed-service/internal/app/drivers/messaging"
	"telemed-service/internal/app/drivers/storage"
	"telemed-service/internal/app/services/core/consultations"
	"telemed-service/internal/app/services/core/files"
	"telemed-service/internal/app/services/core/notifications"
	"telemed-service/internal/app/services/core/records"
	"telemed-service/internal/app/services/core/room"
	"telemed-service/internal/app/services/core/slot"
	"telemed-service/internal/app/services/core/users"
	"telemed-service/internal/app/services/core/wallet"
	"telemed-service/internal/app/services/core/withdrawals"
	"telemed-service/internal/app/services/shared/identity"
	"telemed-service/internal/app/services/shared/inmemory"
	"telemed-service/internal/app/services/shared/locker"
	sharedMessaging "telemed-service/internal/app/services/shared/messaging"
	"telemed-service/internal/app/services/shared/redis"
	sharedStorage "telemed-service/internal/app/services/shared/storage"
	"telemed-service/internal/app/services/shared/transactor"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/metrics"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const metricsNamespace = "telemed_service"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
		Minio:          storage.NewMinio(driverConfig, internalConfig),
	}

	if internalConfig.App.StorageDriver == constvars.StorageDriverPostgres {
		bootstrap.PostgresDB = database.NewPostgresDB(driverConfig)
		bootstrap.Redis = database.NewRedisClient(driverConfig)
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, internalConfig)
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server is starting",
			zap.String(constvars.LoggingEndpointKey, internalConfig.App.Port),
			zap.String("storage_driver", internalConfig.App.StorageDriver),
		)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error during shutdown", zap.Error(err))
	}
}

type repositories struct {
	transactor    contracts.Transactor
	wallet        contracts.WalletRepository
	slot          contracts.SlotRepository
	consultation  contracts.ConsultationRepository
	settlement    contracts.SettlementRepository
	earnings      contracts.EarningsRepository
	withdrawal    contracts.WithdrawalRepository
	notification  contracts.NotificationRepository
	profile       contracts.ProfileRepository
	file          contracts.ConsultationFileRepository
	medicalRecord contracts.MedicalRecordRepository
	publisher     contracts.MessagePublisher
	lockerService contracts.LockerService
}

func buildRepositories(bootstrap *config.Bootstrap) (*repositories, error) {
	if bootstrap.InternalConfig.App.StorageDriver == constvars.StorageDriverMemory {
		store := inmemory.NewStore()
		return &repositories{
			transactor:    store,
			wallet:        inmemory.NewWalletRepository(store),
			slot:          inmemory.NewSlotRepository(store),
			consultation:  inmemory.NewConsultationRepository(store),
			settlement:    inmemory.NewSettlementRepository(store),
			earnings:      inmemory.NewEarningsRepository(store),
			withdrawal:    inmemory.NewWithdrawalRepository(store),
			notification:  inmemory.NewNotificationRepository(store),
			profile:       inmemory.NewProfileRepository(store),
			file:          inmemory.NewConsultationFileRepository(store),
			medicalRecord: inmemory.NewMedicalRecordRepository(store),
		}, nil
	}

	publisher, err := sharedMessaging.NewRabbitMQPublisher(bootstrap.RabbitMQ)
	if err != nil {
		return nil, err
	}
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	db := bootstrap.PostgresDB
	return &repositories{
		transactor:    transactor.NewPostgresTransactor(db, bootstrap.Logger),
		wallet:        wallet.NewWalletPostgresRepository(db),
		slot:          slot.NewSlotPostgresRepository(db),
		consultation:  consultations.NewConsultationPostgresRepository(db),
		settlement:    consultations.NewSettlementPostgresRepository(db),
		earnings:      withdrawals.NewEarningsPostgresRepository(db),
		withdrawal:    withdrawals.NewWithdrawalPostgresRepository(db),
		notification:  notifications.NewNotificationPostgresRepository(db),
		profile:       users.NewProfilePostgresRepository(db),
		file:          files.NewConsultationFilePostgresRepository(db),
		medicalRecord: records.NewMedicalRecordPostgresRepository(db),
		publisher:     publisher,
		lockerService: locker.NewLockService(redisRepository, bootstrap.Logger),
	}, nil
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	repos, err := buildRepositories(bootstrap)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(metricsNamespace, prometheus.DefaultRegisterer)
	identityService := identity.NewJWTIdentityService(internalConfig, log)
	objectStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)

	// Usecases
	notificationUsecase := notifications.NewNotificationUsecase(repos.notification, repos.publisher, internalConfig, collector, log)
	walletUsecase := wallet.NewWalletUsecase(repos.wallet, repos.transactor, collector, log)
	slotUsecase := slot.NewSlotUsecase(repos.slot, repos.consultation, repos.transactor, collector, log)
	consultationUsecase := consultations.NewConsultationUsecase(
		repos.consultation,
		repos.settlement,
		repos.slot,
		slotUsecase,
		walletUsecase,
		repos.earnings,
		repos.profile,
		notificationUsecase,
		repos.transactor,
		internalConfig,
		collector,
		log,
	)
	medicalRecordUsecase := records.NewMedicalRecordUsecase(repos.medicalRecord, repos.consultation, consultationUsecase, notificationUsecase, log)
	withdrawalUsecase := withdrawals.NewWithdrawalUsecase(repos.withdrawal, repos.earnings, repos.profile, notificationUsecase, repos.transactor, internalConfig, log)

	// Realtime
	roomManager := room.NewManager(internalConfig, collector, log)
	sessionService := room.NewSessionService(roomManager, consultationUsecase, identityService, collector, log)
	fileUsecase := files.NewConsultationFileUsecase(repos.file, consultationUsecase, objectStorage, roomManager, internalConfig, log)

	// Sweeper
	worker := consultations.NewWorker(log, internalConfig, repos.lockerService, consultationUsecase)
	worker.Start(context.Background())
	bootstrap.WorkerStop = worker.Stop
	bootstrap.RoomsClose = func() {
		roomManager.CloseAll(constvars.RoomCloseGoingAway, constvars.RoomCloseReasonShutdown)
	}

	routers.SetupRoutes(
		bootstrap.Router,
		log,
		internalConfig,
		middlewares.NewMiddlewares(log, identityService, internalConfig),
		routers.Controllers{
			Health:        controllers.NewHealthController(internalConfig.App.Version),
			Wallet:        controllers.NewWalletController(log, walletUsecase),
			Schedule:      controllers.NewScheduleController(log, slotUsecase),
			Consultation:  controllers.NewConsultationController(log, consultationUsecase, fileUsecase, internalConfig),
			MedicalRecord: controllers.NewMedicalRecordController(log, medicalRecordUsecase),
			Withdrawal:    controllers.NewWithdrawalController(log, withdrawalUsecase),
			Notification:  controllers.NewNotificationController(log, notificationUsecase),
			Realtime:      controllers.NewRealtimeController(log, sessionService, internalConfig),
		},
	)

	return nil
}
