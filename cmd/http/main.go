package main

import (
	"context"
	"errors"
	"medirdv-service/internal/app/config"
	"medirdv-service/internal/app/delivery/http/controllers"
	"medirdv-service/internal/app/delivery/http/middlewares"
	"medirdv-service/internal/app/delivery/http/routers"
	"medirdv-service/internal/app/drivers/database"
	"medirdv-service/internal/app/drivers/logger"
	"medirdv-service/internal/app/drivers/messaging"
	"medirdv-service/internal/app/drivers/storage"
	"medirdv-service/internal/app/services/backend"
	"medirdv-service/internal/app/services/backend/clinics"
	"medirdv-service/internal/app/services/backend/physicians"
	"medirdv-service/internal/app/services/core/availabilities"
	"medirdv-service/internal/app/services/shared/locker"
	"medirdv-service/internal/app/services/shared/publisher"
	"medirdv-service/internal/app/services/shared/ratelimiter"
	"medirdv-service/internal/app/services/shared/redis"
	sharedStorage "medirdv-service/internal/app/services/shared/storage"
	"medirdv-service/internal/pkg/availability"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig, err := config.NewInternalConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		panic(err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := database.NewRedisClient(ctx, driverConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	minioClient, err := storage.NewMinio(driverConfig)
	if err != nil {
		log.Fatal("Failed to create MinIO client", zap.Error(err))
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          redisClient,
		Logger:         log,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if internalConfig.App.AvailabilityEventsPublished {
		rabbitMQConnection, err := messaging.NewRabbitMQ(driverConfig)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		bootstrap.RabbitMQ = rabbitMQConnection
	}

	if err := bootstrapingTheApp(ctx, bootstrap); err != nil {
		log.Fatal("Failed to bootstrap the application", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)

	// MinIO
	snapshotStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)
	if err := snapshotStorage.EnsureBucket(ctx, cfg.Minio.SnapshotBucket); err != nil {
		return err
	}

	// Backend
	backendClient := backend.NewClient(log, cfg.Backend.BaseUrl, cfg.BackendTimeout(), cfg.Backend.MaxRequestsPerSecond)
	backendClient.MaxResponseBytes = cfg.BackendMaxResponseBytes()
	physicianBackend := physicians.NewPhysicianBackendClient(backendClient)
	clinicBackend := clinics.NewClinicBackendClient(backendClient)

	// Availability
	deps := availabilities.Dependencies{
		PhysicianBackend: physicianBackend,
		ClinicBackend:    clinicBackend,
		RedisRepository:  redisRepository,
		Locker:           lockService,
		Storage:          snapshotStorage,
		Resolver:         availability.NewResolver(cfg.Location(), cfg.WeekdayNames(), cfg.OpeningPolicy()),
	}

	// RabbitMQ
	if bootstrap.RabbitMQ != nil {
		availabilityPublisher, err := publisher.NewAvailabilityPublisher(log, bootstrap.RabbitMQ, cfg.RabbitMQ.AvailabilityQueue)
		if err != nil {
			return err
		}
		deps.Publisher = availabilityPublisher
	}

	availabilityUsecase := availabilities.NewAvailabilityUsecase(deps, cfg, log)

	if cfg.App.SnapshotWorkerEnabled {
		worker := availabilities.NewSnapshotWorker(log, cfg, availabilityUsecase)
		worker.Start(context.WithoutCancel(ctx))
		bootstrap.SnapshotWorkerStop = worker.Stop
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, cfg)

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares,
		controllers.NewAvailabilityController(log, availabilityUsecase),
		controllers.NewWebhookController(log, availabilityUsecase, ratelimiter.NewHookQuota(redisRepository, log, cfg.App.HookRateLimitPerMinute)),
		controllers.NewSnapshotController(log, availabilityUsecase, cfg),
		controllers.NewHealthController(log, redisRepository, cfg),
	)
	return nil
}
