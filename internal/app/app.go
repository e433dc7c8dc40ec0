package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/product-admin/internal/cfg"
	v1Grpc "github.com/DRSN-tech/product-admin/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/product-admin/internal/delivery/v1/http"
	"github.com/DRSN-tech/product-admin/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/product-admin/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/product-admin/internal/repository/minio"
	"github.com/DRSN-tech/product-admin/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/product-admin/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-admin/internal/repository/redis"
	redisConv "github.com/DRSN-tech/product-admin/internal/repository/redis/converter"
	"github.com/DRSN-tech/product-admin/internal/usecase"
	"github.com/DRSN-tech/product-admin/pkg/clients"
	"github.com/DRSN-tech/product-admin/pkg/closer"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/logger"
	"github.com/DRSN-tech/product-admin/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout     = 10 * time.Second
	cleanupWaitTimeout  = 5 * time.Second
	healthCheckInterval = 10 * time.Second
	topicTimeout        = 10 * time.Second
)

// App — собранное приложение: HTTP API каталога, служебный gRPC и outbox worker.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv     *v1Http.Server
	grpcSrv     *v1Grpc.GRPCServer
	worker      *kafka.OutboxWorker
	imagesInfra *minioInfra.MinioInfrastructure
	checks      map[string]v1Grpc.Check

	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewApp подключается к внешним сервисам и собирает зависимости.
// Ресурсы регистрируются в closer в порядке открытия и закрываются в обратном.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	a := &App{
		cfg:      cfg,
		logger:   logger,
		closer:   closer.NewCloser(0),
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}

	if err := a.init(); err != nil {
		bgCancel()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := a.closer.Close(ctx); cerr != nil {
			logger.Warnf("cleanup after failed init: %v", cerr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	cfg := a.cfg

	db, err := initPGDB(a.logger, cfg)
	if err != nil {
		return err
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverterImpl{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverterImpl{})
	txManager := pgdb.NewTxManager(db.Pool)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	a.imagesInfra = minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, a.logger, a.bgCtx)
	a.closer.Add("minio cleanup", a.imagesInfra.WaitForCleanup)

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.Add("redis", func(context.Context) error {
		return redisClient.Close()
	})
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.CacheConverterImpl{}, cfg.Redis, a.logger)

	producer, err := kafka.NewProducer(a.logger, cfg.Kafka)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("kafka producer", func(context.Context) error {
		return producer.Close()
	})
	if err := producer.EnsureTopic(topicTimeout); err != nil {
		// Топик может создаваться самим брокером, поэтому старт не прерываем.
		a.logger.Warnf("failed to ensure kafka topic: %v", err)
	}

	a.worker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, cfg.Outbox, pgdb.OutboxChannel, db.Dsn)

	catalogUC := usecase.NewCatalogUC(
		productRepo,
		categoryRepo,
		outboxRepo,
		cacheRepo,
		txManager,
		a.imagesInfra,
		kafka.NewEventEncoder(),
		a.logger,
	)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(catalogUC, cfg.Http)
	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, a.logger)
	a.checks = map[string]v1Grpc.Check{
		"postgres": func(ctx context.Context) error { return db.Pool.Ping(ctx) },
		"redis":    redisClient.Ping,
	}

	return nil
}

// Run запускает серверы и worker и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	a.worker.Start(a.bgCtx)
	a.closer.Add("outbox worker", func(context.Context) error {
		a.worker.Stop()
		return nil
	})

	go a.grpcSrv.RunHealthChecks(a.bgCtx, healthCheckInterval, a.checks)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()
	return appErr
}

// stop закрывает ресурсы: сначала серверы, затем worker и хранилища.
// Фоновой очистке MinIO даётся отдельный срок, после которого её контекст отменяется.
func (a *App) stop() {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	go func() {
		select {
		case <-time.After(cleanupWaitTimeout):
			a.logger.Warnf("MinIO cleanup did not finish before shutdown, some uploaded objects may remain")
		case <-shutdownCtx.Done():
		}
		a.bgCancel()
	}()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}
	a.bgCancel()

	a.logger.Infof("Application shutdown complete")
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
