package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/pricing-api/internal/cfg"
	v1Http "github.com/DRSN-tech/pricing-api/internal/delivery/v1/http"
	"github.com/DRSN-tech/pricing-api/internal/infrastructure/kafka"
	"github.com/DRSN-tech/pricing-api/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/pricing-api/internal/repository/minio"
	s3Conv "github.com/DRSN-tech/pricing-api/internal/repository/minio/converter"
	"github.com/DRSN-tech/pricing-api/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/pricing-api/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pricing-api/internal/repository/redis"
	redisConv "github.com/DRSN-tech/pricing-api/internal/repository/redis/converter"
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/DRSN-tech/pricing-api/pkg/clients"
	"github.com/DRSN-tech/pricing-api/pkg/clock"
	"github.com/DRSN-tech/pricing-api/pkg/closer"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/DRSN-tech/pricing-api/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout        = 10 * time.Second
	kafkaTopicTimeout  = 10 * time.Second
	forcedCloseTimeout = 2 * time.Second
)

// App собирает зависимости сервиса цен и управляет его жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	handler http.Handler
	httpSrv *v1Http.Server
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(forcedCloseTimeout),
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	productRepo, err := app.initProductRepo(ctx)
	if err != nil {
		app.closeOnInitError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cacheRepo, err := app.initCacheRepo(ctx)
	if err != nil {
		app.closeOnInitError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := app.initProducer()
	if err != nil {
		app.closeOnInitError()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	productUC := usecase.NewProductUC(
		productRepo,
		usecase.NewDiscountedPriceCalculator(),
		cacheRepo,
		producer,
		clock.NewRealClock(),
		logger,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(productUC, cfg.App.IsDevelopment())

	app.handler = r
	app.httpSrv = v1Http.NewServer(r, cfg.Http)
	app.closer.Add(app.httpSrv.Stop)

	return app, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s (storage: %s)", a.cfg.Http.Port, a.cfg.App.Storage)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		appErr = errors.Join(appErr, err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) initProductRepo(ctx context.Context) (usecase.ProductRepository, error) {
	switch a.cfg.App.Storage {
	case config.StorageMemory:
		if a.cfg.App.SeedData {
			return memory.NewProductRepo(memory.SeedProducts()...), nil
		}
		return memory.NewProductRepo(), nil

	case config.StoragePostgres:
		db, err := initPGDB(ctx, a.logger, a.cfg)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		a.closer.Add(db.Close)
		return pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl(), a.logger), nil

	case config.StorageMinio:
		minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if _, err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		repo := s3Repo.NewProductRepo(minioClient, s3Conv.NewProductObjectConverterImpl(), a.cfg.Minio)
		if a.cfg.App.SeedData {
			if err := seedIfEmpty(ctx, repo, a.logger); err != nil {
				return nil, e.Wrap(whereami.WhereAmI(), err)
			}
		}
		return repo, nil

	default:
		return nil, e.Wrap(a.cfg.App.Storage, e.ErrUnknownStorage)
	}
}

// initCacheRepo возвращает nil-интерфейс, если Redis не настроен.
func (a *App) initCacheRepo(ctx context.Context) (usecase.CacheRepository, error) {
	if a.cfg.Redis == nil {
		return nil, nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	if err := redisClient.Ping(ctx); err != nil {
		_ = redisClient.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(redisClient.Close)

	return redis.NewCacheRepo(redisClient, redisConv.NewProductSummaryConverterImpl(), a.cfg.Redis, a.logger), nil
}

// initProducer возвращает nil-интерфейс, если Kafka не настроена.
func (a *App) initProducer() (usecase.EventProducer, error) {
	if a.cfg.Kafka == nil {
		return nil, nil
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		_ = producer.Close(context.Background())
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(producer.Close)

	return producer, nil
}

// closeOnInitError освобождает уже открытые ресурсы, если сборка приложения не удалась.
func (a *App) closeOnInitError() {
	ctx, cancel := context.WithTimeout(context.Background(), forcedCloseTimeout)
	defer cancel()

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("failed to release resources: %v", err)
	}
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(postgres.DefaultMigrationsURL, logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		_ = db.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// seedIfEmpty записывает демо-продукты в пустое хранилище.
func seedIfEmpty(ctx context.Context, repo usecase.ProductRepository, logger logger.Logger) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if len(existing) > 0 {
		return nil
	}

	for _, product := range memory.SeedProducts() {
		if err := repo.Save(ctx, product); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	logger.Infof("seeded %d products", len(memory.SeedProducts()))
	return nil
}
