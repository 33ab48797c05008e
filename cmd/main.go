package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cancelReservationHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/create_reservation"
	createSeriesHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/create_series"
	deleteReservationHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/delete_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/get_availability"
	getDashboardHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/get_dashboard"
	getReportHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/get_report"
	getReservationHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/get_reservation"
	listCoursesHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/list_courses"
	listReservationsHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/list_reservations"
	updateReservationHandler "github.com/m04kA/SMC-LectureBooking/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-LectureBooking/internal/api/middleware"
	"github.com/m04kA/SMC-LectureBooking/internal/config"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/lock"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-LectureBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/storage/reservationmongo"
	"github.com/m04kA/SMC-LectureBooking/internal/integrations/notifier"
	reservationsService "github.com/m04kA/SMC-LectureBooking/internal/service/reservations"
	buildReportUC "github.com/m04kA/SMC-LectureBooking/internal/usecase/build_report"
	checkAvailabilityUC "github.com/m04kA/SMC-LectureBooking/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-LectureBooking/internal/usecase/create_reservation"
	createSeriesUC "github.com/m04kA/SMC-LectureBooking/internal/usecase/create_series"
	"github.com/m04kA/SMC-LectureBooking/pkg/logger"
	"github.com/m04kA/SMC-LectureBooking/pkg/metrics"
)

// reservationStore полный набор операций хранилища, нужный сервису
type reservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	ListAll(ctx context.Context) ([]*domain.Reservation, error)
	Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

// slotLocker блокировка слота на время создания бронирования
type slotLocker interface {
	Acquire(ctx context.Context, date time.Time, slot domain.Slot) (lock.ReleaseFunc, bool, error)
}

// eventNotifier публикация событий бронирований
type eventNotifier interface {
	Notify(ctx context.Context, event string, res *domain.Reservation)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-LectureBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	storeTimeout := time.Duration(cfg.Server.StoreTimeout) * time.Second

	// Подключаем хранилище бронирований
	var store reservationStore

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		store = reservationRepo.NewRepository(db)

	case config.StorageDriverMongo:
		connectCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			cancel()
			log.Fatal("Failed to connect to MongoDB: %v", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			cancel()
			log.Fatal("Failed to ping MongoDB: %v", err)
		}

		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		repo, err := reservationmongo.NewRepository(connectCtx, coll)
		cancel()
		if err != nil {
			log.Fatal("Failed to prepare MongoDB collection: %v", err)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("Failed to disconnect from MongoDB: %v", err)
			}
		}()
		log.Info("Successfully connected to MongoDB (db=%s, collection=%s)", cfg.Mongo.Database, cfg.Mongo.Collection)

		store = repo

	default:
		store = memory.NewStore(memory.WithUniqueSlots())
		log.Warn("Using in-memory storage, reservations are lost on restart")
	}

	// Блокировка слотов в Redis (если настроена)
	var locker slotLocker = lock.Nop{}
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// без блокировки остаются повторная проверка и уникальный индекс хранилища
			log.Warn("Redis unavailable, slot locking degraded: %v", err)
		}
		locker = lock.NewSlotLocker(redisClient, time.Duration(cfg.Redis.LockTTL)*time.Millisecond)
		log.Info("Slot locking enabled (redis=%s, ttl=%dms)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	}

	// Публикация событий в RabbitMQ (если настроена)
	var eventSink eventNotifier = notifier.Nop{}
	if cfg.RabbitMQ.Enabled() {
		publisher, err := notifier.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Warn("RabbitMQ unavailable, notifications disabled: %v", err)
		} else {
			defer publisher.Close()
			eventSink = notifier.New(
				publisher,
				time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Millisecond,
				metricsCollector,
				log,
			)
			log.Info("Notifications enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
		}
	}

	courses := cfg.CourseCatalog()

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(store, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		store,
		checkAvailabilityUseCase,
		locker,
		eventSink,
		metricsCollector,
		courses,
		log,
	)

	createSeriesUseCase := createSeriesUC.NewUseCase(
		createReservationUseCase,
		store,
		eventSink,
		metricsCollector,
		createSeriesUC.Config{
			ConfirmationThreshold: cfg.Series.ConfirmationThreshold,
			InsertConcurrency:     cfg.Series.InsertConcurrency,
		},
		log,
	)

	buildReportUseCase := buildReportUC.NewUseCase(
		store,
		buildReportUC.Config{
			CategoryKey:  cfg.Reports.CategoryKey,
			StoreTimeout: storeTimeout,
		},
		log,
	)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		store,
		checkAvailabilityUseCase,
		eventSink,
		courses,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	listCourses := listCoursesHandler.NewHandler(courses, log)
	createSeries := createSeriesHandler.NewHandler(createSeriesUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getReport := getReportHandler.NewHandler(buildReportUseCase, log)
	getDashboard := getDashboardHandler.NewHandler(buildReportUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.NewRoute().Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		public.Use(limiter.Middleware)
		log.Info("Public rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Занятость слотов на дату
	public.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Публичная заявка на бронирование
	public.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Каталог курсов
	public.HandleFunc("/courses", listCourses.Handle).Methods(http.MethodGet)

	// ============================================================
	// OPERATOR ROUTES (требуют X-Operator-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.OperatorAuth(cfg.Auth.OperatorToken))

	// --- Бронирования ---
	// Создание бронирования или серии
	admin.HandleFunc("/reservations", createSeries.Handle).Methods(http.MethodPost)

	// Предпросмотр серии
	admin.HandleFunc("/reservations/preview", createSeries.HandlePreview).Methods(http.MethodPost)

	// Список с фильтрами
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)

	// Получение, обновление и удаление по ID
	admin.HandleFunc("/reservations/{id}", getReservation.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}", updateReservation.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/reservations/{id}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Статус и флаги
	admin.HandleFunc("/reservations/{id}/status", updateReservation.HandleStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}/payment", updateReservation.HandlePayment).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}/receipt", updateReservation.HandleReceipt).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{id}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Отчёты ---
	admin.HandleFunc("/reports", getReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/export", getReport.HandleExport).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/{kind}", getDashboard.HandleDetail).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
