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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers"
	bookingConversionHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/booking_conversion"
	checkConflictHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/check_conflict"
	completeBookingHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/get_day_schedule"
	listBookingsHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/list_bookings"
	resolveAvailabilityHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/resolve_availability"
	saturdayConfigsHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/saturday_configs"
	scheduleExceptionsHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/schedule_exceptions"
	transitionBookingHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/transition_booking"
	updateBookingHandler "github.com/BongoShiny/agenda-pro-new-sub001/internal/api/handlers/update_booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/api/middleware"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/config"
	"github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/lock"
	bookingRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/booking"
	directoryRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/directory"
	exceptionRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/exception"
	saturdayRepo "github.com/BongoShiny/agenda-pro-new-sub001/internal/infra/storage/saturday"
	bookingsService "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/bookings"
	conversionsService "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/conversions"
	schedulesService "github.com/BongoShiny/agenda-pro-new-sub001/internal/service/schedules"
	checkConflictUC "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/check_conflict"
	createBookingUC "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/create_booking"
	getDayScheduleUC "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/get_day_schedule"
	resolveAvailabilityUC "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/resolve_availability"
	updateBookingUC "github.com/BongoShiny/agenda-pro-new-sub001/internal/usecase/update_booking"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/dbmetrics"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/metrics"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/txmanager"
)

// dayLocker блокировка ключа дня, общая для create и update
type dayLocker interface {
	Acquire(ctx context.Context, key string) (lock.Unlock, error)
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting agenda scheduling service...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	// Распределенная блокировка ключа дня (если включена)
	var locker dayLocker = lock.NoopLocker{}
	if cfg.Lock.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = lock.NewRedisLocker(
			redisClient,
			time.Duration(cfg.Lock.TTLSeconds)*time.Second,
			time.Duration(cfg.Lock.WaitMillis)*time.Millisecond,
		)
		log.Info("Redis day lock enabled (addr=%s, ttl=%ds, wait=%dms)",
			cfg.Redis.Addr, cfg.Lock.TTLSeconds, cfg.Lock.WaitMillis)
	} else {
		log.Info("Redis day lock disabled, relying on database locks only")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		directoryRepository *directoryRepo.Repository
		exceptionRepository *exceptionRepo.Repository
		saturdayRepository  *saturdayRepo.Repository
		txMgr               *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		directoryRepository = directoryRepo.NewRepository(wrappedDB)
		exceptionRepository = exceptionRepo.NewRepository(wrappedDB)
		saturdayRepository = saturdayRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		directoryRepository = directoryRepo.NewRepository(db)
		exceptionRepository = exceptionRepo.NewRepository(db)
		saturdayRepository = saturdayRepo.NewRepository(db)
		txMgr = txmanager.NewFromSQL(db)
	}

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(
		directoryRepository,
		exceptionRepository,
		saturdayRepository,
		bookingRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		metricsCollector,
		log,
	)
	conversionSvc := conversionsService.NewService(
		bookingRepository,
		txMgr,
		metricsCollector,
		&conversionsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		locker,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		scheduleSvc,
		locker,
		txMgr,
		metricsCollector,
		log,
	)
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(scheduleSvc, log)
	checkConflictUseCase := checkConflictUC.NewUseCase(scheduleSvc, log)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(scheduleSvc, cfg.Scheduling.DefaultSlotMinutes, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	bookingConversion := bookingConversionHandler.NewHandler(conversionSvc, log)
	resolveAvailability := resolveAvailabilityHandler.NewHandler(resolveAvailabilityUseCase, log)
	checkConflict := checkConflictHandler.NewHandler(checkConflictUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	scheduleExceptions := scheduleExceptionsHandler.NewHandler(scheduleSvc, log)
	saturdayConfigs := saturdayConfigsHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check (публичный)
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			log.Warn("GET /health - Database unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix, все маршруты требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Доступность и проверка конфликтов ---
	api.HandleFunc("/professionals/{professionalId}/units/{unitId}/availability",
		resolveAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/units/{unitId}/day-schedule",
		getDaySchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/conflicts/check", checkConflict.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/status", transitionBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/clinical-note-completion", completeBooking.Handle).Methods(http.MethodPost)

	// --- Конверсия ---
	api.HandleFunc("/bookings/{bookingId}/conversion", bookingConversion.HandleRecord).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/conversion", bookingConversion.HandleClear).Methods(http.MethodDelete)

	// --- Администрирование графиков ---
	api.HandleFunc("/professionals/{professionalId}/exceptions", scheduleExceptions.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/professionals/{professionalId}/exceptions", scheduleExceptions.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId}/exceptions/{exceptionId}", scheduleExceptions.HandleDelete).Methods(http.MethodDelete)
	api.HandleFunc("/saturday/professionals", saturdayConfigs.HandleUpsertProfessional).Methods(http.MethodPut)
	api.HandleFunc("/saturday/professionals", saturdayConfigs.HandleListProfessional).Methods(http.MethodGet)
	api.HandleFunc("/saturday/units", saturdayConfigs.HandleUpsertUnit).Methods(http.MethodPut)
	api.HandleFunc("/saturday/units", saturdayConfigs.HandleListUnit).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
