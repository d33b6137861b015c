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

	"github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers"
	cancelReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/cancel_reservation"
	checkDateAvailabilityHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/check_date_availability"
	getMonthlyAvailabilityHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_monthly_availability"
	getOccupantReservationsHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_occupant_reservations"
	getReservationHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_reservation"
	getResourceConfigHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/get_resource_config"
	submitBookingsHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/submit_bookings"
	updateResourceConfigHandler "github.com/m04kA/SMC-SpaceBookingService/internal/api/handlers/update_resource_config"
	"github.com/m04kA/SMC-SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBookingService/internal/config"
	"github.com/m04kA/SMC-SpaceBookingService/internal/infra/cache/resourceconfig"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	resourceRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/resource"
	reservationsService "github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	resourcesService "github.com/m04kA/SMC-SpaceBookingService/internal/service/resources"
	checkDateAvailabilityUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/check_date_availability"
	getMonthlyAvailabilityUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/get_monthly_availability"
	submitBookingsUC "github.com/m04kA/SMC-SpaceBookingService/internal/usecase/submit_bookings"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/txmanager"
)

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

	log.Info("Starting SMC-SpaceBookingService...")

	location, err := cfg.Engine.Location()
	if err != nil {
		log.Fatal("Invalid engine timezone: %v", err)
	}
	log.Info("Engine: timezone=%s, max_dates_per_request=%d, tx_max_retries=%d",
		location, cfg.Engine.MaxDatesPerRequest, cfg.Engine.TxMaxRetries)

	// Инициализируем метрики (если включены). nil-коллектор везде означает "без метрик".
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Кеш конфигурации ресурсов: Redis, если включен, иначе чтение напрямую из БД
	var cacheStore resourceconfig.Store = resourceconfig.NoopStore{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable at %s, resource config cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cacheStore = resourceconfig.NewRedisStore(rdb)
			log.Info("Resource config cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
		}
		cancelPing()
	}

	// Инициализируем репозитории
	resourceRepository := resourceRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	resourceCache := resourceconfig.NewCache(resourceRepository, cacheStore, cfg.Redis.TTL(), log)

	txMgr := txmanager.New(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Engine.TxMaxRetries),
		txmanager.WithBackoff(cfg.Engine.TxRetryBackoff()),
		txmanager.WithMetrics(metricsCollector),
	)

	// Инициализируем сервисы
	resourcesSvc := resourcesService.NewService(resourceRepository, resourceCache, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, location, log)

	// Инициализируем use cases
	checkDateAvailabilityUseCase := checkDateAvailabilityUC.NewUseCase(
		resourceCache,
		reservationRepository,
		location,
		log,
	)

	getMonthlyAvailabilityUseCase := getMonthlyAvailabilityUC.NewUseCase(
		resourceCache,
		reservationRepository,
		location,
		log,
	)

	// Внутри транзакции ресурс читается из БД (FOR SHARE), не из кеша
	submitBookingsUseCase := submitBookingsUC.NewUseCase(
		resourceRepository,
		reservationRepository,
		txMgr,
		location,
		cfg.Engine.MaxDatesPerRequest,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	checkDateAvailability := checkDateAvailabilityHandler.NewHandler(checkDateAvailabilityUseCase, log)
	getMonthlyAvailability := getMonthlyAvailabilityHandler.NewHandler(getMonthlyAvailabilityUseCase, log)
	submitBookings := submitBookingsHandler.NewHandler(submitBookingsUseCase, log)
	getResourceConfig := getResourceConfigHandler.NewHandler(resourcesSvc, log)
	updateResourceConfig := updateResourceConfigHandler.NewHandler(resourcesSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getOccupantReservations := getOccupantReservationsHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check: доступность БД
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Error("GET /healthz - Database ping failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные даты месяца
	api.HandleFunc("/resources/{resourceId}/availability",
		getMonthlyAvailability.Handle).Methods(http.MethodGet)

	// Доступность одной даты
	api.HandleFunc("/resources/{resourceId}/availability/{date}",
		checkDateAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация ресурса
	api.HandleFunc("/resources/{resourceId}/config",
		getResourceConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Бронирование набора дат
	protected.HandleFunc("/reservations", submitBookings.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// История бронирований занимающего
	protected.HandleFunc("/occupants/{occupantId}/reservations", getOccupantReservations.Handle).Methods(http.MethodGet)

	// --- Управление ресурсами ---
	// Создание или обновление конфигурации ресурса
	protected.HandleFunc("/resources/{resourceId}/config", updateResourceConfig.Handle).Methods(http.MethodPut)

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
