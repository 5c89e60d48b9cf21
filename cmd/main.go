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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAppointmentHandler "github.com/lamesa/LaMesa-ReservationService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/lamesa/LaMesa-ReservationService/internal/api/handlers/delete_appointment"
	getSchedulesHandler "github.com/lamesa/LaMesa-ReservationService/internal/api/handlers/get_schedules"
	listAppointmentsHandler "github.com/lamesa/LaMesa-ReservationService/internal/api/handlers/list_appointments"
	updateAppointmentHandler "github.com/lamesa/LaMesa-ReservationService/internal/api/handlers/update_appointment"
	"github.com/lamesa/LaMesa-ReservationService/internal/api/middleware"
	"github.com/lamesa/LaMesa-ReservationService/internal/config"
	"github.com/lamesa/LaMesa-ReservationService/internal/domain"
	reservationRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/lamesa/LaMesa-ReservationService/internal/infra/storage/schedule"
	"github.com/lamesa/LaMesa-ReservationService/internal/integrations/mailer"
	reservationsService "github.com/lamesa/LaMesa-ReservationService/internal/service/reservations"
	createReservationUC "github.com/lamesa/LaMesa-ReservationService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/lamesa/LaMesa-ReservationService/internal/usecase/get_available_slots"
	"github.com/lamesa/LaMesa-ReservationService/pkg/dbmetrics"
	"github.com/lamesa/LaMesa-ReservationService/pkg/logger"
	"github.com/lamesa/LaMesa-ReservationService/pkg/metrics"
	"github.com/lamesa/LaMesa-ReservationService/pkg/simpletxmanager"
	"github.com/lamesa/LaMesa-ReservationService/pkg/txmanager"
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

	log.Info("Starting LaMesa-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Политика генерации слотов расписания
	policy, err := buildSchedulePolicy(cfg.Schedule)
	if err != nil {
		log.Fatal("Failed to build schedule policy: %v", err)
	}
	log.Info("Schedule policy: %s", cfg.Schedule.Policy)

	// SMTP клиент для транзакционных писем
	mailerClient := mailer.NewClient(
		cfg.Mailer.Host,
		cfg.Mailer.Port,
		cfg.Mailer.User,
		cfg.Mailer.Password,
		cfg.Mailer.From,
		metricsCollector,
		cfg.Metrics.ServiceName,
		log,
	)
	if cfg.Mailer.Enabled && cfg.Mailer.User != "" {
		log.Info("Mailer initialized (host=%s, from=%s)", cfg.Mailer.Host, cfg.Mailer.From)
	} else {
		log.Warn("Mailer is not configured, notification emails will be skipped")
	}

	// Инициализируем репозитории и транзакционный менеджер (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Health-проба перед приёмом брони идёт через тот же пул соединений
	var pinger createReservationUC.StoragePinger = db

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		pinger = wrappedDB
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		scheduleRepository,
		mailerClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		mailerClient,
		pinger,
		txMgr,
		cfg.Database.ProbeTimeout(),
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		&policy,
		log,
	)

	// Инициализируем handlers
	listAppointments := listAppointmentsHandler.NewHandler(reservationsSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createReservationUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(reservationsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(reservationsSvc, log)
	getSchedules := getSchedulesHandler.NewHandler(getAvailableSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// Календарь доступных слотов
	api.HandleFunc("/schedules", getSchedules.Handle).Methods(http.MethodGet)

	// Брони столиков
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", updateAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments", deleteAppointment.Handle).Methods(http.MethodDelete)

	// CORS для браузерного фронтенда
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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

func buildSchedulePolicy(cfg config.ScheduleConfig) (domain.SchedulePolicy, error) {
	if cfg.Policy == "hourly" {
		return domain.NewHourlyPolicy(cfg.OpenHour, cfg.CloseHour)
	}
	return domain.NewFixedPolicy(cfg.FixedTimes)
}
