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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	activateTierHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/activate_tier"
	advanceFlowHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/advance_booking_flow"
	cancelFlowHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/cancel_booking_flow"
	closeFlowHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/close_booking_flow"
	deactivateTierHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/deactivate_tier"
	getAvailableDatesHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_booking"
	getFlowHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_booking_flow"
	getHostBookingsHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_host_bookings"
	getPlatformSettingsHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_platform_settings"
	getPricingHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_pricing"
	getUserBookingsHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/get_user_bookings"
	openFlowHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/open_booking_flow"
	retreatFlowHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/retreat_booking_flow"
	setAddOnInclusionHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/set_addon_inclusion"
	updateBookingStatusHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/update_booking_status"
	updateFlowSelectionHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/update_flow_selection"
	updatePlatformSettingsHandler "github.com/m04kA/SMC-SessionBooking/internal/api/handlers/update_platform_settings"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-SessionBooking/internal/infra/storage/booking"
	platformRepo "github.com/m04kA/SMC-SessionBooking/internal/infra/storage/platform"
	pricingRepo "github.com/m04kA/SMC-SessionBooking/internal/infra/storage/pricing"
	rulesRepo "github.com/m04kA/SMC-SessionBooking/internal/infra/storage/rules"
	notifierClient "github.com/m04kA/SMC-SessionBooking/internal/integrations/notifier"
	paymentsClient "github.com/m04kA/SMC-SessionBooking/internal/integrations/payments"
	availabilityService "github.com/m04kA/SMC-SessionBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SessionBooking/internal/service/bookings"
	chargesService "github.com/m04kA/SMC-SessionBooking/internal/service/charges"
	completionService "github.com/m04kA/SMC-SessionBooking/internal/service/completion"
	flowsService "github.com/m04kA/SMC-SessionBooking/internal/service/flows"
	platformService "github.com/m04kA/SMC-SessionBooking/internal/service/platform"
	pricingService "github.com/m04kA/SMC-SessionBooking/internal/service/pricing"
	getAvailableDatesUC "github.com/m04kA/SMC-SessionBooking/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-SessionBooking/internal/usecase/get_available_slots"
	openBookingUC "github.com/m04kA/SMC-SessionBooking/internal/usecase/open_booking"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
	"github.com/m04kA/SMC-SessionBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionBooking/pkg/logger"
	"github.com/m04kA/SMC-SessionBooking/pkg/metrics"
	"github.com/m04kA/SMC-SessionBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SessionBooking...")
	log.Info("Configuration loaded from config.toml")

	platformDefaults, err := cfg.PlatformDefaults()
	if err != nil {
		log.Fatal("Invalid platform defaults: %v", err)
	}

	// Инициализируем метрики. При выключенных метриках счётчики пишутся в отдельный реестр,
	// который никуда не экспортируется
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
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

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		executor = db
		txMgr = txmanager.NewTransactionManager(txmanager.SQLBeginner{DB: db})
	}

	rulesRepository := rulesRepo.NewRepository(executor)
	pricingRepository := pricingRepo.NewRepository(executor)
	platformRepository := platformRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)

	// Инициализируем интеграционных клиентов
	payments := paymentsClient.NewClient(paymentsClient.Config{
		SecretKey:     cfg.Payments.SecretKey,
		Currency:      cfg.Payments.Currency,
		PaymentMethod: cfg.Payments.PaymentMethod,
	}, log)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (payments currency=%s, notifier enabled=%t timeout=%ds)",
		cfg.Payments.Currency, notifier.Enabled(), cfg.Notifier.Timeout)

	// Инициализируем сервисы
	platformSvc := platformService.NewService(
		platformRepository,
		txMgr,
		platformDefaults,
		cfg.Platform.AdminIDs,
		log,
	)
	availabilitySvc := availabilityService.NewService(rulesRepository, txMgr, log)
	pricingSvc := pricingService.NewService(
		pricingRepository,
		platformSvc,
		txMgr,
		metricsCollector,
		log,
		cfg.Platform.FreeCallDuration,
	)
	chargesSvc := chargesService.NewService(
		platformSvc,
		chargesService.NewTestAccountPolicy(cfg.Platform.TestAccountID, log),
		log,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	publisher := completionService.NewPublisher(bookingRepository, notifier, metricsCollector, log)

	// Реестр открытых процессов бронирования
	registry := flowsService.NewRegistry(
		time.Duration(cfg.Booking.FlowTTLSeconds)*time.Second,
		&flowsService.RealTimeProvider{},
		log,
	)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go registry.Run(sweepCtx, time.Duration(cfg.Booking.SweepIntervalSeconds)*time.Second)
	log.Info("Booking flow registry started (ttl=%ds, sweep=%ds)",
		cfg.Booking.FlowTTLSeconds, cfg.Booking.SweepIntervalSeconds)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		bookingRepository,
		&getAvailableSlotsUC.RealTimeProvider{},
		cfg.Platform.HideBookedSlots,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		availabilitySvc,
		&getAvailableDatesUC.RealTimeProvider{},
		log,
	)
	openBookingUseCase := openBookingUC.NewUseCase(
		availabilitySvc,
		pricingSvc,
		platformSvc,
		registry,
		workflow.Dependencies{
			Pricer:    chargesSvc,
			Payments:  payments,
			Publisher: publisher,
			Observer:  metricsCollector,
			Logger:    log,
		},
		platformDefaults,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getPricing := getPricingHandler.NewHandler(pricingSvc, log)
	activateTier := activateTierHandler.NewHandler(pricingSvc, log)
	deactivateTier := deactivateTierHandler.NewHandler(pricingSvc, log)
	setAddOnInclusion := setAddOnInclusionHandler.NewHandler(pricingSvc, log)
	getPlatformSettings := getPlatformSettingsHandler.NewHandler(platformSvc, log)
	updatePlatformSettings := updatePlatformSettingsHandler.NewHandler(platformSvc, log)
	openFlow := openFlowHandler.NewHandler(openBookingUseCase, log)
	getFlow := getFlowHandler.NewHandler(registry, log)
	updateFlowSelection := updateFlowSelectionHandler.NewHandler(registry, log)
	advanceFlow := advanceFlowHandler.NewHandler(registry, log)
	retreatFlow := retreatFlowHandler.NewHandler(registry, log)
	cancelFlow := cancelFlowHandler.NewHandler(registry, log)
	closeFlow := closeFlowHandler.NewHandler(registry, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getHostBookings := getHostBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 10*time.Minute)
		api.Use(limiter.Middleware())
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-sweepCtx.Done():
					return
				case now := <-ticker.C:
					limiter.Cleanup(now)
				}
			}
		}()
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь и слоты хоста
	api.HandleFunc("/hosts/{hostId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/hosts/{hostId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// Тарифы хоста и настройки платформы
	api.HandleFunc("/hosts/{hostId}/pricing", getPricing.Handle).Methods(http.MethodGet)
	api.HandleFunc("/platform/settings", getPlatformSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Тарифы (для хоста) ---
	protected.HandleFunc("/hosts/{hostId}/pricing/tiers/{duration}", activateTier.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/hosts/{hostId}/pricing/tiers/{duration}", deactivateTier.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/hosts/{hostId}/pricing/add-ons/{addOn}", setAddOnInclusion.Handle).Methods(http.MethodPut)

	// --- Настройки платформы (для администраторов) ---
	protected.HandleFunc("/platform/settings", updatePlatformSettings.Handle).Methods(http.MethodPut)

	// --- Процесс бронирования (для клиента) ---
	protected.HandleFunc("/hosts/{hostId}/booking-flows", openFlow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flows/{flowId}", getFlow.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/booking-flows/{flowId}", closeFlow.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-flows/{flowId}/selection", updateFlowSelection.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/booking-flows/{flowId}/advance", advanceFlow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flows/{flowId}/retreat", retreatFlow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-flows/{flowId}/cancel", cancelFlow.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{reference}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/hosts/{hostId}/bookings", getHostBookings.Handle).Methods(http.MethodGet)

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

	// Реестр останавливается после сервера
	stopSweep()
	log.Info("Booking flow registry stopped (open flows=%d)", registry.Len())

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
