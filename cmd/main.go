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

	cancelBookingHandler "github.com/pantrydesk/booking-service/internal/api/handlers/cancel_booking"
	cancelByTokenHandler "github.com/pantrydesk/booking-service/internal/api/handlers/cancel_by_token"
	createBookingHandler "github.com/pantrydesk/booking-service/internal/api/handlers/create_booking"
	createStaffBookingHandler "github.com/pantrydesk/booking-service/internal/api/handlers/create_staff_booking"
	getAvailabilityHandler "github.com/pantrydesk/booking-service/internal/api/handlers/get_availability"
	getBookingHandler "github.com/pantrydesk/booking-service/internal/api/handlers/get_booking"
	getSlotBookingsHandler "github.com/pantrydesk/booking-service/internal/api/handlers/get_slot_bookings"
	getUserBookingsHandler "github.com/pantrydesk/booking-service/internal/api/handlers/get_user_bookings"
	listSlotsHandler "github.com/pantrydesk/booking-service/internal/api/handlers/list_slots"
	registerPushTokenHandler "github.com/pantrydesk/booking-service/internal/api/handlers/register_push_token"
	rescheduleBookingHandler "github.com/pantrydesk/booking-service/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/pantrydesk/booking-service/internal/api/handlers/update_booking_status"
	updateSlotHandler "github.com/pantrydesk/booking-service/internal/api/handlers/update_slot"
	"github.com/pantrydesk/booking-service/internal/api/middleware"
	"github.com/pantrydesk/booking-service/internal/config"
	bookingRepo "github.com/pantrydesk/booking-service/internal/infra/storage/booking"
	slotRepo "github.com/pantrydesk/booking-service/internal/infra/storage/slot"
	"github.com/pantrydesk/booking-service/internal/integrations/notify"
	profileServiceClient "github.com/pantrydesk/booking-service/internal/integrations/profileservice"
	bookingsService "github.com/pantrydesk/booking-service/internal/service/bookings"
	slotsService "github.com/pantrydesk/booking-service/internal/service/slots"
	admitBookingUC "github.com/pantrydesk/booking-service/internal/usecase/admit_booking"
	getAvailabilityUC "github.com/pantrydesk/booking-service/internal/usecase/get_availability"
	rescheduleBookingUC "github.com/pantrydesk/booking-service/internal/usecase/reschedule_booking"
	"github.com/pantrydesk/booking-service/pkg/dbmetrics"
	"github.com/pantrydesk/booking-service/pkg/logger"
	"github.com/pantrydesk/booking-service/pkg/metrics"
	"github.com/pantrydesk/booking-service/pkg/simpletxmanager"
	"github.com/pantrydesk/booking-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting booking service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Notifications are best-effort; the service still takes bookings.
		log.Warn("Redis unreachable at %s, notifications will be dropped: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)
	}
	cancelPing()

	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	notifier := notify.NewPublisher(rdb, log)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	var (
		bookingRepository *bookingRepo.Repository
		slotRepository    *slotRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		notifier,
		log,
	)
	slotSvc := slotsService.New(slotRepository, log)

	admitBookingUseCase := admitBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		profileClient,
		notifier,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		notifier,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		bookingRepository,
		slotRepository,
		log,
	)

	createBooking := createBookingHandler.NewHandler(admitBookingUseCase, log)
	createStaffBooking := createStaffBookingHandler.NewHandler(admitBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	cancelByToken := cancelByTokenHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSlotBookings := getSlotBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	registerPushToken := registerPushTokenHandler.NewHandler(notifier, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes. The reschedule and cancel links are authorized by
	// their single-use token.
	api.HandleFunc("/slots", listSlots.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/slots/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/reschedule/{token}", rescheduleBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/cancel/{token}", cancelByToken.Handle).Methods(http.MethodPost)

	// Routes requiring a user or staff identity.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId:[0-9]+}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId:[0-9]+}/push-tokens", registerPushToken.Handle).Methods(http.MethodPost)

	// Staff-only routes.
	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.StaffAuth)

	staff.HandleFunc("/bookings/staff", createStaffBooking.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/slots/{slotId:[0-9]+}", listSlots.HandleGet).Methods(http.MethodGet)
	staff.HandleFunc("/slots/{slotId:[0-9]+}", updateSlot.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/slots/{slotId:[0-9]+}/bookings", getSlotBookings.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
