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

	applyBlackoutHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/apply_blackout"
	cancelRegistrationHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/cancel_registration"
	createRegistrationHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/create_registration"
	createWorkshopConfigHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/create_workshop_config"
	getBookingViewHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/get_booking_view"
	getRegistrationHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/get_registration"
	getRescheduleContextHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/get_reschedule_context"
	getUserRegistrationsHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/get_user_registrations"
	getWorkshopConfigHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/get_workshop_config"
	removeBlackoutHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/remove_blackout"
	rescheduleRegistrationHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/reschedule_registration"
	updateWorkshopConfigHandler "github.com/craftday/workshop-booking-service/internal/api/handlers/update_workshop_config"
	"github.com/craftday/workshop-booking-service/internal/api/middleware"
	"github.com/craftday/workshop-booking-service/internal/config"
	"github.com/craftday/workshop-booking-service/internal/domain"
	availabilityCache "github.com/craftday/workshop-booking-service/internal/infra/cache/availability"
	blackoutRuleRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/blackoutrule"
	registrationRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/registration"
	workshopConfigRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/workshopconfig"
	registrationsService "github.com/craftday/workshop-booking-service/internal/service/registrations"
	workshopConfigService "github.com/craftday/workshop-booking-service/internal/service/workshopconfig"
	applyBlackoutUC "github.com/craftday/workshop-booking-service/internal/usecase/apply_blackout"
	createRegistrationUC "github.com/craftday/workshop-booking-service/internal/usecase/create_registration"
	getBookingViewUC "github.com/craftday/workshop-booking-service/internal/usecase/get_booking_view"
	getRescheduleContextUC "github.com/craftday/workshop-booking-service/internal/usecase/get_reschedule_context"
	removeBlackoutUC "github.com/craftday/workshop-booking-service/internal/usecase/remove_blackout"
	rescheduleRegistrationUC "github.com/craftday/workshop-booking-service/internal/usecase/reschedule_registration"
	"github.com/craftday/workshop-booking-service/pkg/logger"
	"github.com/craftday/workshop-booking-service/pkg/metrics"
	"github.com/craftday/workshop-booking-service/pkg/txmanager"
)

// AvailabilityCache is the cache surface shared by services and use cases
type AvailabilityCache interface {
	Get(ctx context.Context, configID int64, from time.Time) ([]domain.DaySlotRecord, error)
	Set(ctx context.Context, configID int64, from time.Time, days []domain.DaySlotRecord)
	Invalidate(ctx context.Context, configID int64)
}

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

	log.Info("Starting workshop-booking-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Database
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

	// Availability cache: Redis when enabled, pass-through otherwise
	var availCache AvailabilityCache = availabilityCache.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping Redis at %s: %v", cfg.Redis.Addr, err)
		}

		availCache = availabilityCache.NewCache(
			redisClient,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	} else {
		log.Info("Availability cache disabled, recomputing on every request")
	}

	// Repositories and transaction manager
	workshopConfigRepository := workshopConfigRepo.NewRepository(db)
	registrationRepository := registrationRepo.NewRepository(db)
	blackoutRuleRepository := blackoutRuleRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Services
	registrationsSvc := registrationsService.NewService(registrationRepository, availCache, log)
	workshopConfigSvc := workshopConfigService.NewService(workshopConfigRepository, availCache, log)

	// Use cases
	getBookingViewUseCase := getBookingViewUC.NewUseCase(
		workshopConfigRepository,
		registrationRepository,
		blackoutRuleRepository,
		availCache,
		log,
	)
	createRegistrationUseCase := createRegistrationUC.NewUseCase(
		workshopConfigRepository,
		registrationRepository,
		blackoutRuleRepository,
		availCache,
		txMgr,
		log,
	)
	applyBlackoutUseCase := applyBlackoutUC.NewUseCase(
		workshopConfigRepository,
		blackoutRuleRepository,
		registrationRepository,
		availCache,
		txMgr,
		log,
	)
	removeBlackoutUseCase := removeBlackoutUC.NewUseCase(
		blackoutRuleRepository,
		availCache,
		log,
	)
	getRescheduleContextUseCase := getRescheduleContextUC.NewUseCase(
		registrationRepository,
		workshopConfigRepository,
		log,
	)
	rescheduleRegistrationUseCase := rescheduleRegistrationUC.NewUseCase(
		workshopConfigRepository,
		registrationRepository,
		blackoutRuleRepository,
		availCache,
		txMgr,
		log,
	)

	// Handlers
	getBookingView := getBookingViewHandler.NewHandler(getBookingViewUseCase, log)
	createRegistration := createRegistrationHandler.NewHandler(createRegistrationUseCase, log)
	getRegistration := getRegistrationHandler.NewHandler(registrationsSvc, log)
	getUserRegistrations := getUserRegistrationsHandler.NewHandler(registrationsSvc, log)
	cancelRegistration := cancelRegistrationHandler.NewHandler(registrationsSvc, log)
	getRescheduleContext := getRescheduleContextHandler.NewHandler(getRescheduleContextUseCase, log)
	rescheduleRegistration := rescheduleRegistrationHandler.NewHandler(rescheduleRegistrationUseCase, log)
	getWorkshopConfig := getWorkshopConfigHandler.NewHandler(workshopConfigSvc, log)
	createWorkshopConfig := createWorkshopConfigHandler.NewHandler(workshopConfigSvc, log)
	updateWorkshopConfig := updateWorkshopConfigHandler.NewHandler(workshopConfigSvc, log)
	applyBlackout := applyBlackoutHandler.NewHandler(applyBlackoutUseCase, log)
	removeBlackout := removeBlackoutHandler.NewHandler(removeBlackoutUseCase, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/workshops/{workshopId}/booking-view", getBookingView.Handle).Methods(http.MethodGet)
	api.HandleFunc("/workshops/{workshopId}/config", getWorkshopConfig.Handle).Methods(http.MethodGet)

	// Protected routes (X-User-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/registrations", createRegistration.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/registrations/{registrationId}", getRegistration.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/registrations/{registrationId}/cancel", cancelRegistration.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/registrations/{registrationId}/reschedule-context", getRescheduleContext.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/registrations/{registrationId}/reschedule", rescheduleRegistration.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/registrations", getUserRegistrations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/workshops", createWorkshopConfig.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/workshops/{workshopId}/config", updateWorkshopConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/workshops/{workshopId}/blackouts", applyBlackout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/workshops/{workshopId}/blackouts/{ruleId}", removeBlackout.Handle).Methods(http.MethodDelete)

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
