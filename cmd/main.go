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

	"github.com/m04kA/SMC-ShareIt/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/create_booking"
	createCommentHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/create_comment"
	createItemHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/create_item"
	createRequestHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/create_request"
	createUserHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/create_user"
	decideBookingHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/decide_booking"
	deleteUserHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/delete_user"
	getAllRequestsHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_all_requests"
	getBookerBookingsHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_booker_bookings"
	getBookingHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_booking"
	getItemHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_item"
	getOwnRequestsHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_own_requests"
	getOwnerBookingsHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_owner_bookings"
	getOwnerItemsHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_owner_items"
	getRequestHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_request"
	getUserHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_user"
	getUsersHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/get_users"
	searchItemsHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/search_items"
	updateItemHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/update_item"
	updateUserHandler "github.com/m04kA/SMC-ShareIt/internal/api/handlers/update_user"
	"github.com/m04kA/SMC-ShareIt/internal/api/middleware"
	"github.com/m04kA/SMC-ShareIt/internal/config"
	bookingRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/booking"
	commentRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/comment"
	itemRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/item"
	requestRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/request"
	userRepo "github.com/m04kA/SMC-ShareIt/internal/infra/storage/user"
	"github.com/m04kA/SMC-ShareIt/internal/jobs"
	bookingsService "github.com/m04kA/SMC-ShareIt/internal/service/bookings"
	itemsService "github.com/m04kA/SMC-ShareIt/internal/service/items"
	requestsService "github.com/m04kA/SMC-ShareIt/internal/service/requests"
	usersService "github.com/m04kA/SMC-ShareIt/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-ShareIt/internal/usecase/create_booking"
	createCommentUC "github.com/m04kA/SMC-ShareIt/internal/usecase/create_comment"
	"github.com/m04kA/SMC-ShareIt/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShareIt/pkg/logger"
	"github.com/m04kA/SMC-ShareIt/pkg/metrics"
	"github.com/m04kA/SMC-ShareIt/pkg/txmanager"
)

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

	log.Info("Starting SMC-ShareIt...")
	log.Info("Configuration loaded from %s (auth mode=%s)", configPath, cfg.Auth.Mode)

	// Метрики (если включены); nil отключает сбор в dbmetrics
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Репозитории
	userRepository := userRepo.NewRepository(wrappedDB)
	itemRepository := itemRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	commentRepository := commentRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сервисы
	userSvc := usersService.NewService(userRepository, log)
	itemSvc := itemsService.NewService(itemRepository, userRepository, requestRepository, bookingRepository, commentRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, userRepository, txMgr, log)
	requestSvc := requestsService.NewService(requestRepository, userRepository, itemRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, itemRepository, userRepository, txMgr, log)
	createCommentUseCase := createCommentUC.NewUseCase(commentRepository, itemRepository, userRepository, bookingRepository, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	decideBooking := decideBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookerBookings := getBookerBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)

	createItem := createItemHandler.NewHandler(itemSvc, log)
	updateItem := updateItemHandler.NewHandler(itemSvc, log)
	getItem := getItemHandler.NewHandler(itemSvc, log)
	getOwnerItems := getOwnerItemsHandler.NewHandler(itemSvc, log)
	searchItems := searchItemsHandler.NewHandler(itemSvc, log)
	createComment := createCommentHandler.NewHandler(createCommentUseCase, log)

	createUser := createUserHandler.NewHandler(userSvc, log)
	updateUser := updateUserHandler.NewHandler(userSvc, log)
	getUser := getUserHandler.NewHandler(userSvc, log)
	getUsers := getUsersHandler.NewHandler(userSvc, log)
	deleteUser := deleteUserHandler.NewHandler(userSvc, log)

	createRequest := createRequestHandler.NewHandler(requestSvc, log)
	getOwnRequests := getOwnRequestsHandler.NewHandler(requestSvc, log)
	getAllRequests := getAllRequestsHandler.NewHandler(requestSvc, log)
	getRequest := getRequestHandler.NewHandler(requestSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover(log), middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Error("GET /healthz - Database unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES (пользователи, без идентификации)
	// ============================================================

	r.HandleFunc("/users", createUser.Handle).Methods(http.MethodPost)
	r.HandleFunc("/users", getUsers.Handle).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId:[0-9]+}", getUser.Handle).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId:[0-9]+}", updateUser.Handle).Methods(http.MethodPatch)
	r.HandleFunc("/users/{userId:[0-9]+}", deleteUser.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (X-Sharer-User-Id или Bearer-токен)
	// ============================================================

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getBookerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/owner", getOwnerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", decideBooking.Handle).Methods(http.MethodPatch)

	// --- Вещи ---
	protected.HandleFunc("/items", createItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/items", getOwnerItems.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/items/search", searchItems.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/items/{itemId:[0-9]+}", getItem.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/items/{itemId:[0-9]+}", updateItem.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/items/{itemId:[0-9]+}/comment", createComment.Handle).Methods(http.MethodPost)

	// --- Запросы вещей ---
	protected.HandleFunc("/requests", createRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/requests", getOwnRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/requests/all", getAllRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/requests/{requestId:[0-9]+}", getRequest.Handle).Methods(http.MethodGet)

	// Фоновые задачи
	scheduler := jobs.NewScheduler(log)
	if cfg.Metrics.Enabled && cfg.Jobs.BookingStatsEnabled {
		bookingStats := jobs.NewBookingStats(bookingRepository, metricsCollector.BookingsByStatus, log)
		if err := scheduler.Register("booking_stats", cfg.Jobs.BookingStatsSchedule, bookingStats.Run); err != nil {
			log.Fatal("Failed to register job: %v", err)
		}
	}
	scheduler.Start()

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	scheduler.Stop()
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
