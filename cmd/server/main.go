package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/jobsight/backend/internal/application/billing"
	crewapp "github.com/jobsight/backend/internal/application/crew"
	directoryapp "github.com/jobsight/backend/internal/application/directory"
	equipmentapp "github.com/jobsight/backend/internal/application/equipment"
	fieldlogapp "github.com/jobsight/backend/internal/application/fieldlog"
	identityapp "github.com/jobsight/backend/internal/application/identity"
	mediaapp "github.com/jobsight/backend/internal/application/media"
	notificationapp "github.com/jobsight/backend/internal/application/notification"
	projectapp "github.com/jobsight/backend/internal/application/project"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/auth"
	infrabilling "github.com/jobsight/backend/internal/infrastructure/billing"
	"github.com/jobsight/backend/internal/infrastructure/cache"
	"github.com/jobsight/backend/internal/infrastructure/config"
	"github.com/jobsight/backend/internal/infrastructure/logger"
	infranotification "github.com/jobsight/backend/internal/infrastructure/notification"
	"github.com/jobsight/backend/internal/infrastructure/persistence"
	"github.com/jobsight/backend/internal/interfaces/http/handler"
	"github.com/jobsight/backend/internal/interfaces/http/middleware"
	"github.com/jobsight/backend/internal/interfaces/http/router"
)

// trialDays is the free trial granted to every new business
const trialDays = 14

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting JobSight backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Webhook deduplication. Redis survives restarts; the in-memory
	// fallback keeps development working without one.
	var idempotencyStore shared.IdempotencyStore
	if redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory webhook deduplication", zap.Error(err))
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotencyStore = redisStore
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	stripeAdapter, err := infrabilling.NewStripeAdapter(cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to configure Stripe", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	businessRepo := persistence.NewGormBusinessRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	contactRepo := persistence.NewGormClientContactRepository(db.DB)
	interactionRepo := persistence.NewGormClientInteractionRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	milestoneRepo := persistence.NewGormMilestoneRepository(db.DB)
	issueRepo := persistence.NewGormIssueRepository(db.DB)
	crewRepo := persistence.NewGormCrewRepository(db.DB)
	crewMemberRepo := persistence.NewGormCrewMemberRepository(db.DB)
	projectCrewRepo := persistence.NewGormProjectCrewRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)
	specificationRepo := persistence.NewGormSpecificationRepository(db.DB)
	dailyLogRepo := persistence.NewGormDailyLogRepository(db.DB)
	equipmentUsageRepo := persistence.NewGormEquipmentUsageRepository(db.DB)
	materialUsageRepo := persistence.NewGormMaterialUsageRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	mediaItemRepo := persistence.NewGormMediaItemRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	invoiceItemRepo := persistence.NewGormInvoiceItemRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	preferenceRepo := persistence.NewGormPreferenceRepository(db.DB)
	pushSubRepo := persistence.NewGormPushSubscriptionRepository(db.DB)

	// Delivery channels. Either may be left unconfigured; the dispatcher
	// still records in-app notifications.
	var emailSender notificationapp.EmailSender
	if cfg.SMTP.Host != "" {
		emailSender = infranotification.NewEmailSender(cfg.SMTP, log)
	} else {
		log.Warn("SMTP not configured, email notifications disabled")
	}
	var pushSender notificationapp.PushSender
	if cfg.Push.Enabled {
		pushSender = infranotification.NewPushSender(cfg.Push, log)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	businessService := identityapp.NewBusinessService(businessRepo, trialDays, log)

	dispatcher := notificationapp.NewDispatcherService(
		notificationRepo, preferenceRepo, pushSubRepo,
		userRepo, businessRepo,
		emailSender, pushSender, log,
	)
	notificationService := notificationapp.NewNotificationService(notificationRepo)
	preferenceService := notificationapp.NewPreferenceService(preferenceRepo, pushSubRepo)

	clientService := directoryapp.NewClientService(clientRepo)
	contactService := directoryapp.NewContactService(clientRepo, contactRepo, interactionRepo)

	projectService := projectapp.NewProjectService(projectRepo, clientRepo)
	milestoneService := projectapp.NewMilestoneService(projectRepo, milestoneRepo)
	issueService := projectapp.NewIssueService(projectRepo, issueRepo, dispatcher)

	crewService := crewapp.NewCrewService(crewRepo, crewMemberRepo, projectCrewRepo, projectRepo)

	equipmentService := equipmentapp.NewEquipmentService(equipmentRepo, specificationRepo)
	assignmentService := equipmentapp.NewAssignmentService(equipmentRepo, assignmentRepo, maintenanceRepo, crewRepo, projectRepo)

	dailyLogService := fieldlogapp.NewDailyLogService(
		dailyLogRepo, equipmentUsageRepo, materialUsageRepo,
		projectRepo, equipmentRepo,
	)

	documentService := mediaapp.NewDocumentService(documentRepo, projectRepo, clientRepo)
	mediaItemService := mediaapp.NewMediaItemService(mediaItemRepo, projectRepo, dailyLogRepo)

	invoiceService := billingapp.NewInvoiceService(
		invoiceRepo, invoiceItemRepo, clientRepo, projectRepo, dispatcher,
	)
	subscriptionService := billingapp.NewSubscriptionService(
		businessRepo, subscriptionRepo, stripeAdapter, trialDays, log,
	)
	webhookService := billingapp.NewWebhookService(
		stripeAdapter, idempotencyStore, subscriptionRepo, businessRepo, log,
	)

	// HTTP handlers
	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Business:      handler.NewBusinessHandler(businessService),
		Client:        handler.NewClientHandler(clientService, contactService),
		Project:       handler.NewProjectHandler(projectService),
		Milestone:     handler.NewMilestoneHandler(milestoneService),
		Issue:         handler.NewIssueHandler(issueService),
		Crew:          handler.NewCrewHandler(crewService),
		Equipment:     handler.NewEquipmentHandler(equipmentService, assignmentService),
		DailyLog:      handler.NewDailyLogHandler(dailyLogService),
		Media:         handler.NewMediaHandler(documentService, mediaItemService),
		Invoice:       handler.NewInvoiceHandler(invoiceService),
		Subscription:  handler.NewSubscriptionHandler(subscriptionService),
		StripeWebhook: handler.NewStripeWebhookHandler(webhookService),
		Notification:  handler.NewNotificationHandler(notificationService, preferenceService),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	r := router.New(engine, jwtService, businessService, handlers, log)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().UTC().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
