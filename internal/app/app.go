package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"jobboard-service/internal/application"
	"jobboard-service/internal/approval"
	"jobboard-service/internal/auth"
	"jobboard-service/internal/company"
	"jobboard-service/internal/config"
	"jobboard-service/internal/db"
	"jobboard-service/internal/events"
	"jobboard-service/internal/health"
	"jobboard-service/internal/job"
	"jobboard-service/internal/logger"
	"jobboard-service/internal/metrics"
	"jobboard-service/internal/middleware"
	"jobboard-service/internal/school"
	"jobboard-service/internal/telemetry"
	"jobboard-service/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type App struct {
	config        *config.Config
	router        *gin.Engine
	server        *http.Server
	logger        *slog.Logger
	meterProvider *sdkmetric.MeterProvider
	producer      *events.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	if cfg.Env == "prod" || cfg.Env == "k8s" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		config: cfg,
		router: gin.New(),
		logger: slogLogger,
	}

	database := db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database,
		(*school.School)(nil),
		(*company.Company)(nil),
		(*user.User)(nil),
		(*job.Job)(nil),
		(*approval.JobApproval)(nil),
		(*application.JobApplication)(nil),
	); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	// Metrics are optional: without a collector the service runs with
	// no-op counters.
	var m *metrics.Metrics
	if cfg.Telemetry.Enabled {
		meterProvider, err := telemetry.InitMeterProvider(ctx, ServiceName, Version, cfg.Telemetry.OTLPEndpoint, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize OTel metrics", "error", err)
		} else {
			app.meterProvider = meterProvider
		}
	}
	if app.meterProvider != nil {
		m, err = metrics.New(otel.Meter(ServiceName))
		if err != nil {
			slogLogger.Warn("failed to create metrics", "error", err)
			m = metrics.NewMock()
		}
	} else {
		m = metrics.NewMock()
	}

	// NATS producer setup, also optional
	producer, err := events.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
	if err != nil {
		slogLogger.Warn("failed to initialize NATS producer", "error", err)
		producer = nil
	} else {
		slogLogger.Info("NATS producer initialized successfully")
	}
	app.producer = producer

	app.router.Use(gin.Recovery())
	app.router.Use(middleware.RequestLogging(slogLogger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	app.router.Use(cors.New(corsConfig))

	// Health endpoints (no auth required)
	health.NewHandler().RegisterRoutes(app.router)

	// Repositories
	schoolRepo := school.NewRepository(database)
	companyRepo := company.NewRepository(database)
	userRepo := user.NewRepository(database)
	authRepo := auth.NewRepository(database)
	jobRepo := job.NewRepository(database)
	approvalRepo := approval.NewRepository(database)
	applicationRepo := application.NewRepository(database)

	// Services and handlers
	tokens := auth.NewTokenProvider(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiryMin)

	authService := auth.NewService(authRepo, userRepo, schoolRepo, companyRepo, tokens)
	authHandler := auth.NewHandler(authService, slogLogger, m)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, slogLogger)

	jobService := job.NewService(jobRepo, producer)
	jobHandler := job.NewHandler(jobService, slogLogger, m)

	approvalService := approval.NewService(approvalRepo, jobRepo, producer)
	approvalHandler := approval.NewHandler(approvalService, slogLogger, m)

	applicationService := application.NewService(applicationRepo, jobRepo, producer,
		cfg.Policy.RequireApprovedForApplications)
	applicationHandler := application.NewHandler(applicationService, slogLogger, m)

	schoolHandler := school.NewHandler(schoolRepo, slogLogger)

	required := auth.Required(tokens, userRepo, slogLogger)
	optional := auth.Optional(tokens, userRepo, slogLogger)

	api := app.router.Group("/api")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/signin", authHandler.Signin)
		api.GET("/auth/me", required, authHandler.Me)

		api.POST("/users", required, userHandler.CreateUser)
		api.GET("/users", required, userHandler.GetUsers)

		schoolHandler.RegisterRoutes(api)

		api.POST("/jobs", required, jobHandler.CreateJob)
		api.GET("/jobs", optional, jobHandler.ListJobs)
		api.GET("/jobs/:id", optional, jobHandler.GetJob)
		api.PUT("/jobs/:id", required, jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", required, jobHandler.DeleteJob)

		api.POST("/jobs/:id/approve", required, approvalHandler.ApproveJob)
		api.GET("/jobs/:id/approvals", required, approvalHandler.GetJobApprovals)
		api.GET("/approved-jobs", required, approvalHandler.GetSchoolApprovedJobs)

		api.POST("/jobs/:id/apply", required, applicationHandler.ApplyForJob)
		api.GET("/applications", required, applicationHandler.GetStudentApplications)
		api.GET("/jobs/:id/applications", required, applicationHandler.GetJobApplications)
		api.GET("/jobs/:id/applicants", required, applicationHandler.GetJobApplicants)
	}

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.producer != nil {
		a.producer.Close()
	}
	if err := telemetry.Shutdown(ctx, a.meterProvider, a.logger); err != nil {
		a.logger.Warn("failed to shut down telemetry", "error", err)
	}

	return a.server.Shutdown(ctx)
}
