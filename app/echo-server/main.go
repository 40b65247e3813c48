package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpmetrics "ozeanLicht/app/echo-server/metrics"
	"ozeanLicht/app/echo-server/router"
	"ozeanLicht/business/catalog"
	"ozeanLicht/business/orders"
	"ozeanLicht/business/transactions"
	userService "ozeanLicht/business/user"
	"ozeanLicht/internal/middleware"
	"ozeanLicht/internal/repository/notification"
	psqlRepo "ozeanLicht/internal/repository/postgres"
	redisRepo "ozeanLicht/internal/repository/redis"
	"ozeanLicht/internal/rest"
	"ozeanLicht/pkg/config"
	"ozeanLicht/pkg/database"
	redisdb "ozeanLicht/pkg/database/redis"
	"ozeanLicht/pkg/logger"
	"ozeanLicht/pkg/metrics"
	"ozeanLicht/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version, "env", cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	metrics.Init()
	httpmetrics.Init()

	validate := validator.New()
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	transactionsRepo := psqlRepo.NewTransactionsRepository(db)
	courseRepo := psqlRepo.NewCourseRepository(db)
	courseMappingRepo := psqlRepo.NewCourseMappingRepository(db)
	blogRepo := psqlRepo.NewBlogRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	ordersService := orders.NewOrdersService(ordersRepo, transactionsRepo, courseMappingRepo, courseRepo, userRepo, validate)
	transactionsService := transactions.NewTransactionsService(transactionsRepo, userRepo, ordersService, validate)
	userService := userService.NewUserService(
		userRepo,
		tokenRepo,
		mailjetEmail,
		ordersService,
		jwtManager,
		validate,
		cfg.App.AppEmailVerificationKey,
		cfg.App.AppDeploymentUrl,
	)
	catalogService := catalog.NewCatalogService(courseRepo, blogRepo)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	ordersHandler := rest.NewOrdersHandler(ordersService, userService)
	transactionsHandler := rest.NewTransactionsHandler(transactionsService)
	catalogHandler := rest.NewCatalogHandler(catalogService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddleware(jwtManager, userService)
	authRateLimit := middleware.AuthRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	webhookAuth := middleware.WebhookToken(cfg.Webhook.Token)

	// Setup routes
	api := e.Group("/api")
	router.SetupAuthRoutes(api, userHandler, authRequired, authRateLimit)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired, middleware.AdminOnly())
	router.SetupTransactionsRoutes(api, transactionsHandler, authRequired, webhookAuth)
	router.SetupCatalogRoutes(api, catalogHandler)
	router.SetupOpsRoutes(e, map[string]router.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if err := database.Close(db); err != nil {
		logger.Error("Database close error", "error", err)
	}

	logger.Info("Server stopped")
}
