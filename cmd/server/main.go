package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/maryrl/loja-fullstack/internal/auth"
	"github.com/maryrl/loja-fullstack/internal/cache"
	"github.com/maryrl/loja-fullstack/internal/config"
	"github.com/maryrl/loja-fullstack/internal/controllers"
	"github.com/maryrl/loja-fullstack/internal/database"
	applogger "github.com/maryrl/loja-fullstack/internal/logger"
	"github.com/maryrl/loja-fullstack/internal/middleware"
	"github.com/maryrl/loja-fullstack/internal/notifications"
	"github.com/maryrl/loja-fullstack/internal/payments"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"github.com/maryrl/loja-fullstack/internal/routes"
	"github.com/maryrl/loja-fullstack/internal/services"
	awspkg "github.com/maryrl/loja-fullstack/pkg/aws"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "storefront-api"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config load failed:", err)
		os.Exit(1)
	}

	logger, err := applogger.New(cfg.Environment, nil)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	var awsCfg sdkaws.Config
	if cfg.UsesAWS() {
		awsCfg, err = awspkg.LoadAWSConfig(ctx)
		if err != nil {
			logger.Fatal("AWS config load failed", zap.Error(err))
		}
	}

	// CloudWatch Logs (non-fatal)
	if cfg.CloudWatchEnabled {
		writer, err := awspkg.NewCloudWatchLogsWriter(ctx, awsCfg, cfg.CloudWatchLogGroup, serviceName)
		if err != nil {
			logger.Warn("CloudWatch Logs writer init failed (non-fatal)", zap.Error(err))
		} else if teed, err := applogger.New(cfg.Environment, writer); err == nil {
			logger = teed
		}
	}
	defer logger.Sync()

	if cfg.UseAWSSecrets {
		cfg.ApplySecrets(ctx, awspkg.NewSecretsClient(awsCfg, 5*time.Minute), logger)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Database
	mongoDB, err := database.Connect(ctx, cfg.MongoURL, cfg.DBName, logger)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	if err := mongoDB.EnsureIndexes(ctx); err != nil {
		logger.Fatal("index creation failed", zap.Error(err))
	}

	redisClient := connectRedis(ctx, cfg.RedisURL, logger)

	var metricsClient *awspkg.MetricsClient
	if cfg.CloudWatchEnabled {
		metricsClient = awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, true)
	}

	emailSender, err := newEmailSender(cfg, awsCfg, logger)
	if err != nil {
		logger.Fatal("failed to init email sender", zap.Error(err))
	}

	// Dependency injection
	userRepo := repository.NewUserRepository(mongoDB.DB)
	productRepo := repository.NewProductRepository(mongoDB.DB)
	cartRepo := repository.NewCartRepository(mongoDB.DB)
	txRepo := repository.NewTransactionRepository(mongoDB.DB)
	orderRepo := repository.NewOrderRepository(mongoDB.DB)
	notificationRepo := repository.NewNotificationRepository(mongoDB.DB)

	gateway := payments.NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	catalogCache := cache.NewCatalogCache(redisClient, cfg.CacheTTL, logger)

	var images services.IImagePresigner
	if cfg.S3Bucket != "" {
		images = awspkg.NewImagePresigner(awsCfg, cfg.S3Bucket, cfg.S3Prefix, cfg.CloudFrontDomain)
	}
	var publisher services.IEventPublisher
	if cfg.OrderEventsTopicARN != "" {
		publisher = awspkg.NewEventPublisher(awsCfg, cfg.OrderEventsTopicARN)
	}

	authService := services.NewAuthService(userRepo, tokenService, cfg.AdminEmail, logger)
	catalogService := services.NewCatalogService(productRepo, catalogCache, images, logger)
	cartService := services.NewCartService(cartRepo, logger)
	checkoutService := services.NewCheckoutService(productRepo, txRepo, gateway, cfg.CheckoutCurrency, metricsClient, logger)
	notificationService := services.NewNotificationService(notificationRepo, cfg.SenderName, cfg.OutboxMaxAttempts, logger)
	reconciler := services.NewReconciler(txRepo, orderRepo, productRepo, catalogCache, gateway, notificationService, publisher, metricsClient, logger)
	adminService := services.NewAdminService(productRepo, orderRepo, logger)

	outboxWorker := services.NewOutboxWorker(notificationRepo, emailSender, metricsClient, services.OutboxConfig{
		PollInterval: cfg.OutboxPollInterval,
		BaseBackoff:  cfg.OutboxBaseBackoff,
		BatchSize:    cfg.OutboxBatchSize,
	}, logger)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, 5*time.Minute)
	defer rateLimiter.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.MetricsMiddleware(metricsClient, serviceName))
	r.Use(middleware.SecurityHeaders())
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(rateLimiter.Middleware())
	r.Use(middleware.RequestTimeout(30 * time.Second))

	routes.RegisterRoutes(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authService, logger),
		Product: controllers.NewProductController(catalogService, logger),
		Cart:    controllers.NewCartController(cartService, logger),
		Payment: controllers.NewPaymentController(checkoutService, reconciler, logger),
		Webhook: controllers.NewWebhookController(gateway, reconciler, logger),
		Admin:   controllers.NewAdminController(adminService, logger),
		Health:  controllers.NewHealthController(mongoDB, logger),
	}, authService, logger)

	// Outbox worker
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workerWG sync.WaitGroup
	workerWG.Add(1)
	go func() {
		defer workerWG.Done()
		outboxWorker.Run(workerCtx)
	}()

	// HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Storefront API started", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	workerCancel()
	workerWG.Wait()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}
	if err := mongoDB.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	logger.Info("Storefront API stopped gracefully")
}

// connectRedis returns nil when no URL is configured or the server is
// unreachable; the catalog then runs uncached.
func connectRedis(ctx context.Context, url string, logger *zap.Logger) *redis.Client {
	if url == "" {
		logger.Info("REDIS_URL not set, catalog cache disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid REDIS_URL, catalog cache disabled", zap.Error(err))
		return nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, catalog cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	logger.Info("Connected to Redis")
	return client
}

func newEmailSender(cfg *config.Config, awsCfg sdkaws.Config, logger *zap.Logger) (notifications.EmailSender, error) {
	switch cfg.EmailProvider {
	case "sendgrid":
		return notifications.NewSendGridSender(cfg.SendGridAPIKey, cfg.SenderEmail, cfg.SenderName), nil
	case "smtp":
		return notifications.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SenderEmail, cfg.SenderName), nil
	case "sqs":
		return notifications.NewQueueSender(awspkg.NewQueue(awsCfg, cfg.EmailQueueURL), cfg.SenderEmail, cfg.SenderName), nil
	case "log":
		return notifications.NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return cors.New(c)
}
