package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-tracker/internal/api/handlers"
	"github.com/mes-platform/production-tracker/internal/application"
	"github.com/mes-platform/production-tracker/internal/auth"
	"github.com/mes-platform/production-tracker/internal/events"
	mongoRepo "github.com/mes-platform/production-tracker/internal/infrastructure/mongodb"
	"github.com/mes-platform/production-tracker/internal/rendering"
	"github.com/mes-platform/production-tracker/pkg/kafka"
	"github.com/mes-platform/production-tracker/pkg/logging"
	"github.com/mes-platform/production-tracker/pkg/metrics"
	"github.com/mes-platform/production-tracker/pkg/middleware"
	"github.com/mes-platform/production-tracker/pkg/mongodb"
	"github.com/mes-platform/production-tracker/pkg/tracing"
)

const serviceName = "production-tracker"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = getEnv("LOG_LEVEL", "info")
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting production-tracker API")

	config := loadConfig()
	ctx := context.Background()

	// OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "false") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.Endpoint)
	}

	// Prometheus metrics
	m := metrics.New(serviceName)
	logger.Info("Metrics initialized")

	// MongoDB
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	breaker := mongodb.NewBreaker("mongodb", func(name string, state int) {
		m.SetCircuitBreakerState(name, state)
		if state == 2 {
			m.RecordCircuitBreakerTrip(name)
		}
	})
	deps := mongoRepo.Deps{Breaker: breaker, Metrics: m}

	// Repositories create their indexes up front. A failure here means the
	// database is not usable.
	orderRepo, err := mongoRepo.NewOrderRepository(mongoClient.Database(), deps)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize order repository")
		os.Exit(1)
	}
	barcodeRepo, err := mongoRepo.NewBarcodeRepository(mongoClient.Database(), deps)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize barcode repository")
		os.Exit(1)
	}
	recordRepo, err := mongoRepo.NewStageRecordRepository(mongoClient.Database(), deps)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize stage record repository")
		os.Exit(1)
	}
	userRepo, err := mongoRepo.NewUserRepository(mongoClient.Database(), deps)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize user repository")
		os.Exit(1)
	}
	logger.Info("Repositories initialized")

	// Kafka is optional. Without brokers the services run with a nil
	// publisher and skip event emission.
	var publisher application.EventPublisher
	if len(config.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(config.Kafka)
		kafkaPublisher := events.NewKafkaPublisher(producer, m, logger)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.WithError(err).Error("Failed to close Kafka publisher")
			}
		}()
		publisher = kafkaPublisher
		logger.Info("Kafka publisher initialized", "brokers", config.Kafka.Brokers)
	} else {
		logger.Warn("Kafka brokers not configured, event publishing disabled")
	}

	// Application services
	authService := auth.NewService(userRepo, config.JWTSecret, config.TokenTTL, logger)
	orderService := application.NewOrderService(orderRepo, barcodeRepo, publisher, logger)
	barcodeService := application.NewBarcodeService(orderRepo, barcodeRepo, rendering.NewRenderer(), publisher, logger)
	pipelineService := application.NewPipelineService(barcodeRepo, recordRepo, publisher, logger)
	reportService := application.NewReportService(orderRepo, recordRepo)

	// Gin router with standard middleware
	middleware.InitValidator()
	router := gin.New()
	middleware.Setup(router, logger)
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.TracingMiddleware(serviceName))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, middleware.DependencyCheck{
		Name: "mongodb",
		Check: func(ctx context.Context) error {
			return mongoClient.HealthCheck(ctx)
		},
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", handlers.Register(authService))
		v1.POST("/auth/login", handlers.Login(authService, m))

		v1.GET("/orders", handlers.ListOrders(orderService))
		v1.GET("/orders/:orderNumber", handlers.GetOrder(orderService))
		v1.GET("/orders/:orderNumber/report", handlers.GetOrderReport(reportService))
		v1.GET("/orders/:orderNumber/barcodes", handlers.ListBarcodes(barcodeService))
		v1.GET("/barcodes/:barcode", handlers.GetUnit(pipelineService))
		v1.GET("/barcodes/:barcode/image", handlers.GetBarcodeImage(barcodeService))
		v1.GET("/barcodes/:barcode/order", handlers.GetOrderByBarcode(orderService))

		secured := v1.Group("")
		secured.Use(auth.RequireAuth(authService))
		{
			secured.POST("/orders", handlers.SubmitOrder(orderService, m))
			secured.POST("/orders/:orderNumber/barcodes", handlers.GenerateLabels(barcodeService, m))
			secured.POST("/units/:barcode/advance", handlers.AdvanceUnit(pipelineService, m))
		}
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration.
type Config struct {
	ServerAddr string
	JWTSecret  string
	TokenTTL   time.Duration
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "production_tracker")

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = splitAndTrim(os.Getenv("KAFKA_BROKERS"))

	tokenTTL := time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			tokenTTL = parsed
		}
	}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-only-secret"),
		TokenTTL:   tokenTTL,
		MongoDB:    mongoConfig,
		Kafka:      kafkaConfig,
	}
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
