package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tomiwa/invoicepay/internal/pkg/config"
	"github.com/tomiwa/invoicepay/internal/pkg/database"
	"github.com/tomiwa/invoicepay/internal/pkg/health"
	"github.com/tomiwa/invoicepay/internal/pkg/logger"
	"github.com/tomiwa/invoicepay/internal/pkg/middleware"
	natspkg "github.com/tomiwa/invoicepay/internal/pkg/nats"
	nrpkg "github.com/tomiwa/invoicepay/internal/pkg/newrelic"
	"github.com/tomiwa/invoicepay/internal/pkg/server"
	"github.com/tomiwa/invoicepay/services/payment/gateway/nats"
	"github.com/tomiwa/invoicepay/services/payment/gateway/paystack"
	"github.com/tomiwa/invoicepay/services/payment/handler"
	"github.com/tomiwa/invoicepay/services/payment/repository"
	"github.com/tomiwa/invoicepay/services/payment/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "payment-service"
	configPath := config.GetEnv("CONFIG_PATH", "config/payment.env")
	configs := config.InitConfig(configPath)

	// Initialize New Relic and the Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsClient.Close()

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(postgresClient.GetDB())
	paymentRepo := repository.NewPaymentRepository(postgresClient.GetDB())
	dedupCache := repository.NewDedupCache(redisClient)

	// Initialize gateways
	paystackGW := paystack.NewGateway(configs.Paystack, zapLogger)
	eventsGW := nats.NewEventsGateway(natsClient)

	// Initialize use case and handler
	paymentUC := usecase.NewPaymentUC(configs, invoiceRepo, paymentRepo, dedupCache, paystackGW, eventsGW)
	paymentHandler := handler.NewPaymentHandler(paymentUC, configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName)
	paymentHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}
