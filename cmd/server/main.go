package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/internal/adapter"
	"github.com/courthub/service-booking/internal/application"
	"github.com/courthub/service-booking/internal/config"
	bookingEvents "github.com/courthub/service-booking/internal/events"
	"github.com/courthub/service-booking/internal/handler"
	"github.com/courthub/service-booking/internal/repository"
	"github.com/courthub/service-booking/internal/saga"
	"github.com/courthub/service-booking/pkg/auth"
	"github.com/courthub/service-booking/pkg/database"
	"github.com/courthub/service-booking/pkg/health"
	"github.com/courthub/service-booking/pkg/kafka"
	"github.com/courthub/service-booking/pkg/logger"
	"github.com/courthub/service-booking/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-booking",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}

	db, err := database.Connect(dbConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.CourtModel{},
			&repository.BookingModel{},
			&repository.CouponModel{},
			&repository.PaymentModel{},
			&repository.MemberModel{},
			&repository.AnnouncementModel{},
			&repository.ReviewModel{},
		); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer kafkaProducer.Close()

	// Initialize payment gateway (mock outside production)
	var gateway adapter.PaymentGateway
	if cfg.AppEnv == "production" {
		gateway = adapter.NewStripeGateway(cfg.StripeConfig.SecretKey, zapLogger)
	} else {
		gateway = adapter.NewMockGateway(zapLogger)
	}

	// Initialize repositories
	courtRepo := repository.NewGormCourtRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	couponRepo := repository.NewGormCouponRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)
	memberRepo := repository.NewGormMemberRepository(db)
	announcementRepo := repository.NewGormAnnouncementRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)

	// Initialize the reconciliation saga
	reconciler := saga.NewReconciler(bookingRepo, courtRepo, couponRepo, paymentRepo, kafkaProducer, zapLogger)

	// Initialize application services
	courtService := application.NewCourtService(courtRepo, zapLogger)
	bookingService := application.NewBookingService(bookingRepo, courtRepo, memberRepo, kafkaProducer, zapLogger)
	couponService := application.NewCouponService(couponRepo, zapLogger)
	paymentService := application.NewPaymentService(
		bookingRepo, couponRepo, paymentRepo,
		gateway, reconciler, kafkaProducer,
		cfg.Currency, zapLogger,
	)
	memberService := application.NewMemberService(memberRepo, zapLogger)
	announcementService := application.NewAnnouncementService(announcementRepo, zapLogger)
	reviewService := application.NewReviewService(reviewRepo, zapLogger)

	// Initialize Kafka consumer for gateway charge events
	consumerGroupID := cfg.KafkaConfig.GroupPrefix + "booking-service"
	gatewayConsumer := bookingEvents.NewGatewayEventConsumer(
		cfg.KafkaConfig.Brokers,
		consumerGroupID,
		paymentService,
		zapLogger,
	)
	defer gatewayConsumer.Close()

	// Start Kafka consumer in a goroutine
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	go func() {
		if err := gatewayConsumer.Start(consumerCtx); err != nil {
			if consumerCtx.Err() == nil {
				zapLogger.Error("gateway event consumer failed", zap.Error(err))
			}
		}
	}()

	// Initialize HTTP handlers
	courtHandler := handler.NewCourtHandler(courtService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	couponHandler := handler.NewCouponHandler(couponService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	adminHandler := handler.NewAdminHandler(bookingService, paymentService, memberService, announcementService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-booking")
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	courtHandler.RegisterRoutes(apiV1, jwtManager)
	bookingHandler.RegisterRoutes(apiV1, jwtManager)
	couponHandler.RegisterRoutes(apiV1, jwtManager)
	paymentHandler.RegisterRoutes(apiV1, jwtManager)
	adminHandler.RegisterRoutes(apiV1, jwtManager)
	reviewHandler.RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-booking...")

	// Cancel Kafka consumer
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("service-booking stopped")
}
