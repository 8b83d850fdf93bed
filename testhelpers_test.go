//go:build integration

package main_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/courthub/service-booking/internal/adapter"
	"github.com/courthub/service-booking/internal/application"
	bookingEvents "github.com/courthub/service-booking/internal/events"
	"github.com/courthub/service-booking/internal/repository"
	"github.com/courthub/service-booking/internal/saga"
	"github.com/courthub/service-booking/pkg/kafka"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// bookingStack holds the wired-up payment flow components.
type bookingStack struct {
	PaymentService  *application.PaymentService
	Gateway         *adapter.MockGateway
	Consumer        *bookingEvents.GatewayEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_booking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_booking sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.CourtModel{},
		&repository.BookingModel{},
		&repository.CouponModel{},
		&repository.PaymentModel{},
		&repository.MemberModel{},
		&repository.AnnouncementModel{},
		&repository.ReviewModel{},
	))

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers,
		bookingEvents.TopicBookingEvents,
		bookingEvents.TopicPaymentEvents,
		bookingEvents.TopicGatewayEvents,
	)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupBookingStack wires up the payment flow against the mock gateway.
func setupBookingStack(t *testing.T, db *gorm.DB, brokers []string) *bookingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	courtRepo := repository.NewGormCourtRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	couponRepo := repository.NewGormCouponRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)

	gateway := adapter.NewMockGateway(logger)
	producer := kafka.NewProducer(brokers, logger)
	reconciler := saga.NewReconciler(bookingRepo, courtRepo, couponRepo, paymentRepo, producer, logger)
	paymentSvc := application.NewPaymentService(
		bookingRepo, couponRepo, paymentRepo,
		gateway, reconciler, producer,
		"usd", logger,
	)

	groupID := fmt.Sprintf("test-booking-%s", uuid.New().String()[:8])
	consumer := bookingEvents.NewGatewayEventConsumer(brokers, groupID, paymentSvc, logger)

	return &bookingStack{
		PaymentService:  paymentSvc,
		Gateway:         gateway,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedCourt inserts a court with two available evening slots.
func seedCourt(t *testing.T, db *gorm.DB, priceCents int64) uuid.UUID {
	t.Helper()
	courtID := uuid.New()
	now := time.Now().UTC()
	slots, err := json.Marshal([]map[string]interface{}{
		{"start_time": "18:00", "end_time": "19:00", "available": true},
		{"start_time": "19:00", "end_time": "20:00", "available": true},
	})
	require.NoError(t, err)

	model := repository.CourtModel{
		ID:         courtID,
		Name:       "Court 1",
		SportType:  "badminton",
		PriceCents: priceCents,
		PriceUnit:  "hour",
		Slots:      slots,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed court")
	return courtID
}

// seedApprovedBooking inserts an approved booking for two slots on the court.
func seedApprovedBooking(t *testing.T, db *gorm.DB, courtID uuid.UUID, userEmail string, totalCostCents int64) uuid.UUID {
	t.Helper()
	bookingID := uuid.New()
	now := time.Now().UTC()
	slots, err := json.Marshal([]map[string]interface{}{
		{"start_time": "18:00", "end_time": "19:00", "available": true},
		{"start_time": "19:00", "end_time": "20:00", "available": true},
	})
	require.NoError(t, err)

	model := repository.BookingModel{
		ID:             bookingID,
		CourtID:        courtID,
		CourtName:      "Court 1",
		CourtType:      "badminton",
		UserEmail:      userEmail,
		BookingDate:    now.AddDate(0, 0, 1),
		RequestedAt:    now,
		Slots:          slots,
		TotalCostCents: totalCostCents,
		Status:         "approved",
		Version:        2,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return bookingID
}

// seedCoupon inserts an active coupon.
func seedCoupon(t *testing.T, db *gorm.DB, code string, pct, maxUses, usesConsumed int) uuid.UUID {
	t.Helper()
	couponID := uuid.New()
	now := time.Now().UTC()
	model := repository.CouponModel{
		ID:                 couponID,
		Code:               code,
		DiscountPercentage: pct,
		ExpiryDate:         now.AddDate(0, 1, 0),
		MaxUses:            maxUses,
		UsesConsumed:       usesConsumed,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed coupon")
	return couponID
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForBookingStatus polls the bookings table until the status matches.
func waitForBookingStatus(t *testing.T, db *gorm.DB, bookingID uuid.UUID, expectedStatus string, timeout time.Duration) repository.BookingModel {
	t.Helper()
	var result repository.BookingModel
	require.Eventually(t, func() bool {
		var model repository.BookingModel
		if err := db.Where("id = ?", bookingID).First(&model).Error; err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "booking did not transition to %s", expectedStatus)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
