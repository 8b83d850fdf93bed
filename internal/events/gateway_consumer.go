package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/courthub/service-booking/pkg/kafka"
)

// ChargeHandler receives decoded gateway charge events. It is implemented
// by the payment application service.
type ChargeHandler interface {
	HandleChargeSucceeded(ctx context.Context, evt ChargeSucceededEvent) error
	HandleChargeFailed(ctx context.Context, evt ChargeFailedEvent) error
}

// GatewayEventConsumer consumes charge confirmations from the gateway
// bridge topic and feeds them to the reconciliation flow. Handler failures
// of the recorded-not-persisted class surface through the handler's own
// escalation logging; the consumer keeps the group moving.
type GatewayEventConsumer struct {
	consumer *kafka.Consumer
	handler  ChargeHandler
	logger   *zap.Logger
}

// NewGatewayEventConsumer creates a consumer on the gateway events topic.
func NewGatewayEventConsumer(brokers []string, groupID string, handler ChargeHandler, logger *zap.Logger) *GatewayEventConsumer {
	return &GatewayEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, TopicGatewayEvents, logger),
		handler:  handler,
		logger:   logger,
	}
}

// Start consumes until the context is cancelled.
func (c *GatewayEventConsumer) Start(ctx context.Context) error {
	c.logger.Info("gateway event consumer started", zap.String("topic", TopicGatewayEvents))
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka reader.
func (c *GatewayEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *GatewayEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	ce, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Warn("skipping malformed gateway event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	switch ce.Type {
	case GatewayChargeSucceeded:
		var evt ChargeSucceededEvent
		if err := ce.ParseData(&evt); err != nil {
			return err
		}
		return c.handler.HandleChargeSucceeded(ctx, evt)

	case GatewayChargeFailed:
		var evt ChargeFailedEvent
		if err := ce.ParseData(&evt); err != nil {
			return err
		}
		return c.handler.HandleChargeFailed(ctx, evt)

	default:
		c.logger.Debug("ignoring gateway event", zap.String("type", ce.Type))
		return nil
	}
}
