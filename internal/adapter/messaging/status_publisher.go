package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/pkg/messaging"
)

// StatusEventPublisher publishes payment status transitions on a pub/sub channel
type StatusEventPublisher struct {
	publisher messaging.Publisher
	channel   string
	logger    *zap.Logger
}

// NewStatusEventPublisher creates a publisher bound to channel
func NewStatusEventPublisher(publisher messaging.Publisher, channel string, logger *zap.Logger) *StatusEventPublisher {
	return &StatusEventPublisher{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
	}
}

// PublishStatusChange sends event as JSON
func (p *StatusEventPublisher) PublishStatusChange(ctx context.Context, event entity.PaymentStatusEvent) error {
	if err := p.publisher.Publish(ctx, p.channel, event); err != nil {
		return fmt.Errorf("failed to publish status event for payment %s: %w", event.PaymentID, err)
	}

	p.logger.Debug("payment status event published",
		zap.String("channel", p.channel),
		zap.String("payment_id", event.PaymentID),
		zap.String("status", string(event.Status)))
	return nil
}
