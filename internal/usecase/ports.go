package usecase

import (
	"context"

	"github.com/KAMAL20201/UPI-PAYMENT-SIMULATE/internal/domain/entity"
)

// QRRenderer renders an intent URI as an image data URL
type QRRenderer interface {
	RenderDataURL(content string) (string, error)
}

// StatusEventPublisher announces persisted status transitions
type StatusEventPublisher interface {
	PublishStatusChange(ctx context.Context, event entity.PaymentStatusEvent) error
}

// NopStatusEventPublisher drops every event
type NopStatusEventPublisher struct{}

func (NopStatusEventPublisher) PublishStatusChange(context.Context, entity.PaymentStatusEvent) error {
	return nil
}
