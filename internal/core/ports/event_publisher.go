package ports

import (
	"context"

	"checkout/internal/core/domain/model/kernel"
)

// EventPublisher delivers committed domain events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
