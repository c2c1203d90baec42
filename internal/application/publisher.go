package application

import (
	"context"

	"github.com/mes-platform/production-tracker/internal/domain"
)

// EventPublisher publishes domain events after a state change commits.
// Publishing is best effort: services log failures but never roll back.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.DomainEvent) error
}
