package messaging

import (
	"context"

	"github.com/adrift-app/adrift/internal/domain"
)

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a bottle event to the message broker
	PublishEvent(ctx context.Context, event *domain.BottleEvent) error
	// Close closes the connection
	Close()
}
