package store

import (
	"context"

	"github.com/adrift-app/adrift/internal/store/schema"
)

// StatField names one counter of the incremental per-user stats cache
type StatField string

const (
	StatFieldCreated  StatField = "created"
	StatFieldFound    StatField = "found"
	StatFieldRetossed StatField = "retossed"
)

// StatDelta is the counter bump applied alongside an appended event
type StatDelta struct {
	Username string
	Field    StatField
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ListBottles retrieves every bottle row
	ListBottles(ctx context.Context) ([]schema.Bottle, error)
	// GetBottleByID retrieves one bottle by id, or nil when absent
	GetBottleByID(ctx context.Context, id string) (*schema.Bottle, error)
	// ListEvents retrieves events ordered by creation time ascending,
	// restricted to one bottle when bottleID is non-empty
	ListEvents(ctx context.Context, bottleID string) ([]schema.BottleEvent, error)
	// AppendEvent atomically appends one event, refreshes the bottle's
	// cached row, and bumps the acting user's incremental counter. Every
	// state transition the reconstruction engine explains goes through
	// here.
	AppendEvent(ctx context.Context, event *schema.BottleEvent, bottle *schema.Bottle, delta *StatDelta) error
	// ListUsernames retrieves every distinct acting user name in the log
	ListUsernames(ctx context.Context) ([]string, error)
	// GetUserStatCounter retrieves one user's incremental counters, or nil
	GetUserStatCounter(ctx context.Context, username string) (*schema.UserStatCounter, error)
	// PutUserStatCounter overwrites one user's incremental counters
	PutUserStatCounter(ctx context.Context, counter *schema.UserStatCounter) error
}
