// Package snapshot loads consistent read snapshots of the bottle log for
// the projection functions.
package snapshot

import (
	"context"
	"fmt"

	"github.com/adrift-app/adrift/internal/domain"
	"github.com/adrift-app/adrift/internal/projection"
	"github.com/adrift-app/adrift/internal/store"
)

// Source produces projection snapshots
//
//go:generate mockgen -source=snapshot.go -destination=../mocks/snapshot.go -package=mocks -mock_names Source=MockSnapshotSource
type Source interface {
	// Load returns every bottle and every event
	Load(ctx context.Context) (*projection.Snapshot, error)

	// LoadBottle returns one bottle with its events. The bottle pointer is
	// nil when the id is unknown and no events reference it.
	LoadBottle(ctx context.Context, bottleID string) (*domain.Bottle, []domain.BottleEvent, error)
}

type storeSource struct {
	store store.Store
}

// NewStoreSource creates a snapshot source backed by the persistent store
func NewStoreSource(s store.Store) Source {
	return &storeSource{store: s}
}

func (s *storeSource) Load(ctx context.Context) (*projection.Snapshot, error) {
	rows, err := s.store.ListBottles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bottles: %w", err)
	}

	events, err := s.store.ListEvents(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	snap := &projection.Snapshot{
		Bottles: make([]domain.Bottle, 0, len(rows)),
		Events:  make([]domain.BottleEvent, 0, len(events)),
	}
	for _, row := range rows {
		snap.Bottles = append(snap.Bottles, row.ToDomain())
	}
	for _, event := range events {
		snap.Events = append(snap.Events, event.ToDomain())
	}
	return snap, nil
}

func (s *storeSource) LoadBottle(ctx context.Context, bottleID string) (*domain.Bottle, []domain.BottleEvent, error) {
	row, err := s.store.GetBottleByID(ctx, bottleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bottle: %w", err)
	}

	rows, err := s.store.ListEvents(ctx, bottleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load events: %w", err)
	}

	events := make([]domain.BottleEvent, 0, len(rows))
	for _, event := range rows {
		events = append(events, event.ToDomain())
	}

	var bottle *domain.Bottle
	if row != nil {
		b := row.ToDomain()
		bottle = &b
	}
	return bottle, events, nil
}
