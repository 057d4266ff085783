// Package projection derives every user-visible view of the system from an
// in-memory snapshot of bottles and their append-only event log: per-bottle
// journeys, the world trail map, per-user statistics and the conversation
// list. All functions are pure and idempotent; nothing here performs I/O,
// caches, or mutates its input.
package projection

import (
	"sort"

	"github.com/adrift-app/adrift/internal/domain"
)

// Snapshot is one consistent read of the event store. Callers fetch a fresh
// snapshot per query; the projection functions never refresh it themselves.
type Snapshot struct {
	Bottles []domain.Bottle      `json:"bottles"`
	Events  []domain.BottleEvent `json:"events"`
}

// BottleByID returns the bottle with the given id, or nil
func (s *Snapshot) BottleByID(id string) *domain.Bottle {
	for i := range s.Bottles {
		if s.Bottles[i].ID == id {
			return &s.Bottles[i]
		}
	}
	return nil
}

// EventsForBottle returns the events belonging to one bottle, in snapshot order
func (s *Snapshot) EventsForBottle(bottleID string) []domain.BottleEvent {
	var events []domain.BottleEvent
	for _, e := range s.Events {
		if e.BottleID == bottleID {
			events = append(events, e)
		}
	}
	return events
}

// sortedEventsAscending returns a copy of events ordered by creation time
// ascending, event ID as tie-break so repeated runs stay structurally
// identical. Events with a malformed type are dropped here so a single
// corrupt row never aborts a reconstruction.
func sortedEventsAscending(events []domain.BottleEvent) []domain.BottleEvent {
	sorted := make([]domain.BottleEvent, 0, len(events))
	for _, e := range events {
		if !e.Valid() {
			continue
		}
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// groupEventsByBottle buckets events per bottle id, preserving input order
func groupEventsByBottle(events []domain.BottleEvent) map[string][]domain.BottleEvent {
	grouped := make(map[string][]domain.BottleEvent)
	for _, e := range events {
		grouped[e.BottleID] = append(grouped[e.BottleID], e)
	}
	return grouped
}
