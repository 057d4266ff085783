package projection

import "github.com/adrift-app/adrift/internal/domain"

// BottleState is the implicit state machine of one bottle, expressed as a
// fold over its sorted event list. Journey building, trail classification
// and stats attribution all share this reducer so the "which cast-away is
// the creation" rule lives in exactly one place.
type BottleState struct {
	// Status is the lifecycle state after the events folded so far
	Status domain.BottleStatus
	// CastAwayCount is how many cast_away events have been folded
	CastAwayCount int
	// FoundCount is how many found events have been folded
	FoundCount int
	// HolderName is the display name of the most recent actor, if recorded
	HolderName string
}

// Classification tags a single event for map display and stats attribution
type Classification string

const (
	// ClassificationCreated marks the globally first cast_away of a bottle
	ClassificationCreated Classification = "created"
	// ClassificationRetossed marks every later cast_away
	ClassificationRetossed Classification = "retossed"
	// ClassificationFound marks every found event, replies included
	ClassificationFound Classification = "found"
)

// Classify tags an event given the state prior to folding it. Only the very
// first cast_away for a bottle, system-wide, is ever a creation.
func Classify(prior BottleState, e domain.BottleEvent) Classification {
	if e.EventType == domain.EventTypeFound {
		return ClassificationFound
	}
	if prior.CastAwayCount == 0 {
		return ClassificationCreated
	}
	return ClassificationRetossed
}

// ReduceEvent folds one event into the state
func ReduceEvent(state BottleState, e domain.BottleEvent) BottleState {
	switch e.EventType {
	case domain.EventTypeCastAway:
		state.Status = domain.BottleStatusAdrift
		state.CastAwayCount++
	case domain.EventTypeFound:
		state.Status = domain.BottleStatusFound
		state.FoundCount++
	default:
		return state
	}
	if name := e.ActorName(); name != "" {
		state.HolderName = name
	}
	return state
}

// ReduceBottle folds a bottle's full event list, oldest first
func ReduceBottle(events []domain.BottleEvent) BottleState {
	var state BottleState
	for _, e := range sortedEventsAscending(events) {
		state = ReduceEvent(state, e)
	}
	return state
}
