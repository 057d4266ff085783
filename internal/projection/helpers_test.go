package projection

import (
	"time"

	"github.com/adrift-app/adrift/internal/domain"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return testEpoch.Add(time.Duration(minutes) * time.Minute)
}

func strPtr(s string) *string {
	return &s
}

func castAway(id, bottleID, tosser, message string, ts time.Time) domain.BottleEvent {
	e := domain.BottleEvent{
		ID:        id,
		BottleID:  bottleID,
		EventType: domain.EventTypeCastAway,
		CreatedAt: ts,
	}
	if tosser != "" {
		e.TosserName = strPtr(tosser)
	}
	if message != "" {
		e.Message = strPtr(message)
	}
	return e
}

func found(id, bottleID, finder, message string, ts time.Time) domain.BottleEvent {
	e := domain.BottleEvent{
		ID:        id,
		BottleID:  bottleID,
		EventType: domain.EventTypeFound,
		CreatedAt: ts,
	}
	if finder != "" {
		e.FinderName = strPtr(finder)
	}
	if message != "" {
		e.Message = strPtr(message)
	}
	return e
}

func reply(id, bottleID, finder, message string, ts time.Time) domain.BottleEvent {
	return found(id, bottleID, finder, domain.ReplyMarker+message, ts)
}

func sentinel(id, bottleID, finder string, ts time.Time) domain.BottleEvent {
	return found(id, bottleID, finder, domain.SentinelFoundNoReply, ts)
}

// scenarioB1 is the canonical four-event journey: Alice creates, Bob
// replies, Bob retosses, Carol finds.
func scenarioB1() (domain.Bottle, []domain.BottleEvent) {
	bottle := domain.Bottle{
		ID:          "B1",
		Status:      domain.BottleStatusFound,
		Message:     "hello from the sea",
		CreatorName: strPtr("Alice"),
		CreatedAt:   at(0),
	}
	events := []domain.BottleEvent{
		castAway("e1", "B1", "Alice", "hello from the sea", at(0)),
		reply("e2", "B1", "Bob", "hi Alice!", at(10)),
		castAway("e3", "B1", "Bob", "passing it on", at(20)),
		found("e4", "B1", "Carol", "found near the pier", at(30)),
	}
	return bottle, events
}
