package domain

import (
	"strings"
	"time"
)

// BottleStatus represents the current lifecycle state of a bottle
type BottleStatus string

const (
	BottleStatusAdrift BottleStatus = "adrift"
	BottleStatusFound  BottleStatus = "found"
)

// IsValidBottleStatus checks if a bottle status is valid
func IsValidBottleStatus(status BottleStatus) bool {
	return status == BottleStatusAdrift || status == BottleStatusFound
}

// EventType represents the type of bottle event
type EventType string

const (
	// EventTypeCastAway indicates a bottle was released, created or retossed
	EventTypeCastAway EventType = "cast_away"
	// EventTypeFound indicates a bottle was discovered or replied to
	EventTypeFound EventType = "found"
)

// IsValidEventType checks if an event type is valid
func IsValidEventType(eventType EventType) bool {
	return eventType == EventTypeCastAway || eventType == EventTypeFound
}

// Bottle represents the bottles table row: the mutable cache of a bottle's
// most recent state. The event log, not this row, is the source of
// historical truth.
type Bottle struct {
	ID          string       `json:"id"`
	Status      BottleStatus `json:"status"`
	Message     string       `json:"message"`
	Photo       *string      `json:"photo,omitempty"`
	Lat         float64      `json:"lat"`
	Lon         float64      `json:"lon"`
	CreatorName *string      `json:"creator_name,omitempty"`
	TosserName  *string      `json:"tosser_name,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// BottleEvent represents one immutable, timestamped fact about a bottle.
// The log is append-only; CreatedAt is the ordering key.
type BottleEvent struct {
	ID         string    `json:"id"`
	BottleID   string    `json:"bottle_id"`
	EventType  EventType `json:"event_type"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Message    *string   `json:"message,omitempty"`
	Photo      *string   `json:"photo,omitempty"`
	TosserName *string   `json:"tosser_name,omitempty"` // set on cast_away
	FinderName *string   `json:"finder_name,omitempty"` // set on found
	CreatedAt  time.Time `json:"created_at"`
}

// Valid checks if the event carries the fields the reconstruction engine
// requires. Events failing this check are skipped, not fatal. A missing
// event ID is tolerated: it is a legacy degraded case handled by the
// deterministic fallback identifier in the trail aggregator.
func (e *BottleEvent) Valid() bool {
	if e.BottleID == "" {
		return false
	}
	return IsValidEventType(e.EventType)
}

// MessageText returns the event message or "" when unset
func (e *BottleEvent) MessageText() string {
	if e.Message == nil {
		return ""
	}
	return *e.Message
}

// IsReply reports whether the event is a found event whose message carries
// the reply marker. Replies thread into conversations; plain found events
// do not.
func (e *BottleEvent) IsReply() bool {
	return e.EventType == EventTypeFound && strings.HasPrefix(e.MessageText(), ReplyMarker)
}

// IsFoundSentinel reports whether the event message is the system-generated
// "found, no reply" marker. Sentinels are excluded from journey replies and
// conversations but still count for trail and stats.
func (e *BottleEvent) IsFoundSentinel() bool {
	return e.MessageText() == SentinelFoundNoReply
}

// ActorName returns the display name of the user who produced the event,
// or "" when the log never recorded one
func (e *BottleEvent) ActorName() string {
	switch e.EventType {
	case EventTypeCastAway:
		if e.TosserName != nil {
			return *e.TosserName
		}
	case EventTypeFound:
		if e.FinderName != nil {
			return *e.FinderName
		}
	}
	return ""
}

// StripReplyMarker removes the reply marker prefix from a message, if present
func StripReplyMarker(message string) string {
	return strings.TrimPrefix(message, ReplyMarker)
}
