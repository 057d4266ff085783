package dto

import (
	"errors"
	"time"

	"github.com/adrift-app/adrift/internal/domain"
	"github.com/adrift-app/adrift/internal/projection"
)

// CreateBottleRequest is the request body for POST /bottles
type CreateBottleRequest struct {
	Message    string  `json:"message"`
	Photo      *string `json:"photo_url,omitempty"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Password   string  `json:"password"`
	TosserName *string `json:"tosser_name,omitempty"`
}

// Validate validates the request body
func (r *CreateBottleRequest) Validate() error {
	if r.Message == "" {
		return errors.New("message is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return validateCoordinates(r.Lat, r.Lon)
}

// AppendEventRequest is the request body for POST /bottles/:id/events
type AppendEventRequest struct {
	Action     domain.EventType `json:"action"`
	Message    *string          `json:"message,omitempty"`
	Photo      *string          `json:"photo_url,omitempty"`
	Lat        float64          `json:"lat"`
	Lon        float64          `json:"lon"`
	Password   string           `json:"password"`
	TosserName *string          `json:"tosser_name,omitempty"`
	FinderName *string          `json:"finder_name,omitempty"`
}

// Validate validates the request body
func (r *AppendEventRequest) Validate() error {
	if !domain.IsValidEventType(r.Action) {
		return errors.New("action must be cast_away or found")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return validateCoordinates(r.Lat, r.Lon)
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("lat must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return errors.New("lon must be between -180 and 180")
	}
	return nil
}

// BottleResponse represents a bottle's cached current state
type BottleResponse struct {
	ID          string              `json:"id"`
	Status      domain.BottleStatus `json:"status"`
	Message     string              `json:"message"`
	Photo       *string             `json:"photo_url,omitempty"`
	Lat         float64             `json:"lat"`
	Lon         float64             `json:"lon"`
	CreatorName *string             `json:"creator_name,omitempty"`
	TosserName  *string             `json:"tosser_name,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewBottleResponse converts a domain bottle to its response form
func NewBottleResponse(b domain.Bottle) BottleResponse {
	return BottleResponse{
		ID:          b.ID,
		Status:      b.Status,
		Message:     b.Message,
		Photo:       b.Photo,
		Lat:         b.Lat,
		Lon:         b.Lon,
		CreatorName: b.CreatorName,
		TosserName:  b.TosserName,
		CreatedAt:   b.CreatedAt,
	}
}

// EventResponse represents one appended event
type EventResponse struct {
	ID         string           `json:"id"`
	BottleID   string           `json:"bottle_id"`
	EventType  domain.EventType `json:"event_type"`
	Lat        float64          `json:"lat"`
	Lon        float64          `json:"lon"`
	Message    *string          `json:"message,omitempty"`
	Photo      *string          `json:"photo_url,omitempty"`
	TosserName *string          `json:"tosser_name,omitempty"`
	FinderName *string          `json:"finder_name,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewEventResponse converts a domain event to its response form
func NewEventResponse(e domain.BottleEvent) EventResponse {
	return EventResponse{
		ID:         e.ID,
		BottleID:   e.BottleID,
		EventType:  e.EventType,
		Lat:        e.Lat,
		Lon:        e.Lon,
		Message:    e.Message,
		Photo:      e.Photo,
		TosserName: e.TosserName,
		FinderName: e.FinderName,
		CreatedAt:  e.CreatedAt,
	}
}

// CreateBottleResponse is the response body for POST /bottles
type CreateBottleResponse struct {
	Bottle BottleResponse `json:"bottle"`
	Event  EventResponse  `json:"event"`
}

// JourneyResponse is the response body for GET /bottles/:id/journey
type JourneyResponse struct {
	BottleID string                   `json:"bottle_id"`
	Steps    []projection.JourneyStep `json:"steps"`
}

// TrailResponse is the response body for GET /trail
type TrailResponse struct {
	Markers []projection.TrailMarker `json:"markers"`
}

// StatsResponse is the response body for GET /users/:username/stats.
// Counter and Divergent are only present when verification was requested.
type StatsResponse struct {
	Username  string                `json:"username"`
	Stats     projection.UserStats  `json:"stats"`
	Counter   *projection.UserStats `json:"counter,omitempty"`
	Divergent *bool                 `json:"divergent,omitempty"`
}

// ConversationsResponse is the response body for GET /conversations
type ConversationsResponse struct {
	Conversations []projection.Conversation `json:"conversations"`
}
