package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/adrift-app/adrift/internal/domain"
)

// BottleEvent represents the bottle_events table - the append-only log of
// immutable facts about bottles. Rows are never updated or deleted; the log
// is the only source of historical truth.
type BottleEvent struct {
	// ID is the event's opaque identifier (ulid, time-ordered)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// BottleID references the bottle this event belongs to
	BottleID string `gorm:"column:bottle_id;not null;type:text;index:idx_bottle_events_bottle_created,priority:1"`
	// EventType identifies the kind of fact (cast_away, found)
	EventType domain.EventType `gorm:"column:event_type;not null;type:text"`
	// Lat is the latitude where the event happened
	Lat float64 `gorm:"column:lat;not null;type:double precision"`
	// Lon is the longitude where the event happened
	Lon float64 `gorm:"column:lon;not null;type:double precision"`
	// Message is the optional message text carried by the event
	Message *string `gorm:"column:message;type:text"`
	// Photo is an optional photo URL
	Photo *string `gorm:"column:photo;type:text"`
	// TosserName is the acting user's display name on cast_away events
	TosserName *string `gorm:"column:tosser_name;type:text"`
	// FinderName is the acting user's display name on found events
	FinderName *string `gorm:"column:finder_name;type:text"`
	// Raw contains the original write request payload for auditing
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the event timestamp, the log's ordering key
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_bottle_events_bottle_created,priority:2"`

	// Associations
	Bottle Bottle `gorm:"foreignKey:BottleID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the BottleEvent model
func (BottleEvent) TableName() string {
	return "bottle_events"
}

// ToDomain converts the row to the snapshot representation
func (e *BottleEvent) ToDomain() domain.BottleEvent {
	return domain.BottleEvent{
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
