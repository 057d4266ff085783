package schema

import (
	"time"

	"github.com/adrift-app/adrift/internal/domain"
)

// Bottle represents the bottles table - the mutable cache of each bottle's
// most recent state. History lives in bottle_events; this row only mirrors
// the latest cast_away/found event for cheap current-state reads.
type Bottle struct {
	// ID is the bottle's opaque identifier (uuid)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Status is the current lifecycle state (adrift, found)
	Status domain.BottleStatus `gorm:"column:status;not null;type:text"`
	// Message is the bottle's current message text
	Message string `gorm:"column:message;not null;type:text"`
	// Photo is an optional photo URL
	Photo *string `gorm:"column:photo;type:text"`
	// Password guards mutations; checked by the write endpoint only
	Password string `gorm:"column:password;not null;type:text"`
	// Lat is the current latitude
	Lat float64 `gorm:"column:lat;not null;type:double precision"`
	// Lon is the current longitude
	Lon float64 `gorm:"column:lon;not null;type:double precision"`
	// CreatorName is the display name of the user who created the bottle
	CreatorName *string `gorm:"column:creator_name;type:text"`
	// TosserName is the display name of the most recent tosser
	TosserName *string `gorm:"column:tosser_name;type:text"`
	// CreatedAt is when the bottle was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the cached row was last refreshed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Bottle model
func (Bottle) TableName() string {
	return "bottles"
}

// ToDomain converts the row to the snapshot representation consumed by the
// reconstruction engine. The password never crosses this boundary.
func (b *Bottle) ToDomain() domain.Bottle {
	return domain.Bottle{
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
