package schema

import "time"

// UserStatCounter represents the user_stat_counters table - the incremental
// per-user counters bumped on the write path. An independently-fallible
// cache: the projection engine's recomputation is the ground truth it is
// periodically audited against.
type UserStatCounter struct {
	// Username is the user's display name
	Username string `gorm:"column:username;primaryKey;type:text"`
	// Created counts bottles this user created
	Created int `gorm:"column:created;not null;default:0"`
	// Found counts found events this user produced, replies included
	Found int `gorm:"column:found;not null;default:0"`
	// Retossed counts cast_away events beyond the bottle's creation
	Retossed int `gorm:"column:retossed;not null;default:0"`
	// UpdatedAt is when the counters were last bumped or repaired
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the UserStatCounter model
func (UserStatCounter) TableName() string {
	return "user_stat_counters"
}
