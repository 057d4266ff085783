package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adrift-app/adrift/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the database schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Bottle{},
		&schema.BottleEvent{},
		&schema.UserStatCounter{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		normalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// normalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values. database/sql treats MaxOpenConns=0 as "unlimited" and
// MaxIdleConns=0 as "no idle connections", so zeros get explicit defaults.
func normalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// ListBottles retrieves every bottle row
func (s *pgStore) ListBottles(ctx context.Context) ([]schema.Bottle, error) {
	var bottles []schema.Bottle
	err := s.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&bottles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bottles: %w", err)
	}
	return bottles, nil
}

// GetBottleByID retrieves one bottle by id
func (s *pgStore) GetBottleByID(ctx context.Context, id string) (*schema.Bottle, error) {
	var bottle schema.Bottle
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&bottle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bottle: %w", err)
	}
	return &bottle, nil
}

// ListEvents retrieves events ordered by creation time ascending
func (s *pgStore) ListEvents(ctx context.Context, bottleID string) ([]schema.BottleEvent, error) {
	query := s.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if bottleID != "" {
		query = query.Where("bottle_id = ?", bottleID)
	}

	var events []schema.BottleEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// AppendEvent atomically appends one event, refreshes the bottle cache row
// and bumps the acting user's incremental counter
func (s *pgStore) AppendEvent(ctx context.Context, event *schema.BottleEvent, bottle *schema.Bottle, delta *StatDelta) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(bottle).Error; err != nil {
			return fmt.Errorf("failed to upsert bottle: %w", err)
		}

		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}

		if delta != nil && delta.Username != "" {
			if err := incrementUserStat(tx, delta); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("append event transaction failed: %w", err)
	}
	return nil
}

// incrementUserStat bumps one counter field, inserting the row on first use
func incrementUserStat(tx *gorm.DB, delta *StatDelta) error {
	counter := schema.UserStatCounter{
		Username:  delta.Username,
		UpdatedAt: time.Now().UTC(),
	}
	switch delta.Field {
	case StatFieldCreated:
		counter.Created = 1
	case StatFieldFound:
		counter.Found = 1
	case StatFieldRetossed:
		counter.Retossed = 1
	default:
		return fmt.Errorf("unknown stat field: %s", delta.Field)
	}

	column := string(delta.Field)
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(fmt.Sprintf("user_stat_counters.%s + 1", column)),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&counter).Error
	if err != nil {
		return fmt.Errorf("failed to increment user stat: %w", err)
	}
	return nil
}

// ListUsernames retrieves every distinct acting user name in the event log
func (s *pgStore) ListUsernames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Raw(`SELECT DISTINCT name FROM (
			SELECT tosser_name AS name FROM bottle_events WHERE tosser_name IS NOT NULL
			UNION
			SELECT finder_name AS name FROM bottle_events WHERE finder_name IS NOT NULL
		) AS actors ORDER BY name ASC`).
		Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}
	return names, nil
}

// GetUserStatCounter retrieves one user's incremental counters
func (s *pgStore) GetUserStatCounter(ctx context.Context, username string) (*schema.UserStatCounter, error) {
	var counter schema.UserStatCounter
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user stat counter: %w", err)
	}
	return &counter, nil
}

// PutUserStatCounter overwrites one user's incremental counters
func (s *pgStore) PutUserStatCounter(ctx context.Context, counter *schema.UserStatCounter) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		UpdateAll: true,
	}).Create(counter).Error
	if err != nil {
		return fmt.Errorf("failed to put user stat counter: %w", err)
	}
	return nil
}
