package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adrift-app/adrift/internal/domain"
	"github.com/adrift-app/adrift/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Allow an external database for CI or local development
	dsn := os.Getenv("TEST_DB_DSN")

	if dsn == "" {
		var err error
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			_ = pgContainer.Terminate(ctx)
			os.Exit(1)
		}
	}

	var err error
	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
		os.Exit(1)
	}

	if err := Migrate(testDB); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
		os.Exit(1)
	}

	code := m.Run()

	if pgContainer != nil {
		_ = pgContainer.Terminate(ctx)
	}

	os.Exit(code)
}

// initPGTestDB returns a store isolated in a transaction rolled back on
// test cleanup
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

func strPtr(s string) *string {
	return &s
}

func testBottle(id string) *schema.Bottle {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &schema.Bottle{
		ID:          id,
		Status:      domain.BottleStatusAdrift,
		Message:     "hello from the sea",
		Password:    "hunter2",
		Lat:         48.8566,
		Lon:         2.3522,
		CreatorName: strPtr("Alice"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func testEvent(id, bottleID string, eventType domain.EventType, ts time.Time) *schema.BottleEvent {
	e := &schema.BottleEvent{
		ID:        id,
		BottleID:  bottleID,
		EventType: eventType,
		Lat:       48.8566,
		Lon:       2.3522,
		CreatedAt: ts,
	}
	if eventType == domain.EventTypeCastAway {
		e.TosserName = strPtr("Alice")
	} else {
		e.FinderName = strPtr("Bob")
	}
	return e
}

func TestAppendEvent_CreatesBottleEventAndCounter(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	bottle := testBottle("b1")
	event := testEvent("e1", "b1", domain.EventTypeCastAway, time.Now().UTC())
	delta := &StatDelta{Username: "Alice", Field: StatFieldCreated}

	require.NoError(t, s.AppendEvent(ctx, event, bottle, delta))

	got, err := s.GetBottleByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello from the sea", got.Message)

	events, err := s.ListEvents(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e1", events[0].ID)

	counter, err := s.GetUserStatCounter(ctx, "Alice")
	require.NoError(t, err)
	require.NotNil(t, counter)
	assert.Equal(t, 1, counter.Created)
	assert.Equal(t, 0, counter.Found)
}

func TestAppendEvent_UpdatesCachedBottleRow(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	bottle := testBottle("b1")
	require.NoError(t, s.AppendEvent(ctx,
		testEvent("e1", "b1", domain.EventTypeCastAway, time.Now().UTC()),
		bottle,
		&StatDelta{Username: "Alice", Field: StatFieldCreated}))

	// Found event flips the cached status and records the finder.
	bottle.Status = domain.BottleStatusFound
	bottle.TosserName = strPtr("Bob")
	require.NoError(t, s.AppendEvent(ctx,
		testEvent("e2", "b1", domain.EventTypeFound, time.Now().UTC().Add(time.Minute)),
		bottle,
		&StatDelta{Username: "Bob", Field: StatFieldFound}))

	got, err := s.GetBottleByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.BottleStatusFound, got.Status)

	events, err := s.ListEvents(ctx, "b1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestAppendEvent_CounterAccumulates(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	bottle := testBottle("b1")
	base := time.Now().UTC()
	for i, field := range []StatField{StatFieldCreated, StatFieldRetossed, StatFieldRetossed} {
		event := testEvent(fmt.Sprintf("e%d", i), "b1", domain.EventTypeCastAway, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.AppendEvent(ctx, event, bottle, &StatDelta{Username: "Alice", Field: field}))
	}

	counter, err := s.GetUserStatCounter(ctx, "Alice")
	require.NoError(t, err)
	require.NotNil(t, counter)
	assert.Equal(t, 1, counter.Created)
	assert.Equal(t, 2, counter.Retossed)
}

func TestListEvents_OrderedAscending(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	bottle := testBottle("b1")
	base := time.Now().UTC().Truncate(time.Microsecond)
	// Insert out of chronological order.
	for _, tc := range []struct {
		id     string
		offset time.Duration
	}{
		{"e2", 2 * time.Minute},
		{"e1", 1 * time.Minute},
		{"e3", 3 * time.Minute},
	} {
		event := testEvent(tc.id, "b1", domain.EventTypeCastAway, base.Add(tc.offset))
		require.NoError(t, s.AppendEvent(ctx, event, bottle, nil))
	}

	events, err := s.ListEvents(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "e2", events[1].ID)
	assert.Equal(t, "e3", events[2].ID)
}

func TestListEvents_FiltersByBottle(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, s.AppendEvent(ctx, testEvent("e1", "b1", domain.EventTypeCastAway, now), testBottle("b1"), nil))
	require.NoError(t, s.AppendEvent(ctx, testEvent("e2", "b2", domain.EventTypeCastAway, now), testBottle("b2"), nil))

	all, err := s.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := s.ListEvents(ctx, "b2")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "e2", one[0].ID)
}

func TestGetBottleByID_NotFound(t *testing.T) {
	s := initPGTestDB(t)

	bottle, err := s.GetBottleByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, bottle)
}

func TestListUsernames_DistinctActors(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	bottle := testBottle("b1")
	require.NoError(t, s.AppendEvent(ctx, testEvent("e1", "b1", domain.EventTypeCastAway, now), bottle, nil))
	require.NoError(t, s.AppendEvent(ctx, testEvent("e2", "b1", domain.EventTypeFound, now.Add(time.Minute)), bottle, nil))
	// Alice appears as both tosser and finder; must come back once.
	e3 := testEvent("e3", "b1", domain.EventTypeFound, now.Add(2*time.Minute))
	e3.FinderName = strPtr("Alice")
	require.NoError(t, s.AppendEvent(ctx, e3, bottle, nil))

	names, err := s.ListUsernames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestPutUserStatCounter_Repairs(t *testing.T) {
	s := initPGTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.PutUserStatCounter(ctx, &schema.UserStatCounter{
		Username:  "Alice",
		Created:   5,
		UpdatedAt: time.Now().UTC(),
	}))
	require.NoError(t, s.PutUserStatCounter(ctx, &schema.UserStatCounter{
		Username:  "Alice",
		Created:   2,
		Found:     1,
		UpdatedAt: time.Now().UTC(),
	}))

	counter, err := s.GetUserStatCounter(ctx, "Alice")
	require.NoError(t, err)
	require.NotNil(t, counter)
	assert.Equal(t, 2, counter.Created)
	assert.Equal(t, 1, counter.Found)
}
