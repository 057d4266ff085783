package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adrift-app/adrift/internal/domain"
)

func TestComputeStats_Scenario(t *testing.T) {
	_, events := scenarioB1()

	assert.Equal(t, UserStats{Created: 1, Found: 0, Retossed: 0}, ComputeStats(events, "Alice"))
	assert.Equal(t, UserStats{Created: 0, Found: 1, Retossed: 1}, ComputeStats(events, "Bob"))
	assert.Equal(t, UserStats{Created: 0, Found: 1, Retossed: 0}, ComputeStats(events, "Carol"))
}

func TestComputeStats_OnlyGloballyFirstCastAwayIsCreation(t *testing.T) {
	// Alice casts the bottle twice; only the first one is the creation.
	events := []domain.BottleEvent{
		castAway("c1", "b1", "Alice", "m", at(0)),
		castAway("c2", "b1", "Alice", "", at(10)),
		castAway("c3", "b1", "Bob", "", at(20)),
	}

	assert.Equal(t, UserStats{Created: 1, Retossed: 1}, ComputeStats(events, "Alice"))
	assert.Equal(t, UserStats{Retossed: 1}, ComputeStats(events, "Bob"))
}

func TestComputeStats_SentinelAndReplyBothCountAsFound(t *testing.T) {
	events := []domain.BottleEvent{
		castAway("c1", "b1", "A", "m", at(0)),
		sentinel("f1", "b1", "Bob", at(10)),
		reply("f2", "b1", "Bob", "hello", at(20)),
	}

	assert.Equal(t, UserStats{Found: 2}, ComputeStats(events, "Bob"))
}

func TestComputeStats_Conservation(t *testing.T) {
	// For a bottle with N cast-aways, created+retossed across all users
	// sums to N, and exactly one attribution is ever a creation.
	events := []domain.BottleEvent{
		castAway("c1", "b1", "Alice", "m", at(0)),
		castAway("c2", "b1", "Bob", "", at(10)),
		castAway("c3", "b1", "Carol", "", at(20)),
		castAway("c4", "b1", "Bob", "", at(30)),
	}

	totalCreated, totalRetossed := 0, 0
	for _, user := range []string{"Alice", "Bob", "Carol"} {
		s := ComputeStats(events, user)
		totalCreated += s.Created
		totalRetossed += s.Retossed
	}
	assert.Equal(t, 1, totalCreated)
	assert.Equal(t, 4, totalCreated+totalRetossed)
}

func TestComputeStats_SpansBottles(t *testing.T) {
	events := []domain.BottleEvent{
		castAway("c1", "b1", "Alice", "m", at(0)),
		castAway("c2", "b2", "Alice", "m", at(10)),
		found("f1", "b1", "Alice", "", at(20)),
	}

	assert.Equal(t, UserStats{Created: 2, Found: 1}, ComputeStats(events, "Alice"))
}

func TestComputeStats_EmptyUsername(t *testing.T) {
	_, events := scenarioB1()
	assert.Equal(t, UserStats{}, ComputeStats(events, ""))
}

func TestComputeStats_MalformedEventsSkipped(t *testing.T) {
	events := []domain.BottleEvent{
		castAway("c1", "b1", "Alice", "m", at(0)),
		{ID: "x1", BottleID: "b1", EventType: domain.EventType("junk"), TosserName: strPtr("Alice"), CreatedAt: at(5)},
	}

	assert.Equal(t, UserStats{Created: 1}, ComputeStats(events, "Alice"))
}

func TestComputeStats_Idempotent(t *testing.T) {
	_, events := scenarioB1()
	assert.Equal(t, ComputeStats(events, "Bob"), ComputeStats(events, "Bob"))
}
