package projection

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrift-app/adrift/internal/domain"
)

func TestBuildTrail_Classification(t *testing.T) {
	bottle := domain.Bottle{ID: "b1", Message: "m", CreatedAt: at(0)}
	events := []domain.BottleEvent{
		castAway("c1", "b1", "Alice", "m", at(0)),
		reply("f1", "b1", "Bob", "hey", at(10)),
		castAway("c2", "b1", "Bob", "", at(20)),
		found("f2", "b1", "Carol", "", at(30)),
	}
	// Spread coordinates so deconfliction stays out of the way.
	for i := range events {
		events[i].Lat = float64(i)
		events[i].Lon = float64(i)
	}

	markers := BuildTrail([]domain.Bottle{bottle}, events, TrailOptions{Filter: TrailFilterAll})
	require.Len(t, markers, 4)

	byEvent := make(map[string]TrailMarker)
	for _, m := range markers {
		byEvent[m.EventID] = m
	}
	assert.Equal(t, ClassificationCreated, byEvent["c1"].Classification)
	assert.Equal(t, ClassificationFound, byEvent["f1"].Classification)
	assert.Equal(t, ClassificationRetossed, byEvent["c2"].Classification)
	assert.Equal(t, ClassificationFound, byEvent["f2"].Classification)
}

func TestBuildTrail_EveryFoundEventProducesMarker(t *testing.T) {
	// Sentinels and replies are invisible to journeys/conversations but
	// still show on the map.
	events := []domain.BottleEvent{
		castAway("c1", "b1", "A", "m", at(0)),
		sentinel("f1", "b1", "B", at(10)),
		reply("f2", "b1", "C", "hi", at(20)),
	}
	for i := range events {
		events[i].Lat = float64(i)
	}

	markers := BuildTrail(nil, events, TrailOptions{})
	assert.Len(t, markers, 3)
}

func TestBuildTrail_MarkerIdentity(t *testing.T) {
	events := []domain.BottleEvent{
		castAway("c1", "b1", "A", "m", at(0)),
	}
	markers := BuildTrail(nil, events, TrailOptions{})
	require.Len(t, markers, 1)
	assert.Equal(t, "b1-cast_away-c1", markers[0].ID)
}

func TestBuildTrail_FallbackMarkerIDDeterministic(t *testing.T) {
	legacy := domain.BottleEvent{
		BottleID:  "b1",
		EventType: domain.EventTypeCastAway,
		CreatedAt: at(0),
	}

	first := BuildTrail(nil, []domain.BottleEvent{legacy}, TrailOptions{})
	second := BuildTrail(nil, []domain.BottleEvent{legacy}, TrailOptions{})
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Contains(t, first[0].ID, "b1-cast_away-")
}

func TestBuildTrail_Deconfliction(t *testing.T) {
	// Two events rounding to the same 4-decimal key: second one moves by
	// angle=60deg, radius=0.0008.
	events := []domain.BottleEvent{
		castAway("c1", "b1", "A", "m", at(0)),
		castAway("c2", "b2", "B", "m", at(10)),
	}
	for i := range events {
		events[i].Lat = 48.85661
		events[i].Lon = 2.35222
	}

	markers := BuildTrail(nil, events, TrailOptions{})
	require.Len(t, markers, 2)

	assert.Equal(t, 48.85661, markers[0].Lat)
	assert.Equal(t, 2.35222, markers[0].Lon)

	wantLat := 48.85661 + 0.0008*math.Cos(60*math.Pi/180)
	wantLon := 2.35222 + 0.0008*math.Sin(60*math.Pi/180)
	assert.InDelta(t, wantLat, markers[1].Lat, 1e-12)
	assert.InDelta(t, wantLon, markers[1].Lon, 1e-12)
}

func TestBuildTrail_DeconflictionStability(t *testing.T) {
	// First marker keeps its coordinate; the rest are pairwise distinct and
	// none sits exactly on the shared point.
	const n = 7
	events := make([]domain.BottleEvent, 0, n)
	for i := 0; i < n; i++ {
		e := castAway(fmt.Sprintf("c%d", i), fmt.Sprintf("b%d", i), "A", "m", at(i))
		e.Lat, e.Lon = 10.0, 20.0
		events = append(events, e)
	}

	markers := BuildTrail(nil, events, TrailOptions{})
	require.Len(t, markers, n)
	assert.Equal(t, 10.0, markers[0].Lat)
	assert.Equal(t, 20.0, markers[0].Lon)

	seen := map[string]bool{}
	for _, m := range markers {
		key := fmt.Sprintf("%.10f,%.10f", m.Lat, m.Lon)
		assert.False(t, seen[key], "coordinates must be pairwise distinct")
		seen[key] = true
	}
	for _, m := range markers[1:] {
		assert.False(t, m.Lat == 10.0 && m.Lon == 20.0)
	}
}

func TestBuildTrail_FilterBeforeDeconfliction(t *testing.T) {
	// With the found marker filtered out, the retoss is the second member
	// of its coordinate group instead of the third, so it lands elsewhere
	// than under the all filter. Intentional, not a bug.
	events := []domain.BottleEvent{
		castAway("c1", "b1", "A", "m", at(0)),
		found("f1", "b1", "B", "", at(10)),
		castAway("c2", "b1", "B", "", at(20)),
	}
	for i := range events {
		events[i].Lat, events[i].Lon = 5.0, 5.0
	}

	all := BuildTrail(nil, events, TrailOptions{Filter: TrailFilterAll})
	require.Len(t, all, 3)
	retossAll := all[2]

	filtered := BuildTrail(nil, events, TrailOptions{Filter: TrailFilterRetossed})
	require.Len(t, filtered, 1)
	assert.Equal(t, ClassificationRetossed, filtered[0].Classification)
	// Alone in its group now: keeps the true coordinate.
	assert.Equal(t, 5.0, filtered[0].Lat)
	assert.NotEqual(t, retossAll.Lat, filtered[0].Lat)
}

func TestBuildTrail_UsernameFilter(t *testing.T) {
	events := []domain.BottleEvent{
		castAway("c1", "b1", "Alice", "m", at(0)),
		found("f1", "b1", "Bob", "", at(10)),
	}
	events[1].Lat = 1

	markers := BuildTrail(nil, events, TrailOptions{Username: "Bob"})
	require.Len(t, markers, 1)
	assert.Equal(t, "f1", markers[0].EventID)
}

func TestBuildTrail_ZeroEventBottleGetsCreatedMarker(t *testing.T) {
	bottle := domain.Bottle{
		ID:          "legacy",
		Message:     "hi",
		Lat:         1.5,
		Lon:         2.5,
		CreatorName: strPtr("Alice"),
		CreatedAt:   at(0),
	}

	markers := BuildTrail([]domain.Bottle{bottle}, nil, TrailOptions{})
	require.Len(t, markers, 1)
	assert.Equal(t, ClassificationCreated, markers[0].Classification)
	assert.Equal(t, "legacy", markers[0].BottleID)
	assert.Equal(t, "hi", markers[0].Message)
	assert.Empty(t, markers[0].EventID)

	// Hidden entirely when the filter excludes creations.
	none := BuildTrail([]domain.Bottle{bottle}, nil, TrailOptions{Filter: TrailFilterFound})
	assert.Empty(t, none)
}

func TestBuildTrail_Idempotent(t *testing.T) {
	bottle, events := scenarioB1()
	first := BuildTrail([]domain.Bottle{bottle}, events, TrailOptions{})
	second := BuildTrail([]domain.Bottle{bottle}, events, TrailOptions{})
	assert.Equal(t, first, second)
}
