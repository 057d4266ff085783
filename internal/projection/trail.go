package projection

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/gowebpki/jcs"

	"github.com/adrift-app/adrift/internal/domain"
)

// TrailFilter selects which marker classifications a caller wants
type TrailFilter string

const (
	TrailFilterAll      TrailFilter = "all"
	TrailFilterCreated  TrailFilter = "created"
	TrailFilterFound    TrailFilter = "found"
	TrailFilterRetossed TrailFilter = "retossed"
)

// IsValidTrailFilter checks if a trail filter is valid
func IsValidTrailFilter(filter TrailFilter) bool {
	return filter == TrailFilterAll ||
		filter == TrailFilterCreated ||
		filter == TrailFilterFound ||
		filter == TrailFilterRetossed
}

// TrailOptions narrows the trail to one filter and optionally one user
type TrailOptions struct {
	// Filter keeps only markers of one classification; TrailFilterAll or
	// empty keeps everything
	Filter TrailFilter
	// Username keeps only markers whose acting user matches, when non-empty
	Username string
}

// TrailMarker is one map-displayable point derived from a single event.
// Lat/Lon may carry a deconfliction offset; the source coordinate is never
// mutated.
type TrailMarker struct {
	ID              string         `json:"id"`
	BottleID        string         `json:"bottle_id"`
	EventID         string         `json:"event_id,omitempty"`
	Classification  Classification `json:"classification"`
	Lat             float64        `json:"lat"`
	Lon             float64        `json:"lon"`
	Message         string         `json:"message,omitempty"`
	ActorName       string         `json:"actor_name,omitempty"`
	EventTimestamp  time.Time      `json:"event_timestamp"`
	BottleCreatedAt time.Time      `json:"bottle_created_at"`
}

// deconfliction constants: markers sharing a coordinate rounded to 4 decimal
// places (~11 m) fan out on a polar spiral so all stay visible
const (
	deconflictPrecision = 4
	deconflictAngleStep = 60.0   // degrees per marker within a group
	deconflictRadius    = 0.0008 // coordinate-degree units per marker
)

// BuildTrail turns the global snapshot into classified, geolocated,
// spatially-deconflicted map markers. Filtering runs before deconfliction,
// so offsets are computed only among the markers the active filter keeps;
// layouts legitimately differ per filter.
func BuildTrail(bottles []domain.Bottle, events []domain.BottleEvent, opts TrailOptions) []TrailMarker {
	markers := []TrailMarker{}

	bottleByID := make(map[string]domain.Bottle, len(bottles))
	seen := make(map[string]bool, len(bottles))
	for _, b := range bottles {
		bottleByID[b.ID] = b
	}

	// Walk every event in global chronological order, folding per-bottle
	// state as we go so classification sees each bottle's prior history.
	states := make(map[string]BottleState)
	ordinals := make(map[string]int)
	for _, e := range sortedEventsAscending(events) {
		seen[e.BottleID] = true
		prior := states[e.BottleID]
		states[e.BottleID] = ReduceEvent(prior, e)
		ordinal := ordinals[e.BottleID]
		ordinals[e.BottleID] = ordinal + 1

		class := Classify(prior, e)
		if !matchesFilter(class, opts.Filter) {
			continue
		}
		if opts.Username != "" && e.ActorName() != opts.Username {
			continue
		}

		bottle := bottleByID[e.BottleID]
		markers = append(markers, TrailMarker{
			ID:              markerID(e, ordinal),
			BottleID:        e.BottleID,
			EventID:         e.ID,
			Classification:  class,
			Lat:             e.Lat,
			Lon:             e.Lon,
			Message:         domain.StripReplyMarker(e.MessageText()),
			ActorName:       e.ActorName(),
			EventTimestamp:  e.CreatedAt,
			BottleCreatedAt: bottle.CreatedAt,
		})
	}

	// Legacy bottles with no logged events still get a creation marker from
	// their cached row.
	for _, b := range bottles {
		if seen[b.ID] {
			continue
		}
		if !matchesFilter(ClassificationCreated, opts.Filter) {
			continue
		}
		actor := ""
		if b.CreatorName != nil {
			actor = *b.CreatorName
		}
		if opts.Username != "" && actor != opts.Username {
			continue
		}
		markers = append(markers, TrailMarker{
			ID:              fallbackMarkerID(b.ID, domain.EventTypeCastAway, b.CreatedAt, 0),
			BottleID:        b.ID,
			Classification:  ClassificationCreated,
			Lat:             b.Lat,
			Lon:             b.Lon,
			Message:         b.Message,
			ActorName:       actor,
			EventTimestamp:  b.CreatedAt,
			BottleCreatedAt: b.CreatedAt,
		})
	}

	return deconflict(markers)
}

func matchesFilter(class Classification, filter TrailFilter) bool {
	if filter == "" || filter == TrailFilterAll {
		return true
	}
	return string(class) == string(filter)
}

// markerID builds the marker identity {bottleId}-{eventType}-{eventId},
// unique across a bottle's entire history. Events that never got a stable
// id fall back to a deterministic hash.
func markerID(e domain.BottleEvent, ordinal int) string {
	if e.ID != "" {
		return fmt.Sprintf("%s-%s-%s", e.BottleID, e.EventType, e.ID)
	}
	return fallbackMarkerID(e.BottleID, e.EventType, e.CreatedAt, ordinal)
}

// fallbackMarkerID hashes the marker's identifying facts over canonical
// JSON so legacy markers stay stable across repeated reconstruction runs
func fallbackMarkerID(bottleID string, eventType domain.EventType, timestamp time.Time, ordinal int) string {
	payload, err := json.Marshal(map[string]interface{}{
		"bottle_id":  bottleID,
		"event_type": eventType,
		"timestamp":  timestamp.UTC().Format(time.RFC3339Nano),
		"ordinal":    ordinal,
	})
	if err == nil {
		if canonical, jcsErr := jcs.Transform(payload); jcsErr == nil {
			payload = canonical
		}
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%s-%s-%x", bottleID, eventType, sum[:8])
}

// deconflict fans out markers that share a rounded coordinate. The first
// marker of a group keeps its true position; marker k moves by polar
// displacement angle=k*60deg, radius=0.0008*k.
func deconflict(markers []TrailMarker) []TrailMarker {
	groups := make(map[string]int)
	out := make([]TrailMarker, 0, len(markers))
	for _, m := range markers {
		key := coordinateKey(m.Lat, m.Lon)
		k := groups[key]
		groups[key] = k + 1
		if k > 0 {
			angle := float64(k) * deconflictAngleStep * math.Pi / 180
			radius := deconflictRadius * float64(k)
			m.Lat += radius * math.Cos(angle)
			m.Lon += radius * math.Sin(angle)
		}
		out = append(out, m)
	}
	return out
}

func coordinateKey(lat, lon float64) string {
	return fmt.Sprintf("%.*f,%.*f", deconflictPrecision, lat, deconflictPrecision, lon)
}
