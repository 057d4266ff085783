package projection

import (
	"sort"
	"time"

	"github.com/adrift-app/adrift/internal/domain"
)

// JourneyStep is one leg of a bottle's journey: a cast_away event plus the
// replies that arrived during its epoch, the half-open window between this
// cast-away and the next one.
type JourneyStep struct {
	Ordinal   int       `json:"ordinal"`
	Message   string    `json:"message"`
	Photo     *string   `json:"photo,omitempty"`
	ActorName string    `json:"actor_name"`
	Timestamp time.Time `json:"timestamp"`
	Replies   []Reply   `json:"replies"`
}

// Reply is one found event with user content, attributed to a journey step
type Reply struct {
	EventID   string    `json:"event_id"`
	Message   string    `json:"message"`
	ActorName string    `json:"actor_name"`
	Photo     *string   `json:"photo,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildJourney turns one bottle's flat event list into its ordered journey,
// oldest step first. The bottle's own cached fields serve as fallback for
// the first step and as the whole story for legacy bottles whose events
// were never logged.
func BuildJourney(bottle domain.Bottle, events []domain.BottleEvent) ([]JourneyStep, error) {
	sorted := sortedEventsAscending(events)

	var castAways, founds []domain.BottleEvent
	for _, e := range sorted {
		switch e.EventType {
		case domain.EventTypeCastAway:
			castAways = append(castAways, e)
		case domain.EventTypeFound:
			founds = append(founds, e)
		}
	}

	if len(castAways) == 0 {
		step, err := syntheticStep(bottle, founds)
		if err != nil {
			return nil, err
		}
		return []JourneyStep{step}, nil
	}

	steps := make([]JourneyStep, 0, len(castAways))
	for i, cast := range castAways {
		step := JourneyStep{
			Ordinal:   i + 1,
			Message:   cast.MessageText(),
			Photo:     cast.Photo,
			ActorName: cast.ActorName(),
			Timestamp: cast.CreatedAt,
		}

		if i == 0 {
			// The bottle row is authoritative for the creation step when the
			// event lacks content: covers rows written before event logging.
			if step.Message == "" {
				step.Message = bottle.Message
			}
			if step.Photo == nil {
				step.Photo = bottle.Photo
			}
			step.ActorName = creatorName(bottle, cast)
			if step.Message == "" {
				return nil, domain.ErrMissingMessage
			}
		}

		// Epoch [t_i, t_i+1); the last epoch extends forever. The first epoch
		// opens at the beginning of time so any stray early found event still
		// lands somewhere.
		var from, until time.Time
		if i > 0 {
			from = cast.CreatedAt
		}
		if i+1 < len(castAways) {
			until = castAways[i+1].CreatedAt
		}

		step.Replies = repliesInEpoch(founds, from, until)
		steps = append(steps, step)
	}

	return steps, nil
}

// syntheticStep builds the single implicit step for a bottle with no
// cast_away events, from the bottle's own cached fields
func syntheticStep(bottle domain.Bottle, founds []domain.BottleEvent) (JourneyStep, error) {
	if bottle.Message == "" {
		return JourneyStep{}, domain.ErrMissingMessage
	}
	return JourneyStep{
		Ordinal:   1,
		Message:   bottle.Message,
		Photo:     bottle.Photo,
		ActorName: creatorName(bottle, domain.BottleEvent{}),
		Timestamp: bottle.CreatedAt,
		Replies:   repliesInEpoch(founds, time.Time{}, time.Time{}),
	}, nil
}

// creatorName resolves the display name for a bottle's creation step
func creatorName(bottle domain.Bottle, cast domain.BottleEvent) string {
	if bottle.CreatorName != nil && *bottle.CreatorName != "" {
		return *bottle.CreatorName
	}
	if name := cast.ActorName(); name != "" {
		return name
	}
	return domain.OriginalCreatorLabel
}

// repliesInEpoch collects found events inside [from, until), newest first.
// Zero from means the epoch opens at the beginning of time; zero until means
// it never closes. System sentinels are not user content and are dropped.
func repliesInEpoch(founds []domain.BottleEvent, from, until time.Time) []Reply {
	replies := []Reply{}
	for _, e := range founds {
		if !from.IsZero() && e.CreatedAt.Before(from) {
			continue
		}
		if !until.IsZero() && !e.CreatedAt.Before(until) {
			continue
		}
		if e.IsFoundSentinel() {
			continue
		}
		replies = append(replies, Reply{
			EventID:   e.ID,
			Message:   domain.StripReplyMarker(e.MessageText()),
			ActorName: e.ActorName(),
			Photo:     e.Photo,
			Timestamp: e.CreatedAt,
		})
	}

	// Most recent reaction surfaces first. Deliberate UX ordering, not an
	// accident: do not flip to chronological.
	sort.SliceStable(replies, func(i, j int) bool {
		if !replies[i].Timestamp.Equal(replies[j].Timestamp) {
			return replies[i].Timestamp.After(replies[j].Timestamp)
		}
		return replies[i].EventID > replies[j].EventID
	})
	return replies
}
