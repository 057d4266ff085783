package projection

import (
	"fmt"
	"sort"
	"time"

	"github.com/adrift-app/adrift/internal/domain"
)

// Conversation is one reply threaded against its enclosing hop: the
// cast-away context it answers plus the reply content itself. The model
// currently emits one conversation per reply rather than merging replies
// within a hop; ReplyCount is therefore always 1.
type Conversation struct {
	ID              string    `json:"id"`
	BottleID        string    `json:"bottle_id"`
	HopNumber       int       `json:"hop_number"`
	OriginalMessage string    `json:"original_message"`
	OriginalAuthor  string    `json:"original_author"`
	OriginalPhoto   *string   `json:"original_photo,omitempty"`
	LastMessage     string    `json:"last_message"`
	LastAuthor      string    `json:"last_author"`
	LastTimestamp   time.Time `json:"last_timestamp"`
	ReplyCount      int       `json:"reply_count"`
}

// BuildConversations finds every reply event in the snapshot, locates its
// enclosing cast-away context, and emits one conversation per reply, most
// recent reply first.
func BuildConversations(bottles []domain.Bottle, events []domain.BottleEvent) []Conversation {
	bottleByID := make(map[string]domain.Bottle, len(bottles))
	for _, b := range bottles {
		bottleByID[b.ID] = b
	}

	conversations := []Conversation{}
	for bottleID, bottleEvents := range groupEventsByBottle(sortedEventsAscending(events)) {
		bottle := bottleByID[bottleID]
		for i, e := range bottleEvents {
			if !e.IsReply() {
				continue
			}
			conversations = append(conversations, threadReply(bottle, bottleEvents, i))
		}
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		if !conversations[i].LastTimestamp.Equal(conversations[j].LastTimestamp) {
			return conversations[i].LastTimestamp.After(conversations[j].LastTimestamp)
		}
		return conversations[i].ID < conversations[j].ID
	})
	return conversations
}

// threadReply builds the conversation record for the reply at index i of a
// bottle's ascending event list
func threadReply(bottle domain.Bottle, events []domain.BottleEvent, i int) Conversation {
	reply := events[i]

	// Nearest preceding found event that is itself plain user content, if any.
	// The backward walk for the cast-away context resumes from there.
	anchor := i
	for j := i - 1; j >= 0; j-- {
		if events[j].EventType == domain.EventTypeFound && !events[j].IsReply() {
			anchor = j
			break
		}
	}

	// Nearest preceding cast_away from the anchor; hop number counts every
	// cast-away at or before the reply's position.
	castIdx := -1
	for j := anchor - 1; j >= 0; j-- {
		if events[j].EventType == domain.EventTypeCastAway {
			castIdx = j
			break
		}
	}
	hop := 0
	firstCastIdx := -1
	for j := 0; j <= i; j++ {
		if events[j].EventType == domain.EventTypeCastAway {
			hop++
			if firstCastIdx < 0 {
				firstCastIdx = j
			}
		}
	}

	conv := Conversation{
		ID:            fmt.Sprintf("%s-hop%d", bottle.ID, hop),
		BottleID:      bottle.ID,
		HopNumber:     hop,
		LastMessage:   domain.StripReplyMarker(reply.MessageText()),
		LastAuthor:    reply.ActorName(),
		LastTimestamp: reply.CreatedAt,
		ReplyCount:    1,
	}
	if conv.BottleID == "" {
		conv.BottleID = reply.BottleID
		conv.ID = fmt.Sprintf("%s-hop%d", reply.BottleID, hop)
	}

	if castIdx < 0 {
		// No cast-away precedes the reply: synthetic hop-0 context from the
		// bottle's cached creation fields.
		conv.OriginalMessage = bottle.Message
		conv.OriginalAuthor = creatorName(bottle, domain.BottleEvent{})
		conv.OriginalPhoto = bottle.Photo
		return conv
	}

	cast := events[castIdx]
	conv.OriginalMessage = cast.MessageText()
	conv.OriginalAuthor = cast.ActorName()
	conv.OriginalPhoto = cast.Photo
	if castIdx == firstCastIdx {
		// Creation hop: the bottle row backs missing event content, same
		// fallback the journey builder applies to its first step.
		if conv.OriginalMessage == "" {
			conv.OriginalMessage = bottle.Message
		}
		if conv.OriginalPhoto == nil {
			conv.OriginalPhoto = bottle.Photo
		}
		conv.OriginalAuthor = creatorName(bottle, cast)
	}
	return conv
}
