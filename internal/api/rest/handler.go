package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/adrift-app/adrift/internal/api/rest/dto"
	"github.com/adrift-app/adrift/internal/domain"
	"github.com/adrift-app/adrift/internal/logger"
	"github.com/adrift-app/adrift/internal/messaging"
	"github.com/adrift-app/adrift/internal/projection"
	"github.com/adrift-app/adrift/internal/snapshot"
	"github.com/adrift-app/adrift/internal/store"
	"github.com/adrift-app/adrift/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CreateBottle creates a bottle and appends its first cast_away event
	// POST /api/v1/bottles
	CreateBottle(c *gin.Context)

	// AppendEvent appends one event to an existing bottle's log
	// POST /api/v1/bottles/:id/events
	AppendEvent(c *gin.Context)

	// GetJourney reconstructs a bottle's hop-by-hop story from its events
	// GET /api/v1/bottles/:id/journey
	GetJourney(c *gin.Context)

	// GetTrail returns classified, deconflicted map markers for every event
	// GET /api/v1/trail?filter=<all|created|found|retossed>&username=<name>
	GetTrail(c *gin.Context)

	// GetUserStats recomputes one user's counters from the full event log
	// GET /api/v1/users/:username/stats?verify=<bool>
	GetUserStats(c *gin.Context)

	// GetConversations returns one conversation thread per reply
	// GET /api/v1/conversations
	GetConversations(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store     store.Store
	snapshots snapshot.Source
	publisher messaging.Publisher
}

// NewHandler creates a new REST API handler
func NewHandler(s store.Store, snapshots snapshot.Source, publisher messaging.Publisher) Handler {
	return &handler{
		store:     s,
		snapshots: snapshots,
		publisher: publisher,
	}
}

// CreateBottle creates a bottle row and its globally first cast_away event
// in one transaction
func (h *handler) CreateBottle(c *gin.Context) {
	var req dto.CreateBottleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	now := time.Now().UTC()
	bottle := &schema.Bottle{
		ID:          uuid.NewString(),
		Status:      domain.BottleStatusAdrift,
		Message:     req.Message,
		Photo:       req.Photo,
		Password:    req.Password,
		Lat:         req.Lat,
		Lon:         req.Lon,
		CreatorName: req.TosserName,
		TosserName:  req.TosserName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	event := &schema.BottleEvent{
		ID:         ulid.Make().String(),
		BottleID:   bottle.ID,
		EventType:  domain.EventTypeCastAway,
		Lat:        req.Lat,
		Lon:        req.Lon,
		Message:    &req.Message,
		Photo:      req.Photo,
		TosserName: req.TosserName,
		Raw:        rawPayload(req),
		CreatedAt:  now,
	}

	// A fresh bottle id means this cast_away is globally first, so the
	// actor's created counter is the one to bump.
	var delta *store.StatDelta
	if req.TosserName != nil && *req.TosserName != "" {
		delta = &store.StatDelta{Username: *req.TosserName, Field: store.StatFieldCreated}
	}

	if err := h.store.AppendEvent(c.Request.Context(), event, bottle, delta); err != nil {
		respondInternalError(c, err, "Failed to create bottle")
		return
	}

	h.publish(c, event)

	c.JSON(http.StatusCreated, dto.CreateBottleResponse{
		Bottle: dto.NewBottleResponse(bottle.ToDomain()),
		Event:  dto.NewEventResponse(event.ToDomain()),
	})
}

// AppendEvent appends one cast_away or found event to an existing bottle
func (h *handler) AppendEvent(c *gin.Context) {
	bottleID := c.Param("id")
	if bottleID == "" {
		respondBadRequest(c, "Bottle ID is required")
		return
	}

	var req dto.AppendEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	row, err := h.store.GetBottleByID(c.Request.Context(), bottleID)
	if err != nil {
		respondInternalError(c, err, "Failed to load bottle")
		return
	}
	if row == nil {
		respondNotFound(c, "Bottle not found")
		return
	}

	if row.Password != req.Password {
		respondForbidden(c, "Invalid password", domain.ErrInvalidPassword.Error())
		return
	}

	prior, err := h.store.ListEvents(c.Request.Context(), bottleID)
	if err != nil {
		respondInternalError(c, err, "Failed to load events")
		return
	}
	priorEvents := make([]domain.BottleEvent, 0, len(prior))
	for _, e := range prior {
		priorEvents = append(priorEvents, e.ToDomain())
	}

	now := time.Now().UTC()
	event := &schema.BottleEvent{
		ID:         ulid.Make().String(),
		BottleID:   bottleID,
		EventType:  req.Action,
		Lat:        req.Lat,
		Lon:        req.Lon,
		Message:    req.Message,
		Photo:      req.Photo,
		TosserName: req.TosserName,
		FinderName: req.FinderName,
		Raw:        rawPayload(req),
		CreatedAt:  now,
	}

	domainEvent := event.ToDomain()
	class := projection.Classify(projection.ReduceBottle(priorEvents), domainEvent)
	var delta *store.StatDelta
	if actor := domainEvent.ActorName(); actor != "" {
		delta = &store.StatDelta{Username: actor, Field: statField(class)}
	}

	applyEventToBottle(row, &domainEvent, now)

	if err := h.store.AppendEvent(c.Request.Context(), event, row, delta); err != nil {
		respondInternalError(c, err, "Failed to append event")
		return
	}

	h.publish(c, event)

	c.JSON(http.StatusCreated, dto.NewEventResponse(domainEvent))
}

// GetJourney reconstructs a bottle's journey from its event log
func (h *handler) GetJourney(c *gin.Context) {
	bottleID := c.Param("id")
	if bottleID == "" {
		respondBadRequest(c, "Bottle ID is required")
		return
	}

	bottle, events, err := h.snapshots.LoadBottle(c.Request.Context(), bottleID)
	if err != nil {
		respondInternalError(c, err, "Failed to load bottle")
		return
	}
	if bottle == nil && len(events) == 0 {
		respondNotFound(c, "Bottle not found")
		return
	}
	if bottle == nil {
		// Events without a cached row still tell the story.
		bottle = &domain.Bottle{ID: bottleID}
	}

	steps, err := projection.BuildJourney(*bottle, events)
	if err != nil {
		respondInternalError(c, err, "Failed to build journey",
			zap.String("bottle_id", bottleID))
		return
	}

	c.JSON(http.StatusOK, dto.JourneyResponse{
		BottleID: bottleID,
		Steps:    steps,
	})
}

// GetTrail returns map markers for every event in the log
func (h *handler) GetTrail(c *gin.Context) {
	queryParams, err := ParseTrailQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	snap, err := h.snapshots.Load(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to load snapshot")
		return
	}

	markers := projection.BuildTrail(snap.Bottles, snap.Events, projection.TrailOptions{
		Filter:   queryParams.Filter,
		Username: queryParams.Username,
	})

	c.JSON(http.StatusOK, dto.TrailResponse{Markers: markers})
}

// GetUserStats recomputes one user's counters from scratch and optionally
// compares them with the write-path incremental counter
func (h *handler) GetUserStats(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		respondBadRequest(c, "Username is required")
		return
	}

	queryParams, err := ParseStatsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	snap, err := h.snapshots.Load(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to load snapshot")
		return
	}

	response := dto.StatsResponse{
		Username: username,
		Stats:    projection.ComputeStats(snap.Events, username),
	}

	if queryParams.Verify {
		counter, err := h.store.GetUserStatCounter(c.Request.Context(), username)
		if err != nil {
			respondInternalError(c, err, "Failed to load user stat counter")
			return
		}

		cached := projection.UserStats{}
		if counter != nil {
			cached = projection.UserStats{
				Created:  counter.Created,
				Found:    counter.Found,
				Retossed: counter.Retossed,
			}
		}
		divergent := cached != response.Stats
		response.Counter = &cached
		response.Divergent = &divergent

		if divergent {
			logger.Warn("User stat counter diverges from recomputation",
				zap.String("username", username),
				zap.Any("counter", cached),
				zap.Any("recomputed", response.Stats),
			)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetConversations returns every reply threaded into its own conversation
func (h *handler) GetConversations(c *gin.Context) {
	snap, err := h.snapshots.Load(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to load snapshot")
		return
	}

	conversations := projection.BuildConversations(snap.Bottles, snap.Events)

	c.JSON(http.StatusOK, dto.ConversationsResponse{Conversations: conversations})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "adrift-api",
	})
}

// publish pushes the appended event to the broker. A publish failure never
// fails the write; the event is already durable in the log.
func (h *handler) publish(c *gin.Context, event *schema.BottleEvent) {
	if h.publisher == nil {
		return
	}
	domainEvent := event.ToDomain()
	if err := h.publisher.PublishEvent(c.Request.Context(), &domainEvent); err != nil {
		logger.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("bottle_id", event.BottleID),
		)
	}
}

// applyEventToBottle refreshes the cached bottle row from the event being
// appended, mirroring what a replay of the full log would produce
func applyEventToBottle(row *schema.Bottle, e *domain.BottleEvent, now time.Time) {
	row.Lat = e.Lat
	row.Lon = e.Lon
	row.UpdatedAt = now

	switch e.EventType {
	case domain.EventTypeCastAway:
		row.Status = domain.BottleStatusAdrift
		if e.Message != nil && *e.Message != "" {
			row.Message = *e.Message
		}
		if e.Photo != nil {
			row.Photo = e.Photo
		}
		if e.TosserName != nil && *e.TosserName != "" {
			row.TosserName = e.TosserName
		}
	case domain.EventTypeFound:
		row.Status = domain.BottleStatusFound
	}
}

// statField maps an event classification to the counter it bumps
func statField(class projection.Classification) store.StatField {
	switch class {
	case projection.ClassificationCreated:
		return store.StatFieldCreated
	case projection.ClassificationRetossed:
		return store.StatFieldRetossed
	default:
		return store.StatFieldFound
	}
}

// rawPayload keeps the original request body on the event row for auditing
func rawPayload(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
