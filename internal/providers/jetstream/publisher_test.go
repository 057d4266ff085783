package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrift-app/adrift/internal/adapter"
	"github.com/adrift-app/adrift/internal/domain"
	"github.com/adrift-app/adrift/internal/mocks"
)

func strPtr(s string) *string {
	return &s
}

func testPublisher(t *testing.T) (*mocks.MockJetStream, *mocks.MockNatsConn, *gomock.Controller, *publisher) {
	ctrl := gomock.NewController(t)
	js := mocks.NewMockJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nc, js, nil)

	p, err := NewPublisher(Config{
		URL:            "nats://localhost:4222",
		StreamName:     "BOTTLE_EVENTS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "test",
	}, natsJS, adapter.NewJSON())
	require.NoError(t, err)

	return js, nc, ctrl, p.(*publisher)
}

func TestPublishEvent_SubjectAndPayload(t *testing.T) {
	js, _, ctrl, p := testPublisher(t)
	defer ctrl.Finish()

	event := &domain.BottleEvent{
		ID:         "01JABCDEF0123456789ABCDEFX",
		BottleID:   "b1",
		EventType:  domain.EventTypeCastAway,
		Message:    strPtr("hello"),
		Lat:        10,
		Lon:        20,
		TosserName: strPtr("Alice"),
		CreatedAt:  time.Now().UTC(),
	}

	js.EXPECT().
		Publish(gomock.Any(), "events.bottle.cast_away", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var got domain.BottleEvent
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, event.ID, got.ID)
			assert.Equal(t, event.BottleID, got.BottleID)
			return &jetstream.PubAck{Stream: "BOTTLE_EVENTS"}, nil
		})

	assert.NoError(t, p.PublishEvent(context.Background(), event))
}

func TestPublishEvent_FoundSubject(t *testing.T) {
	js, _, ctrl, p := testPublisher(t)
	defer ctrl.Finish()

	event := &domain.BottleEvent{
		ID:         "e1",
		BottleID:   "b1",
		EventType:  domain.EventTypeFound,
		FinderName: strPtr("Bob"),
		CreatedAt:  time.Now().UTC(),
	}

	js.EXPECT().
		Publish(gomock.Any(), "events.bottle.found", gomock.Any()).
		Return(&jetstream.PubAck{Stream: "BOTTLE_EVENTS"}, nil)

	assert.NoError(t, p.PublishEvent(context.Background(), event))
}

func TestPublishEvent_PublishError(t *testing.T) {
	js, _, ctrl, p := testPublisher(t)
	defer ctrl.Finish()

	js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("stream unavailable"))

	err := p.PublishEvent(context.Background(), &domain.BottleEvent{
		ID:        "e1",
		BottleID:  "b1",
		EventType: domain.EventTypeCastAway,
		CreatedAt: time.Now().UTC(),
	})
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestClose(t *testing.T) {
	_, nc, ctrl, p := testPublisher(t)
	defer ctrl.Finish()

	nc.EXPECT().Close()
	p.Close()
}
