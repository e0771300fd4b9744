package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubSubscribePublish(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	first, cancelFirst, err := hub.Subscribe("trn-1")
	require.NoError(t, err)
	defer cancelFirst()
	second, cancelSecond, err := hub.Subscribe("trn-1")
	require.NoError(t, err)
	defer cancelSecond()

	hub.Publish(Event{Type: EventRoundAdvanced, TournamentID: "trn-1"})

	for _, ch := range []<-chan Event{first, second} {
		e := nextEvent(t, ch)
		assert.Equal(t, EventRoundAdvanced, e.Type)
		assert.Equal(t, "trn-1", e.TournamentID)
	}
}

func TestHubRoomsAreIsolated(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	mine, cancelMine, err := hub.Subscribe("trn-1")
	require.NoError(t, err)
	defer cancelMine()
	other, cancelOther, err := hub.Subscribe("trn-2")
	require.NoError(t, err)
	defer cancelOther()

	hub.Publish(Event{Type: EventResultRecorded, TournamentID: "trn-1"})

	assert.Len(t, mine, 1)
	assert.Empty(t, other)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	// No room exists for this tournament; the event just evaporates.
	hub.Publish(Event{Type: EventTournamentCreated, TournamentID: "trn-unseen"})
}

func TestHubCancel(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	events, cancel, err := hub.Subscribe("trn-1")
	require.NoError(t, err)

	cancel()

	_, open := <-events
	assert.False(t, open)

	// Cancelling twice is a no-op, and later publishes reach nobody.
	cancel()
	hub.Publish(Event{Type: EventResultRecorded, TournamentID: "trn-1"})
}

func TestHubCancelKeepsSiblingsSubscribed(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	leaving, cancelLeaving, err := hub.Subscribe("trn-1")
	require.NoError(t, err)
	staying, cancelStaying, err := hub.Subscribe("trn-1")
	require.NoError(t, err)
	defer cancelStaying()

	cancelLeaving()
	hub.Publish(Event{Type: EventRoundAdvanced, TournamentID: "trn-1"})

	assert.Empty(t, leaving)
	e := nextEvent(t, staying)
	assert.Equal(t, EventRoundAdvanced, e.Type)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	events, cancel, err := hub.Subscribe("trn-1")
	require.NoError(t, err)
	defer cancel()

	// Nobody drains the channel, so everything past the buffer is dropped
	// rather than blocking the publisher.
	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(Event{Type: EventResultRecorded, TournamentID: "trn-1"})
	}

	assert.Len(t, events, subscriberBuffer)

	done := make(chan struct{})
	go func() {
		hub.Publish(Event{Type: EventResultRecorded, TournamentID: "trn-1"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}
