package services

import (
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type EventType string

const (
	EventTournamentCreated   EventType = "tournament_created"
	EventResultRecorded      EventType = "result_recorded"
	EventRoundAdvanced       EventType = "round_advanced"
	EventTournamentCompleted EventType = "tournament_completed"
	EventTournamentDeleted   EventType = "tournament_deleted"
)

// Event is the notification fanned out to subscribers of one tournament.
type Event struct {
	Type         EventType   `json:"type"`
	TournamentID string      `json:"tournament_id"`
	Payload      interface{} `json:"payload,omitempty"`
}

// subscriberBuffer is each subscriber's channel capacity. Publish never
// blocks; events beyond the buffer are dropped.
const subscriberBuffer = 16

// Hub fans tournament events out to in-process subscribers. Rooms are keyed
// by tournament ID and vanish when their last subscriber leaves.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]chan Event
	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[string]chan Event),
		logger: logger,
	}
}

// Subscribe registers interest in one tournament's events. The returned
// cancel func removes the subscription and closes the channel; it is safe
// to call more than once.
func (h *Hub) Subscribe(tournamentID string) (<-chan Event, func(), error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate subscriber id: %w", err)
	}

	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	room, ok := h.rooms[tournamentID]
	if !ok {
		room = make(map[string]chan Event)
		h.rooms[tournamentID] = room
	}
	room[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		room, ok := h.rooms[tournamentID]
		if !ok {
			return
		}
		if sub, ok := room[id]; ok {
			delete(room, id)
			close(sub)
		}
		if len(room) == 0 {
			delete(h.rooms, tournamentID)
		}
	}

	return ch, cancel, nil
}

// Publish delivers the event to every subscriber of its tournament. Sends
// never block: a subscriber that stopped draining loses events beyond its
// buffer.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[event.TournamentID]
	if !ok {
		return
	}
	for id, ch := range room {
		select {
		case ch <- event:
		default:
			h.logger.Warn().
				Str("tournament_id", event.TournamentID).
				Str("subscriber_id", id).
				Str("event_type", string(event.Type)).
				Msg("subscriber buffer full, dropping event")
		}
	}
}
