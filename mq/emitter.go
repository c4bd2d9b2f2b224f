package mq

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// BookingEventsChannel carries availability changes between service instances.
const BookingEventsChannel = "booking-events"

// BookingEvent tells cabin page viewers that the cabin's booked dates changed.
type BookingEvent struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	CabinID   string `json:"cabinId"`
	BookingID string `json:"bookingId,omitempty"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// NewAvailabilityEvent builds the event sent for any booking write on a cabin.
func NewAvailabilityEvent(action, cabinID, bookingID string) BookingEvent {
	return BookingEvent{Type: "availability", Action: action, CabinID: cabinID, BookingID: bookingID}
}

// Publisher is anything that can fan a booking event out.
type Publisher interface {
	Emit(ctx context.Context, event BookingEvent)
}

var _ Publisher = (*Emitter)(nil)

// Emitter publishes booking events to Redis.
type Emitter struct {
	conn *redis.Client
}

func NewEmitter(conn *redis.Client) *Emitter {
	return &Emitter{conn: conn}
}

// Emit publishes the event; failures are logged and swallowed because the write
// that triggered the event already succeeded.
func (e *Emitter) Emit(ctx context.Context, event BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := e.conn.Publish(ctx, BookingEventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartBookingWorker relays every event on the channel to deliver until ctx ends.
func StartBookingWorker(ctx context.Context, conn *redis.Client, deliver func(BookingEvent)) {
	sub := conn.Subscribe(ctx, BookingEventsChannel)
	defer sub.Close()
	ch := sub.Channel()

	log.Println("[BookingWorker] Listening for booking events...")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event BookingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[BookingWorker] Failed to parse event: %v", err)
				continue
			}
			deliver(event)
		}
	}
}
