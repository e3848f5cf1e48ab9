// Package projection builds local read models from observed events.
// Projections never emit events or influence core state transitions.
package projection

import (
	"context"
	"sync"
	"time"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/domain/event"
)

// ChannelActivity is the per-channel read model: message volume and the
// moment of the last append.
type ChannelActivity struct {
	Messages   uint64
	LastSender domain.UserID
	LastAt     time.Time
}

// Activity aggregates chat traffic per channel. It is fed by the engine's
// fan-out goroutine and read by the debug server, hence the mutex.
type Activity struct {
	mu       sync.Mutex
	channels map[domain.ChannelID]*ChannelActivity
	total    uint64
}

func NewActivity() *Activity {
	return &Activity{channels: make(map[domain.ChannelID]*ChannelActivity)}
}

func (a *Activity) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessageAppended)
	if !ok {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	activity, ok := a.channels[evt.ChannelID]
	if !ok {
		activity = &ChannelActivity{}
		a.channels[evt.ChannelID] = activity
	}
	activity.Messages++
	activity.LastSender = evt.SenderID
	activity.LastAt = evt.At
	a.total++
	return nil
}

// Channel returns a copy of one channel's activity.
func (a *Activity) Channel(id domain.ChannelID) (ChannelActivity, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	activity, ok := a.channels[id]
	if !ok {
		return ChannelActivity{}, false
	}
	return *activity, true
}

// TotalMessages reports the number of appends observed across channels.
func (a *Activity) TotalMessages() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}
