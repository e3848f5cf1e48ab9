package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hwannow/PartyUp/contract"
	"github.com/hwannow/PartyUp/domain/event"
)

// EventFanout broadcasts domain events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering across sinks, durability, or retries. EventFanout is not a
// message broker. It is intended for archiving and projections, not for
// core domain logic.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent,
	sinks []contract.EventSink, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, events: events, sinks: sinks, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fan-out")
			return nil
		}
	}
}

// fanout delivers one event to every sink. A slow or failing sink only
// costs its own timeout; it never blocks session or channel mutations.
func (w *EventFanout) fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event",
				"channel", string(evt.Channel()), "error", err)
		}
		cancel()
	}
}
