package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/hwannow/PartyUp/contract"
	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/domain/event"
	"github.com/hwannow/PartyUp/runtime/workers"
)

// Engine wires the registry, the event pipeline, and the supervisor
// together. It orchestrates without owning business rules: sessions and
// channels decide, the engine only moves events to sinks.
type Engine struct {
	log         *slog.Logger
	registry    *Registry
	supervisor  contract.ISupervisor
	events      chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEngine(log *slog.Logger, supervisor contract.ISupervisor, catalog domain.Catalog,
	bufferSize int, sinkTimeout time.Duration) *Engine {
	events := make(chan event.DomainEvent, bufferSize)
	return &Engine{
		log:         log,
		registry:    NewRegistry(catalog, events, log),
		supervisor:  supervisor,
		events:      events,
		sinkTimeout: sinkTimeout,
	}
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

// AddSinks registers event consumers. Must be called before Start.
func (e *Engine) AddSinks(sinks ...contract.EventSink) {
	e.sinks = append(e.sinks, sinks...)
}

// Start launches the supervised fan-out pipeline and returns. The
// supervisor keeps the pipeline alive until the context is canceled.
func (e *Engine) Start(ctx context.Context) {
	fanout := workers.NewEventFanout(e.log, e.events, e.sinks, e.sinkTimeout)
	e.supervisor.Add(fanout)

	e.log.Info("Starting engine", "sinks", len(e.sinks))
	go e.supervisor.Run(ctx)
}

// Stop cancels the supervised workers. Pending events still buffered in
// the channel are dropped; the in-memory channels remain the ordering
// authority, so nothing user-visible is lost.
func (e *Engine) Stop() {
	e.log.Info("Requesting engine shutdown")
	e.supervisor.Stop()
}

// Stats feeds the debug inspect page.
func (e *Engine) Stats() map[string]any {
	return map[string]any{
		"Parties": e.registry.PartyCount(),
		"Members": e.registry.MemberCount(),
		"Time":    time.Now().UTC().Format(time.RFC822),
	}
}
