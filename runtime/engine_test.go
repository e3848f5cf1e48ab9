package runtime

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/domain/event"
	"github.com/hwannow/PartyUp/runtime/workers"
)

type collectingSink struct {
	mu     sync.Mutex
	events []event.DomainEvent
	notify chan struct{}
}

func newCollectingSink() *collectingSink {
	return &collectingSink{notify: make(chan struct{}, 64)}
}

func (s *collectingSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
	s.notify <- struct{}{}
	return nil
}

func (s *collectingSink) await(t *testing.T, n int) []event.DomainEvent {
	t.Helper()
	for {
		s.mu.Lock()
		seen := append([]event.DomainEvent(nil), s.events...)
		s.mu.Unlock()
		if len(seen) >= n {
			return seen
		}
		select {
		case <-s.notify:
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d events, got %d", n, len(seen))
		}
	}
}

func TestEngine_EventsReachSinks(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	engine := NewEngine(log, workers.NewSupervisor(log, 0), domain.DefaultCatalog(), 64, time.Second)

	sink := newCollectingSink()
	engine.AddSinks(sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine.Start(ctx)
	defer engine.Stop()

	party, err := engine.Registry().Create(domain.PartyCreateRequest{
		Title:      "ranked squad",
		Game:       "Valorant",
		Genre:      "FPS",
		MaxMembers: 5,
		Visibility: domain.Public,
	}, host)
	req.NoError(err)

	session, err := engine.Registry().Session(party.ID)
	req.NoError(err)
	req.NoError(session.Join(alice, ""))

	channel, err := engine.Registry().Channel(domain.PartyChannelID(party.ID))
	req.NoError(err)
	msg := channel.Append(alice, "hello")

	events := sink.await(t, 2)
	joined, ok := events[0].(event.MemberJoined)
	req.True(ok)
	req.Equal(alice, joined.UserID)

	appended, ok := events[1].(event.MessageAppended)
	req.True(ok)
	req.Equal(msg.Seq, appended.Seq)
	req.Equal("hello", appended.Body)
}

func TestEngine_Stats(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	engine := NewEngine(log, workers.NewSupervisor(log, 0), domain.DefaultCatalog(), 64, time.Second)

	_, err := engine.Registry().Create(domain.PartyCreateRequest{
		Title:      "duo queue",
		Game:       "League of Legends",
		Genre:      "AOS",
		MaxMembers: 2,
		Visibility: domain.Public,
	}, host)
	req.NoError(err)

	stats := engine.Stats()
	req.Equal(1, stats["Parties"])
	req.Equal(1, stats["Members"])
}
