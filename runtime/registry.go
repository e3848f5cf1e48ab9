package runtime

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/hwannow/PartyUp/auth"
	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/domain/event"
	"github.com/hwannow/PartyUp/errors"
)

// Registry owns the set of all parties and their chat channels. Its lock
// only guards the maps and the creation order; per-party state lives
// behind each session's own mutex, so operations on different parties
// proceed fully in parallel.
type Registry struct {
	mu       sync.RWMutex
	catalog  domain.Catalog
	sessions map[domain.PartyID]*PartySession
	channels map[domain.ChannelID]*ChatChannel
	// order holds party ids oldest-first; listing walks it backwards
	// for the stated most-recently-created-first order.
	order  []domain.PartyID
	events chan<- event.DomainEvent
	log    *slog.Logger
}

func NewRegistry(catalog domain.Catalog, events chan<- event.DomainEvent, log *slog.Logger) *Registry {
	return &Registry{
		catalog:  catalog,
		sessions: make(map[domain.PartyID]*PartySession),
		channels: make(map[domain.ChannelID]*ChatChannel),
		events:   events,
		log:      log,
	}
}

// Create validates the request, registers the party, and spawns its
// session (host seated as sole NotReady member) and its chat channel.
// The join secret of a private party is stored only as an argon2id hash.
func (r *Registry) Create(req domain.PartyCreateRequest, host domain.UserID) (domain.Party, error) {
	if err := auth.ValidateCreateRequest(req); err != nil {
		return domain.Party{}, err
	}
	if !r.catalog.KnownGenre(req.Genre) {
		return domain.Party{}, fmt.Errorf("%w: unknown genre %q", errors.ErrValidation, req.Genre)
	}
	if !r.catalog.Allows(req.Genre, req.Game) {
		return domain.Party{}, fmt.Errorf("%w: game %q is not in genre %q", errors.ErrValidation, req.Game, req.Genre)
	}

	var secretHash string
	if req.Visibility == domain.Private {
		hash, err := auth.HashSecret(req.JoinSecret)
		if err != nil {
			return domain.Party{}, fmt.Errorf("hashing join secret: %w", err)
		}
		secretHash = hash
	}

	party := domain.Party{
		ID:                 domain.NewPartyID(),
		Title:              req.Title,
		Game:               req.Game,
		Genre:              req.Genre,
		HostID:             host,
		MaxMembers:         req.MaxMembers,
		Visibility:         req.Visibility,
		SecretHash:         secretHash,
		Tags:               lo.Uniq(req.Tags),
		Rating:             req.Rating,
		Description:        req.Description,
		ScheduledStartTime: req.ScheduledStartTime,
		CreatedAt:          time.Now(),
	}

	session := NewPartySession(party, r.events, r.log)
	channel := NewChatChannel(domain.PartyChannelID(party.ID), r.events, r.log)

	r.mu.Lock()
	r.sessions[party.ID] = session
	r.channels[channel.ID()] = channel
	r.order = append(r.order, party.ID)
	r.mu.Unlock()

	r.log.Info("Party created",
		"party", string(party.ID),
		"host", string(host),
		"game", party.Game,
		"visibility", string(party.Visibility),
	)
	return party, nil
}

// Session resolves a party id to its live session.
func (r *Registry) Session(id domain.PartyID) (*PartySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, errors.ErrPartyNotFound
	}
	return session, nil
}

// Channel resolves a channel id. Party channels exist from party
// creation; direct-message channels are created lazily on first use via
// DirectChannel.
func (r *Registry) Channel(id domain.ChannelID) (*ChatChannel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	channel, ok := r.channels[id]
	if !ok {
		return nil, errors.ErrChannelNotFound
	}
	return channel, nil
}

// DirectChannel returns the canonical one-to-one channel for two users,
// creating it on first use. DirectChannel(a, b) and DirectChannel(b, a)
// always return the same instance.
func (r *Registry) DirectChannel(a, b domain.UserID) *ChatChannel {
	id := domain.DirectChannelID(a, b)

	r.mu.RLock()
	channel, ok := r.channels[id]
	r.mu.RUnlock()
	if ok {
		return channel
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if channel, ok = r.channels[id]; ok {
		return channel
	}
	channel = NewChatChannel(id, r.events, r.log)
	r.channels[id] = channel
	return channel
}

// Remove drops a closed party and its channel. The archived messages in
// the repository are untouched.
func (r *Registry) Remove(id domain.PartyID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	delete(r.channels, domain.PartyChannelID(id))
	r.order = lo.Without(r.order, id)
	r.log.Info("Party closed", "party", string(id))
}

// List produces a lazy, finite, restartable sequence of party snapshots
// matching the filter. Stated order: most recently created first, unless
// the filter asks for oldest first. The creation order is captured when
// iteration starts, so restarting the sequence is always safe.
func (r *Registry) List(filter domain.ListFilter) iter.Seq[domain.Party] {
	return func(yield func(domain.Party) bool) {
		r.mu.RLock()
		ids := append([]domain.PartyID(nil), r.order...)
		r.mu.RUnlock()

		if !filter.OldestFirst {
			ids = lo.Reverse(ids)
		}

		for _, id := range ids {
			session, err := r.Session(id)
			if err != nil {
				// Removed between the order snapshot and now.
				continue
			}
			party, members := session.Snapshot()
			if len(members) == 0 {
				// Closed but not yet removed from the registry.
				continue
			}
			if !filter.Matches(party) {
				continue
			}
			if !yield(party) {
				return
			}
		}
	}
}

// MemberCount sums current members across all parties, for engine stats.
func (r *Registry) MemberCount() int {
	r.mu.RLock()
	sessions := lo.Values(r.sessions)
	r.mu.RUnlock()

	total := 0
	for _, s := range sessions {
		_, members := s.Snapshot()
		total += len(members)
	}
	return total
}

// PartyCount reports the number of open parties.
func (r *Registry) PartyCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
