// Package runtime holds the concurrent state units of the party system:
// one lock-guarded session per party, one lock-guarded channel per
// conversation, and the registry that owns them. Each unit is its own
// isolation domain, so unrelated parties never contend on a shared lock.
package runtime

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/hwannow/PartyUp/auth"
	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/domain/event"
	"github.com/hwannow/PartyUp/errors"
)

// PartySession owns the membership and readiness state of a single party.
// Every mutation runs under the session mutex, which makes the capacity
// check-then-insert of Join atomic as a unit: two joins racing for the
// last slot serialize, one wins, the other gets ErrPartyFull.
type PartySession struct {
	mu      sync.Mutex
	party   domain.Party
	members map[domain.UserID]*domain.Member
	// closed is set when the last member leaves. The registry drops the
	// session afterwards, outside this mutex; the flag makes every
	// mutation racing with that removal fail instead of landing in a
	// party that is about to vanish.
	closed bool
	events chan<- event.DomainEvent
	log    *slog.Logger
}

// NewPartySession seats the host as the sole initial member, NotReady.
func NewPartySession(party domain.Party, events chan<- event.DomainEvent, log *slog.Logger) *PartySession {
	s := &PartySession{
		party:   party,
		members: make(map[domain.UserID]*domain.Member),
		events:  events,
		log:     log,
	}
	s.members[party.HostID] = &domain.Member{
		PartyID:   party.ID,
		UserID:    party.HostID,
		Readiness: domain.NotReady,
		JoinedAt:  party.CreatedAt,
	}
	return s
}

// Join admits a user. Re-joining while already a member is a strict
// ErrAlreadyJoined, never a silent no-op. The access gate runs before
// any mutation; a denial leaves no partial state.
func (s *PartySession) Join(user domain.UserID, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrPartyNotFound
	}
	if _, ok := s.members[user]; ok {
		return errors.ErrAlreadyJoined
	}
	if err := auth.Authorize(s.party, secret); err != nil {
		return err
	}
	if len(s.members) == s.party.MaxMembers {
		return errors.ErrPartyFull
	}

	now := time.Now()
	s.members[user] = &domain.Member{
		PartyID:   s.party.ID,
		UserID:    user,
		Readiness: domain.NotReady,
		JoinedAt:  now,
	}
	s.emit(event.MemberJoined{PartyID: s.party.ID, UserID: user, At: now})
	return nil
}

// ToggleReady flips a member's readiness and returns the new value.
func (s *PartySession) ToggleReady(user domain.UserID) (domain.Readiness, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", errors.ErrPartyNotFound
	}
	member, ok := s.members[user]
	if !ok {
		return "", errors.ErrMemberNotFound
	}
	member.Readiness = member.Readiness.Toggle()
	s.emit(event.ReadinessChanged{
		PartyID:   s.party.ID,
		UserID:    user,
		Readiness: member.Readiness,
		At:        time.Now(),
	})
	return member.Readiness, nil
}

// Leave removes a member. When the host leaves, authority transfers to
// the longest-joined remaining member; when the last member leaves, the
// session reports closed=true and the registry drops the party. Those two
// rules together keep the invariant that the host is always a member and
// membership never drops below one.
func (s *PartySession) Leave(user domain.UserID) (closed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, errors.ErrPartyNotFound
	}
	if _, ok := s.members[user]; !ok {
		return false, errors.ErrMemberNotFound
	}
	delete(s.members, user)
	now := time.Now()
	s.emit(event.MemberLeft{PartyID: s.party.ID, UserID: user, At: now})

	if len(s.members) == 0 {
		// Condemn the session before the registry removal happens, so a
		// join racing with the close loses cleanly instead of landing a
		// member in a vanishing party.
		s.closed = true
		s.emit(event.PartyClosed{PartyID: s.party.ID, At: now})
		return true, nil
	}

	if s.party.HostID == user {
		next := s.oldestMemberLocked()
		s.emit(event.HostChanged{
			PartyID: s.party.ID,
			OldHost: user,
			NewHost: next,
			At:      now,
		})
		s.party.HostID = next
	}
	return false, nil
}

// Kick expels a member on the host's authority. The policy guard runs
// before any mutation, so an illegal kick never touches membership.
func (s *PartySession) Kick(actor, target domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrPartyNotFound
	}
	if err := domain.CanKick(s.party, actor, target); err != nil {
		return err
	}
	if _, ok := s.members[target]; !ok {
		return errors.ErrMemberNotFound
	}
	delete(s.members, target)
	s.emit(event.MemberKicked{
		PartyID: s.party.ID,
		Actor:   actor,
		Target:  target,
		At:      time.Now(),
	})
	return nil
}

// IsMember reports whether the user is currently joined.
func (s *PartySession) IsMember(user domain.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[user]
	return ok
}

// Snapshot returns a consistent copy of the party and its member list,
// sorted by join time.
func (s *PartySession) Snapshot() (domain.Party, []domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := lo.MapToSlice(s.members, func(_ domain.UserID, m *domain.Member) domain.Member {
		return *m
	})
	// Oldest member first; ties broken by user id for determinism.
	sort.Slice(members, func(i, j int) bool { return earlier(members[i], members[j]) })
	party := s.party
	party.Tags = append([]string(nil), s.party.Tags...)
	return party, members
}

func earlier(a, b domain.Member) bool {
	if a.JoinedAt.Equal(b.JoinedAt) {
		return a.UserID < b.UserID
	}
	return a.JoinedAt.Before(b.JoinedAt)
}

func (s *PartySession) oldestMemberLocked() domain.UserID {
	var next domain.UserID
	var at time.Time
	for _, m := range s.members {
		if next == "" || m.JoinedAt.Before(at) ||
			(m.JoinedAt.Equal(at) && m.UserID < next) {
			next = m.UserID
			at = m.JoinedAt
		}
	}
	return next
}

// emit never blocks a mutation: a full event channel drops the event with
// a warning. Events are observational, not part of the state contract.
func (s *PartySession) emit(e event.DomainEvent) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- e:
	default:
		s.log.Warn("Event channel full, dropping event", "party", string(s.party.ID))
	}
}
