// Package event defines the domain events emitted by party sessions and
// chat channels. Events are observational: sinks consume them for
// archiving and projections, never for core state transitions.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/hwannow/PartyUp/domain"
)

type DomainEvent interface {
	Channel() domain.ChannelID
}

// MessageAppended is emitted after a message has been durably ordered in
// its in-memory channel. Seq carries the authoritative position.
type MessageAppended struct {
	ID        uuid.UUID
	ChannelID domain.ChannelID
	SenderID  domain.UserID
	Body      string
	Seq       uint64
	At        time.Time
}

func (e MessageAppended) Channel() domain.ChannelID { return e.ChannelID }

type MemberJoined struct {
	PartyID domain.PartyID
	UserID  domain.UserID
	At      time.Time
}

func (e MemberJoined) Channel() domain.ChannelID { return domain.PartyChannelID(e.PartyID) }

type MemberLeft struct {
	PartyID domain.PartyID
	UserID  domain.UserID
	At      time.Time
}

func (e MemberLeft) Channel() domain.ChannelID { return domain.PartyChannelID(e.PartyID) }

type MemberKicked struct {
	PartyID domain.PartyID
	Actor   domain.UserID
	Target  domain.UserID
	At      time.Time
}

func (e MemberKicked) Channel() domain.ChannelID { return domain.PartyChannelID(e.PartyID) }

// HostChanged is emitted when the host leaves and authority transfers to
// the longest-joined remaining member.
type HostChanged struct {
	PartyID domain.PartyID
	OldHost domain.UserID
	NewHost domain.UserID
	At      time.Time
}

func (e HostChanged) Channel() domain.ChannelID { return domain.PartyChannelID(e.PartyID) }

type ReadinessChanged struct {
	PartyID   domain.PartyID
	UserID    domain.UserID
	Readiness domain.Readiness
	At        time.Time
}

func (e ReadinessChanged) Channel() domain.ChannelID { return domain.PartyChannelID(e.PartyID) }

// PartyClosed is emitted when the last member leaves and the registry
// drops the party.
type PartyClosed struct {
	PartyID domain.PartyID
	At      time.Time
}

func (e PartyClosed) Channel() domain.ChannelID { return domain.PartyChannelID(e.PartyID) }
