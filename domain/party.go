// Package domain contains the core concepts of the party system.
// Entities here are pure data and pure policy: no locking, no I/O,
// no runtime or transport logic.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type PartyID string

type UserID string

func NewPartyID() PartyID {
	return PartyID(uuid.NewString())
}

// Visibility controls whether a party is discoverable-and-open or
// requires a shared secret to join.
type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// Readiness is the per-member toggle signaling intent to start.
type Readiness string

const (
	NotReady Readiness = "not_ready"
	Ready    Readiness = "ready"
)

// Toggle flips between the two readiness states.
func (r Readiness) Toggle() Readiness {
	if r == Ready {
		return NotReady
	}
	return Ready
}

// Party is a bounded-capacity group session. HostID is always a current
// member; membership never exceeds MaxMembers.
//
// SecretHash holds the argon2id digest of the join secret for private
// parties and is empty for public ones. The plain secret is never stored.
type Party struct {
	ID          PartyID
	Title       string
	Game        string
	Genre       string
	HostID      UserID
	MaxMembers  int
	Visibility  Visibility
	SecretHash  string
	Tags        []string
	Rating      float64
	Description string
	// ScheduledStartTime is informational only; nothing in the core
	// triggers on it.
	ScheduledStartTime *time.Time
	CreatedAt          time.Time
}

// Member is the (party, user) association. A fresh record is created on
// every successful join; leave and kick destroy it.
type Member struct {
	PartyID   PartyID
	UserID    UserID
	Readiness Readiness
	JoinedAt  time.Time
}

// PartyCreateRequest carries everything a caller supplies to open a party.
// Validation rules live in auth.ValidateCreateRequest; catalog rules
// (known genre, game allowed for genre) are checked by the registry.
type PartyCreateRequest struct {
	Title              string `validate:"required,max=100"`
	Game               string `validate:"required"`
	Genre              string `validate:"required"`
	MaxMembers         int    `validate:"gte=2,lte=10"`
	Visibility         Visibility
	JoinSecret         string
	Tags               []string
	Rating             float64
	Description        string
	ScheduledStartTime *time.Time
}
