package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChannelID identifies an ordered message log. It is derived
// deterministically from either a party id or a pair of user ids, so the
// same conversation always maps to the same channel regardless of who
// opened it.
type ChannelID string

// PartyChannelID returns the channel attached to a party.
func PartyChannelID(id PartyID) ChannelID {
	return ChannelID(fmt.Sprintf("party:%s", id))
}

// PartyIDFromChannel extracts the party id from a party channel id.
// It reports false for direct-message channels.
func PartyIDFromChannel(id ChannelID) (PartyID, bool) {
	raw, ok := strings.CutPrefix(string(id), "party:")
	if !ok {
		return "", false
	}
	return PartyID(raw), true
}

// DirectChannelID returns the one-to-one channel for two users. The pair
// is canonically ordered: DirectChannelID(a, b) == DirectChannelID(b, a).
func DirectChannelID(a, b UserID) ChannelID {
	if b < a {
		a, b = b, a
	}
	return ChannelID(fmt.Sprintf("dm:%s:%s", a, b))
}

// ChatMessage is immutable once appended. Seq is the ordering authority
// within a channel: strictly increasing from 1, gap-free. At is stamped
// for display only.
type ChatMessage struct {
	ID        uuid.UUID
	ChannelID ChannelID
	SenderID  UserID
	Body      string
	Seq       uint64
	At        time.Time
}
