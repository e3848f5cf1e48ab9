package domain

import "github.com/hwannow/PartyUp/errors"

// IsHost reports whether the user holds host authority over the party.
func IsHost(party Party, user UserID) bool {
	return party.HostID == user
}

// CanKick is the pure policy guard for expelling a member: only the host
// may kick, the host cannot kick themselves, and the host cannot be the
// target. It never mutates anything; the session applies the removal.
func CanKick(party Party, actor, target UserID) error {
	if !IsHost(party, actor) {
		return errors.ErrNotHost
	}
	if target == actor || target == party.HostID {
		return errors.ErrIllegalKickTarget
	}
	return nil
}
