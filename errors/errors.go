package errors

import "fmt"

var (
	// Input validation (title, capacity, message body, unknown genre/game).
	ErrValidation = fmt.Errorf("validation failed")

	// Private-party secret mismatch or absence.
	ErrAccessDenied = fmt.Errorf("access denied")

	// Membership state transitions.
	ErrPartyFull     = fmt.Errorf("party is full")
	ErrAlreadyJoined = fmt.Errorf("already a member of this party")

	// Host-only operations.
	ErrNotHost           = fmt.Errorf("only the host may do this")
	ErrIllegalKickTarget = fmt.Errorf("illegal kick target")

	// Unknown identifiers.
	ErrPartyNotFound   = fmt.Errorf("party not found")
	ErrMemberNotFound  = fmt.Errorf("member not found")
	ErrChannelNotFound = fmt.Errorf("channel not found")

	// Identity tokens.
	ErrInvalidToken = fmt.Errorf("invalid identity token")

	// Moderation wordlist loading.
	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")

	// Supervision.
	ErrWorkerPanic = fmt.Errorf("worker panic")
)
