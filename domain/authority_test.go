package domain

import (
	"testing"

	"github.com/hwannow/PartyUp/errors"
	"github.com/stretchr/testify/require"
)

func TestCanKick(t *testing.T) {
	party := Party{HostID: "host"}

	tests := []struct {
		name    string
		actor   UserID
		target  UserID
		wantErr error
	}{
		{"host kicks member", "host", "alice", nil},
		{"member cannot kick", "alice", "bob", errors.ErrNotHost},
		{"host cannot kick themselves", "host", "host", errors.ErrIllegalKickTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanKick(party, tt.actor, tt.target)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
