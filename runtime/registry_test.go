package runtime

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/errors"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(domain.DefaultCatalog(), nil, slog.Default())
}

func publicRequest(title string) domain.PartyCreateRequest {
	return domain.PartyCreateRequest{
		Title:      title,
		Game:       "Valorant",
		Genre:      "FPS",
		MaxMembers: 5,
		Visibility: domain.Public,
	}
}

func TestRegistry_CreateSeatsHost(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	party, err := registry.Create(publicRequest("ranked squad"), host)
	req.NoError(err)
	req.NotEmpty(party.ID)
	req.Equal(host, party.HostID)

	session, err := registry.Session(party.ID)
	req.NoError(err)
	req.True(session.IsMember(host))

	// The party channel exists from creation.
	_, err = registry.Channel(domain.PartyChannelID(party.ID))
	req.NoError(err)
}

func TestRegistry_CreateValidation(t *testing.T) {
	registry := NewRegistry(domain.DefaultCatalog(), nil, slog.Default())

	tests := []struct {
		name   string
		mutate func(*domain.PartyCreateRequest)
	}{
		{"empty title", func(r *domain.PartyCreateRequest) { r.Title = "" }},
		{"capacity below range", func(r *domain.PartyCreateRequest) { r.MaxMembers = 1 }},
		{"capacity above range", func(r *domain.PartyCreateRequest) { r.MaxMembers = 11 }},
		{"unknown genre", func(r *domain.PartyCreateRequest) { r.Genre = "MMO" }},
		{"game outside genre", func(r *domain.PartyCreateRequest) { r.Game = "Minecraft" }},
		{"private without secret", func(r *domain.PartyCreateRequest) {
			r.Visibility = domain.Private
			r.JoinSecret = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := publicRequest("ranked squad")
			tt.mutate(&request)
			_, err := registry.Create(request, host)
			require.ErrorIs(t, err, errors.ErrValidation)
		})
	}
}

func TestRegistry_CreatePrivateStoresOnlyHash(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	request := publicRequest("invite only")
	request.Visibility = domain.Private
	request.JoinSecret = "1234"

	party, err := registry.Create(request, host)
	req.NoError(err)
	req.NotEmpty(party.SecretHash)
	req.NotContains(party.SecretHash, "1234")
	req.True(strings.HasPrefix(party.SecretHash, "$argon2id$"))
}

func TestRegistry_OtherGenreAcceptsAnyGame(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	request := publicRequest("indie night")
	request.Genre = domain.GenreOther
	request.Game = "Stardew Valley"

	_, err := registry.Create(request, host)
	req.NoError(err)
}

func TestRegistry_SessionUnknownParty(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	_, err := registry.Session(domain.PartyID("nope"))
	req.ErrorIs(err, errors.ErrPartyNotFound)
	_, err = registry.Channel(domain.ChannelID("party:nope"))
	req.ErrorIs(err, errors.ErrChannelNotFound)
}

func TestRegistry_ListMostRecentFirst(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	for _, title := range []string{"first", "second", "third"} {
		_, err := registry.Create(publicRequest(title), host)
		req.NoError(err)
	}

	var titles []string
	for party := range registry.List(domain.ListFilter{}) {
		titles = append(titles, party.Title)
	}
	req.Equal([]string{"third", "second", "first"}, titles)

	titles = nil
	for party := range registry.List(domain.ListFilter{OldestFirst: true}) {
		titles = append(titles, party.Title)
	}
	req.Equal([]string{"first", "second", "third"}, titles)
}

func TestRegistry_ListFilterGenreAndSearch(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	_, err := registry.Create(publicRequest("Squad up now"), host)
	req.NoError(err)
	_, err = registry.Create(publicRequest("duo queue"), host)
	req.NoError(err)

	rpg := publicRequest("raid SQUAD")
	rpg.Genre = "RPG"
	rpg.Game = "Lost Ark"
	_, err = registry.Create(rpg, host)
	req.NoError(err)

	// Genre + case-insensitive substring, most recent first.
	var titles []string
	for party := range registry.List(domain.ListFilter{Genre: "FPS", SearchText: "squad"}) {
		titles = append(titles, party.Title)
	}
	req.Equal([]string{"Squad up now"}, titles)
}

func TestRegistry_ListFilterTag(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	tagged := publicRequest("streamed run")
	tagged.Tags = []string{"broadcast", "casual"}
	_, err := registry.Create(tagged, host)
	req.NoError(err)
	_, err = registry.Create(publicRequest("quiet run"), host)
	req.NoError(err)

	var titles []string
	for party := range registry.List(domain.ListFilter{RequireTag: "broadcast"}) {
		titles = append(titles, party.Title)
	}
	req.Equal([]string{"streamed run"}, titles)
}

func TestRegistry_ListIsRestartable(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)
	_, err := registry.Create(publicRequest("one"), host)
	req.NoError(err)
	_, err = registry.Create(publicRequest("two"), host)
	req.NoError(err)

	seq := registry.List(domain.ListFilter{})
	for range seq {
		break
	}
	count := 0
	for range seq {
		count++
	}
	req.Equal(2, count)
}

func TestRegistry_DirectChannelCanonical(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	ab := registry.DirectChannel(alice, bob)
	ba := registry.DirectChannel(bob, alice)
	req.Same(ab, ba)
	req.Equal(domain.DirectChannelID(alice, bob), ab.ID())
}

func TestRegistry_RemoveDropsPartyAndChannel(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	party, err := registry.Create(publicRequest("short lived"), host)
	req.NoError(err)

	registry.Remove(party.ID)

	_, err = registry.Session(party.ID)
	req.ErrorIs(err, errors.ErrPartyNotFound)
	_, err = registry.Channel(domain.PartyChannelID(party.ID))
	req.ErrorIs(err, errors.ErrChannelNotFound)
	req.Zero(registry.PartyCount())
}

// Interleaving of a party close with a concurrent join: the last member
// leaves, and before the registry removal lands another user tries to
// join through the still-resolvable session. The join must lose; a
// success here would be silently discarded by the removal.
func TestRegistry_JoinRacingPartyClose(t *testing.T) {
	req := require.New(t)
	registry := newRegistry(t)

	party, err := registry.Create(publicRequest("closing down"), host)
	req.NoError(err)
	session, err := registry.Session(party.ID)
	req.NoError(err)

	closed, err := session.Leave(host)
	req.NoError(err)
	req.True(closed)

	// The session is still registered, but already condemned.
	req.ErrorIs(session.Join(alice, ""), errors.ErrPartyNotFound)

	// Listing never observes the zero-member party in the window.
	for range registry.List(domain.ListFilter{}) {
		t.Fatal("condemned party must not be listed")
	}

	registry.Remove(party.ID)
	_, err = registry.Session(party.ID)
	req.ErrorIs(err, errors.ErrPartyNotFound)
}
