package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/errors"
	"github.com/hwannow/PartyUp/moderation"
	"github.com/hwannow/PartyUp/runtime"
)

func newChatFixture(t *testing.T, requireMembership bool) (*ChatService, *PartyService, domain.Party) {
	t.Helper()
	registry := runtime.NewRegistry(domain.DefaultCatalog(), nil, slog.Default())

	moderator, err := moderation.NewModerator([]string{"noob"}, '*', slog.Default())
	require.NoError(t, err)

	partyService := NewPartyService(registry, slog.Default())
	chatService := NewChatService(registry, &moderator, requireMembership, slog.Default())

	party, err := partyService.CreateParty(domain.PartyCreateRequest{
		Title:      "ranked squad",
		Game:       "Valorant",
		Genre:      "FPS",
		MaxMembers: 5,
		Visibility: domain.Public,
	}, host)
	require.NoError(t, err)

	return chatService, partyService, party
}

func TestChatService_SendAndRead(t *testing.T) {
	req := require.New(t)
	chat, _, party := newChatFixture(t, true)
	channelID := domain.PartyChannelID(party.ID)

	first, err := chat.SendMessage(channelID, host, "glhf")
	req.NoError(err)
	req.Equal(uint64(1), first.Seq)

	second, err := chat.SendMessage(channelID, host, "rotating B")
	req.NoError(err)
	req.Equal(uint64(2), second.Seq)

	seq, err := chat.ReadMessages(channelID, 0)
	req.NoError(err)
	var bodies []string
	for msg := range seq {
		bodies = append(bodies, msg.Body)
	}
	req.Equal([]string{"glhf", "rotating B"}, bodies)

	seq, err = chat.ReadMessages(channelID, 1)
	req.NoError(err)
	var tail []domain.ChatMessage
	for msg := range seq {
		tail = append(tail, msg)
	}
	req.Len(tail, 1)
	req.Equal(uint64(2), tail[0].Seq)
}

func TestChatService_RejectsEmptyBody(t *testing.T) {
	req := require.New(t)
	chat, _, party := newChatFixture(t, true)
	channelID := domain.PartyChannelID(party.ID)

	_, err := chat.SendMessage(channelID, host, "")
	req.ErrorIs(err, errors.ErrValidation)
	_, err = chat.SendMessage(channelID, host, "   \t\n")
	req.ErrorIs(err, errors.ErrValidation)
}

func TestChatService_UnknownChannel(t *testing.T) {
	req := require.New(t)
	chat, _, _ := newChatFixture(t, true)

	_, err := chat.SendMessage("party:missing", host, "anyone here?")
	req.ErrorIs(err, errors.ErrChannelNotFound)
	_, err = chat.ReadMessages("party:missing", 0)
	req.ErrorIs(err, errors.ErrChannelNotFound)
}

func TestChatService_MembershipPolicy(t *testing.T) {
	req := require.New(t)
	chat, partyService, party := newChatFixture(t, true)
	channelID := domain.PartyChannelID(party.ID)

	_, err := chat.SendMessage(channelID, alice, "let me in")
	req.ErrorIs(err, errors.ErrMemberNotFound)

	req.NoError(partyService.JoinParty(party.ID, alice, ""))
	_, err = chat.SendMessage(channelID, alice, "hey all")
	req.NoError(err)
}

func TestChatService_MembershipPolicyDisabled(t *testing.T) {
	req := require.New(t)
	chat, _, party := newChatFixture(t, false)

	_, err := chat.SendMessage(domain.PartyChannelID(party.ID), alice, "spectating")
	req.NoError(err)
}

func TestChatService_ModeratesBody(t *testing.T) {
	req := require.New(t)
	chat, _, party := newChatFixture(t, true)

	msg, err := chat.SendMessage(domain.PartyChannelID(party.ID), host, "what a noob")
	req.NoError(err)
	req.Equal("what a ****", msg.Body)
}

func TestChatService_DirectChannel(t *testing.T) {
	req := require.New(t)
	chat, _, _ := newChatFixture(t, true)

	channelID := chat.DirectChannel(bob, alice)
	req.Equal(chat.DirectChannel(alice, bob), channelID)

	// Direct messages bypass the membership policy entirely.
	msg, err := chat.SendMessage(channelID, bob, "queue up?")
	req.NoError(err)
	req.Equal(uint64(1), msg.Seq)

	seq, err := chat.ReadMessages(channelID, 0)
	req.NoError(err)
	count := 0
	for range seq {
		count++
	}
	req.Equal(1, count)
}
