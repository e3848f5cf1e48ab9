//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/errors"
	"github.com/hwannow/PartyUp/moderation"
	"github.com/hwannow/PartyUp/runtime"
)

// IChatService is the messaging surface exposed to the presentation
// layer, covering both party channels and direct-message pairs.
type IChatService interface {
	SendMessage(channelID domain.ChannelID, sender domain.UserID, body string) (domain.ChatMessage, error)
	ReadMessages(channelID domain.ChannelID, sinceSeq uint64) (iter.Seq[domain.ChatMessage], error)
	DirectChannel(a, b domain.UserID) domain.ChannelID
}

// ChatService validates, moderates, and appends messages. The channel
// itself only orders; everything policy-shaped lives here.
//
// requireMembership is the documented extension point on top of the
// minimal channel contract: when enabled, sending to a party channel
// requires the sender to currently be a joined member. Direct-message
// channels are never membership-checked.
type ChatService struct {
	registry          *runtime.Registry
	moderator         *moderation.Moderator
	requireMembership bool
	log               *slog.Logger
}

func NewChatService(registry *runtime.Registry, moderator *moderation.Moderator,
	requireMembership bool, log *slog.Logger) *ChatService {
	return &ChatService{
		registry:          registry,
		moderator:         moderator,
		requireMembership: requireMembership,
		log:               log,
	}
}

// SendMessage appends a message to a channel. Empty and whitespace-only
// bodies are rejected before anything is mutated; sequence assignment
// happens atomically inside the channel.
func (s *ChatService) SendMessage(channelID domain.ChannelID, sender domain.UserID, body string) (domain.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return domain.ChatMessage{}, fmt.Errorf("%w: empty message body", errors.ErrValidation)
	}

	channel, err := s.registry.Channel(channelID)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	if partyID, ok := domain.PartyIDFromChannel(channelID); ok && s.requireMembership {
		session, err := s.registry.Session(partyID)
		if err != nil {
			return domain.ChatMessage{}, err
		}
		if !session.IsMember(sender) {
			return domain.ChatMessage{}, errors.ErrMemberNotFound
		}
	}

	if s.moderator != nil {
		censored, words := s.moderator.Censor(body)
		if len(words) > 0 {
			s.log.Info("Message moderated",
				"channel", string(channelID), "sender", string(sender), "matches", len(words))
		}
		body = censored
	}

	return channel.Append(sender, body), nil
}

// ReadMessages returns the channel's messages with sequence numbers
// greater than sinceSeq, in increasing order. The sequence is finite and
// restartable.
func (s *ChatService) ReadMessages(channelID domain.ChannelID, sinceSeq uint64) (iter.Seq[domain.ChatMessage], error) {
	channel, err := s.registry.Channel(channelID)
	if err != nil {
		return nil, err
	}
	return channel.Read(sinceSeq), nil
}

// DirectChannel resolves (and lazily creates) the canonical one-to-one
// channel between two users, independent of who initiated it.
func (s *ChatService) DirectChannel(a, b domain.UserID) domain.ChannelID {
	return s.registry.DirectChannel(a, b).ID()
}
