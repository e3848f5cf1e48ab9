package runtime

import (
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hwannow/PartyUp/domain"
	"github.com/hwannow/PartyUp/domain/event"
)

// ChatChannel is an append-only ordered message log. Sequence assignment
// happens atomically with the append, under the channel mutex: numbers
// are strictly increasing from 1 with no gaps and no duplicates, even
// under concurrent senders. The wall-clock timestamp is display-only;
// Seq is the ordering authority.
type ChatChannel struct {
	mu       sync.Mutex
	id       domain.ChannelID
	messages []domain.ChatMessage
	events   chan<- event.DomainEvent
	log      *slog.Logger
}

func NewChatChannel(id domain.ChannelID, events chan<- event.DomainEvent, log *slog.Logger) *ChatChannel {
	return &ChatChannel{id: id, events: events, log: log}
}

func (c *ChatChannel) ID() domain.ChannelID {
	return c.id
}

// Append stores a message and assigns it the channel's next sequence
// number. The body is expected to be validated (and moderated) by the
// service layer before it gets here.
func (c *ChatChannel) Append(sender domain.UserID, body string) domain.ChatMessage {
	c.mu.Lock()
	msg := domain.ChatMessage{
		ID:        uuid.New(),
		ChannelID: c.id,
		SenderID:  sender,
		Body:      body,
		Seq:       uint64(len(c.messages)) + 1,
		At:        time.Now(),
	}
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	c.emit(event.MessageAppended{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		Seq:       msg.Seq,
		At:        msg.At,
	})
	return msg
}

// Read returns the messages with Seq > since, in increasing order. The
// sequence is restartable: it iterates a snapshot of the log taken when
// iteration starts, so concurrent appends never reorder or duplicate
// what a reader sees.
func (c *ChatChannel) Read(since uint64) iter.Seq[domain.ChatMessage] {
	return func(yield func(domain.ChatMessage) bool) {
		c.mu.Lock()
		// Messages are immutable once appended and the log only grows,
		// so the prefix slice stays valid after the lock is released.
		snapshot := c.messages[:len(c.messages):len(c.messages)]
		c.mu.Unlock()

		for _, msg := range snapshot {
			if msg.Seq <= since {
				continue
			}
			if !yield(msg) {
				return
			}
		}
	}
}

// Len reports the number of appended messages, which equals the last
// assigned sequence number.
func (c *ChatChannel) Len() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint64(len(c.messages))
}

func (c *ChatChannel) emit(e event.DomainEvent) {
	if c.events == nil {
		return
	}
	select {
	case c.events <- e:
	default:
		c.log.Warn("Event channel full, dropping event", "channel", string(c.id))
	}
}
