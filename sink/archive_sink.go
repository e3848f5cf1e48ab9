// Package sink holds the event consumers fed by the engine's fan-out.
package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hwannow/PartyUp/domain/event"
	"github.com/hwannow/PartyUp/repositories"
)

// ArchiveSink persists appended chat messages to the badger archive.
// Other event types pass through untouched.
type ArchiveSink struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
}

func NewArchiveSink(repository repositories.IMessageRepository, log *slog.Logger) ArchiveSink {
	return ArchiveSink{repository: repository, log: log}
}

func (d ArchiveSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageAppended:
		return d.repository.StoreMessage(toArchivedMessage(evt))
	default:
		d.log.Debug(fmt.Sprintf("Not archived event : %v", evt))
		return nil
	}
}

func toArchivedMessage(evt event.MessageAppended) repositories.ArchivedMessage {
	return repositories.ArchivedMessage{
		ID:      evt.ID,
		Channel: string(evt.ChannelID),
		Seq:     evt.Seq,
		Sender:  string(evt.SenderID),
		Body:    evt.Body,
		At:      evt.At,
	}
}
