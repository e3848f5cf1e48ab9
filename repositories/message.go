//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreMessage(message ArchivedMessage) error
	GetMessages(channel string, sinceSeq uint64) ([]ArchivedMessage, error)
}

// MessageRepository is the write-behind archive of chat messages. The
// in-memory channel is the ordering authority; the archive exists for
// inspection and offline browsing, so losing a tail on crash is
// acceptable (durability across restarts is out of contract).
type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// ArchivedMessage is the storage-layer representation of a chat message.
type ArchivedMessage struct {
	ID      uuid.UUID
	Channel string
	Seq     uint64
	Sender  string
	Body    string
	At      time.Time
}

// StoreMessage persists a message in BadgerDB. The key is formatted as
// "msg:{channel}:{seq_padded}" so that a prefix scan returns messages in
// sequence order: the 19-digit zero padding makes lexicographical order
// match numeric order, and the sequence number is already unique per
// channel, so no collision disambiguator is needed.
func (m MessageRepository) StoreMessage(message ArchivedMessage) error {
	key := fmt.Sprintf("msg:%s:%019d", message.Channel, message.Seq)
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetMessages retrieves archived messages for a channel with Seq >
// sinceSeq using a prefix scan. Thanks to the padded sequence in the key,
// messages come back already ordered. It stops once the configured
// limitMessages is reached.
func (m MessageRepository) GetMessages(channel string, sinceSeq uint64) ([]ArchivedMessage, error) {
	var raw [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("msg:%s:", channel))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		seekKey := []byte(fmt.Sprintf("msg:%s:%019d", channel, sinceSeq+1))
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(raw) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var messages []ArchivedMessage
	for _, b := range raw {
		var msg ArchivedMessage
		if err = json.Unmarshal(b, &msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
