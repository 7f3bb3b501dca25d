//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"batepapo/domain"
	"batepapo/errors"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const messagePrefix = "msg:"

type IMessageRepository interface {
	Insert(m domain.Message, at time.Time) error
	FindAll() ([]domain.Message, error)
	FindByID(id string) (domain.Message, error)
	Update(m domain.Message) error
	Delete(id string) error
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// messageKey formats the storage key as "msg:{timestamp_padded}:{id}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order equals insertion order).
//  2. Use the message id as a collision disconnector if two messages arrive
//     at the same nanosecond.
func messageKey(at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", messagePrefix, at.UnixNano(), id))
}

func (r MessageRepository) Insert(m domain.Message, at time.Time) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(at, m.ID), data)
	})
}

// FindAll returns the full message history in insertion order. Visibility
// is a three-way OR across two fields, so callers filter in process instead
// of pushing a predicate into the store.
func (r MessageRepository) FindAll() ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(messagePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var m domain.Message
				if err := json.Unmarshal(val, &m); err != nil {
					return err
				}
				messages = append(messages, m)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return messages, err
}

// seekByID locates a message by scanning keys. The id is the key suffix,
// so the scan never needs to decode values; the stored record is copied out
// before the iterator closes.
func seekByID(txn *badger.Txn, id string) ([]byte, []byte, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := []byte(messagePrefix)
	suffix := ":" + id
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		key := item.KeyCopy(nil)
		if strings.HasSuffix(string(key), suffix) {
			val, err := item.ValueCopy(nil)
			return key, val, err
		}
	}
	return nil, nil, errors.ErrMessageNotFound
}

func (r MessageRepository) FindByID(id string) (domain.Message, error) {
	var m domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		_, val, err := seekByID(txn, id)
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &m)
	})
	if err == errors.ErrMessageNotFound {
		r.log.Debug("No message with this id", "id", id)
	}
	return m, err
}

// Update rewrites an existing record in place. The storage key embeds the
// original insertion instant, so the position in history never changes.
func (r MessageRepository) Update(m domain.Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := seekByID(txn, m.ID)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

func (r MessageRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := seekByID(txn, id)
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
