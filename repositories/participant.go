//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"batepapo/domain"
	"batepapo/errors"
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
)

const participantPrefix = "participant:"

type IParticipantRepository interface {
	Insert(p domain.Participant) error
	FindAll() ([]domain.Participant, error)
	FindByName(name string) (domain.Participant, error)
	UpdateLastStatus(name string, lastStatus int64) error
	Delete(name string) error
}

type ParticipantRepository struct {
	db *badger.DB
}

func NewParticipantRepository(db *badger.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

// Insert persists a new participant. The duplicate check happens inside the
// same transaction as the write, so two concurrent registrations of the same
// name cannot both succeed.
func (r ParticipantRepository) Insert(p domain.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(p.Name)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrNameTaken
		}
		return txn.Set(key, data)
	})
}

// FindAll returns every registered participant in store order.
func (r ParticipantRepository) FindAll() ([]domain.Participant, error) {
	var participants []domain.Participant
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(participantPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var p domain.Participant
				if err := json.Unmarshal(val, &p); err != nil {
					return err
				}
				participants = append(participants, p)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return participants, err
}

func (r ParticipantRepository) FindByName(name string) (domain.Participant, error) {
	var p domain.Participant
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(participantKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrUnknownParticipant
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	return p, err
}

// UpdateLastStatus refreshes the liveness timestamp of an existing
// participant. Unknown names are reported, never upserted.
func (r ParticipantRepository) UpdateLastStatus(name string, lastStatus int64) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		item, err := txn.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrUnknownParticipant
			}
			return err
		}
		var p domain.Participant
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		}); err != nil {
			return err
		}
		p.LastStatus = lastStatus
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

func (r ParticipantRepository) Delete(name string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		if _, err := txn.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return errors.ErrUnknownParticipant
			}
			return err
		}
		return txn.Delete(key)
	})
}
