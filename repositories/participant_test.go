package repositories

import (
	"batepapo/domain"
	"batepapo/errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Insert_Rejects_Duplicate_Name(t *testing.T) {
	req := require.New(t)
	repository := NewParticipantRepository(openTestDB(t))

	req.NoError(repository.Insert(domain.Participant{Name: "Alice", LastStatus: 1000}))
	err := repository.Insert(domain.Participant{Name: "Alice", LastStatus: 2000})
	req.ErrorIs(err, errors.ErrNameTaken)

	// The first record must survive the rejected overwrite
	participants, err := repository.FindAll()
	req.NoError(err)
	req.Len(participants, 1)
	req.Equal(int64(1000), participants[0].LastStatus)
}

func Test_Find_By_Name(t *testing.T) {
	req := require.New(t)
	repository := NewParticipantRepository(openTestDB(t))

	req.NoError(repository.Insert(domain.Participant{Name: "Alice", LastStatus: 1000}))

	p, err := repository.FindByName("Alice")
	req.NoError(err)
	req.Equal("Alice", p.Name)

	_, err = repository.FindByName("Bob")
	req.ErrorIs(err, errors.ErrUnknownParticipant)
}

func Test_Update_Last_Status(t *testing.T) {
	req := require.New(t)
	repository := NewParticipantRepository(openTestDB(t))

	req.NoError(repository.Insert(domain.Participant{Name: "Alice", LastStatus: 1000}))
	req.NoError(repository.UpdateLastStatus("Alice", 5000))

	p, err := repository.FindByName("Alice")
	req.NoError(err)
	req.Equal(int64(5000), p.LastStatus)

	req.ErrorIs(repository.UpdateLastStatus("Bob", 5000), errors.ErrUnknownParticipant)
}

func Test_Delete_Participant(t *testing.T) {
	req := require.New(t)
	repository := NewParticipantRepository(openTestDB(t))

	req.NoError(repository.Insert(domain.Participant{Name: "Alice", LastStatus: 1000}))
	req.NoError(repository.Delete("Alice"))

	_, err := repository.FindByName("Alice")
	req.ErrorIs(err, errors.ErrUnknownParticipant)

	req.ErrorIs(repository.Delete("Alice"), errors.ErrUnknownParticipant)
}
