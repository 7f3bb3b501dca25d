package workers

import (
	"batepapo/domain"
	"batepapo/repositories"
	"batepapo/services"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newSweeperFixture(t *testing.T, now func() time.Time) (*SweeperWorker, *services.RegistryService, *repositories.MessageRepository) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	var mu sync.Mutex
	participantRepository := repositories.NewParticipantRepository(db)
	messageRepository := repositories.NewMessageRepository(db, log)
	registry := services.NewRegistryService(log, participantRepository, messageRepository, &mu).WithClock(now)
	sweeper := NewSweeperWorker(log, registry).WithClock(now)
	return sweeper, registry, messageRepository
}

func Test_Sweep_Evicts_Only_Idle_Participants(t *testing.T) {
	req := require.New(t)
	current := time.Date(2023, 4, 2, 14, 30, 0, 0, time.UTC)
	sweeper, registry, history := newSweeperFixture(t, func() time.Time { return current })

	req.NoError(registry.Register(domain.RegisterRequest{Name: "Dormant"}))
	current = current.Add(6 * time.Second)
	req.NoError(registry.Register(domain.RegisterRequest{Name: "Active"}))

	// Dormant is now 11s idle, Active only 5s
	current = current.Add(5 * time.Second)
	sweeper.Sweep()

	participants, err := registry.List()
	req.NoError(err)
	names := lo.Map(participants, func(p domain.Participant, _ int) string { return p.Name })
	req.Equal([]string{"Active"}, names)

	messages, err := history.FindAll()
	req.NoError(err)
	departures := lo.Filter(messages, func(m domain.Message, _ int) bool {
		return m.Text == domain.DepartureText
	})
	req.Len(departures, 1)
	req.Equal("Dormant", departures[0].From)
	req.Equal(domain.BroadcastAlias, departures[0].To)
	req.Equal(domain.TypeStatus, departures[0].Type)
}

func Test_Sweep_Leaves_Participant_At_Exact_Threshold(t *testing.T) {
	req := require.New(t)
	current := time.Date(2023, 4, 2, 14, 30, 0, 0, time.UTC)
	sweeper, registry, _ := newSweeperFixture(t, func() time.Time { return current })

	req.NoError(registry.Register(domain.RegisterRequest{Name: "Borderline"}))

	// Exactly at the threshold: strict inequality keeps the participant
	current = current.Add(IdleThreshold)
	sweeper.Sweep()

	participants, err := registry.List()
	req.NoError(err)
	req.Len(participants, 1)
}

func Test_Sweep_Heartbeat_Between_Snapshot_And_Eviction(t *testing.T) {
	req := require.New(t)
	current := time.Date(2023, 4, 2, 14, 30, 0, 0, time.UTC)
	sweeper, registry, history := newSweeperFixture(t, func() time.Time { return current })

	req.NoError(registry.Register(domain.RegisterRequest{Name: "Alice"}))
	current = current.Add(11 * time.Second)

	// Refresh after the participant already looks idle: the eviction
	// re-check inside the exclusive section must let the heartbeat win
	req.NoError(registry.Heartbeat("Alice"))
	sweeper.Sweep()

	participants, err := registry.List()
	req.NoError(err)
	req.Len(participants, 1)

	messages, err := history.FindAll()
	req.NoError(err)
	departures := lo.Filter(messages, func(m domain.Message, _ int) bool {
		return m.Text == domain.DepartureText
	})
	req.Empty(departures)
}

func Test_Sweep_Evicts_Every_Idle_Participant_In_One_Pass(t *testing.T) {
	req := require.New(t)
	current := time.Date(2023, 4, 2, 14, 30, 0, 0, time.UTC)
	sweeper, registry, _ := newSweeperFixture(t, func() time.Time { return current })

	for _, name := range []string{"Alice", "Bob", "Clara"} {
		req.NoError(registry.Register(domain.RegisterRequest{Name: name}))
	}

	current = current.Add(12 * time.Second)
	sweeper.Sweep()

	participants, err := registry.List()
	req.NoError(err)
	req.Empty(participants)
}
