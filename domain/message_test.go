package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Message_ID_Format(t *testing.T) {
	req := require.New(t)

	req.True(ValidMessageID("63d9f0a1b2c3d4e5f6a7b8c9"))
	req.False(ValidMessageID("123"), "too short")
	req.False(ValidMessageID(""), "empty")
	req.False(ValidMessageID("63D9F0A1B2C3D4E5F6A7B8C9"), "uppercase hex is rejected")
	req.False(ValidMessageID("63d9f0a1b2c3d4e5f6a7b8c9a"), "too long")
	req.False(ValidMessageID("63d9f0a1b2c3d4e5f6a7b8cg"), "not hex")
}

func Test_New_Message_ID_Matches_Format(t *testing.T) {
	req := require.New(t)

	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewMessageID()
		req.True(ValidMessageID(id))
		_, dup := seen[id]
		req.False(dup, "ids must not repeat")
		seen[id] = struct{}{}
	}
}

func Test_Stamp_Is_Zero_Padded(t *testing.T) {
	req := require.New(t)

	at := time.Date(2023, 4, 2, 9, 5, 3, 0, time.UTC)
	req.Equal("09:05:03", Stamp(at))
}

func Test_Visibility_Predicate(t *testing.T) {
	req := require.New(t)

	broadcast := Message{From: "Alice", To: BroadcastAlias, Type: TypeMessage}
	private := Message{From: "Alice", To: "Bob", Type: TypePrivate}

	req.True(broadcast.VisibleTo("Clara"), "broadcast visible to everyone")
	req.True(private.VisibleTo("Alice"), "sender sees own private message")
	req.True(private.VisibleTo("Bob"), "recipient sees private message")
	req.False(private.VisibleTo("Clara"), "third parties never see private messages")
}

func Test_Status_Message_Is_Broadcast(t *testing.T) {
	req := require.New(t)

	at := time.Date(2023, 4, 2, 14, 30, 0, 0, time.UTC)
	m := NewStatusMessage("Alice", ArrivalText, at)

	req.Equal("Alice", m.From)
	req.Equal(BroadcastAlias, m.To)
	req.Equal(TypeStatus, m.Type)
	req.Equal(ArrivalText, m.Text)
	req.Equal("14:30:00", m.Time)
	req.True(ValidMessageID(m.ID))
}

func Test_Idle_Threshold_Is_Strict(t *testing.T) {
	req := require.New(t)

	now := time.Now()
	threshold := 10 * time.Second

	exactlyAtThreshold := Participant{Name: "Alice", LastStatus: NowMillis(now) - threshold.Milliseconds()}
	beyondThreshold := Participant{Name: "Bob", LastStatus: NowMillis(now) - threshold.Milliseconds() - 1}

	req.False(exactlyAtThreshold.IdleLongerThan(threshold, now))
	req.True(beyondThreshold.IdleLongerThan(threshold, now))
}
