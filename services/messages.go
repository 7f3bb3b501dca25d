package services

import (
	"batepapo/domain"
	"batepapo/errors"
	"batepapo/moderation"
	"batepapo/repositories"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// MessageService persists messages and computes per-caller visibility.
// It shares the exclusive section with the registry and the sweeper.
type MessageService struct {
	mu        *sync.Mutex
	log       *slog.Logger
	registry  *RegistryService
	messages  repositories.IMessageRepository
	moderator *moderation.Moderator
	now       func() time.Time
}

// NewMessageService wires the store and the registry used to authorize
// senders. moderator may be nil, in which case text passes through as is.
func NewMessageService(
	log *slog.Logger,
	registry *RegistryService,
	messages repositories.IMessageRepository,
	moderator *moderation.Moderator,
	mu *sync.Mutex,
) *MessageService {
	return &MessageService{
		mu:        mu,
		log:       log,
		registry:  registry,
		messages:  messages,
		moderator: moderator,
		now:       time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *MessageService) WithClock(now func() time.Time) *MessageService {
	s.now = now
	return s
}

func (s *MessageService) censor(text string) string {
	if s.moderator == nil {
		return text
	}
	return s.moderator.Censor(text)
}

// Send validates and appends a participant-authored message. Nothing is
// persisted when the sender is not registered. The sender check and the
// insert share one exclusive section, so a sweep eviction cannot land
// between them and leave a message from a participant already gone.
func (s *MessageService) Send(from string, req domain.SendMessageRequest) (domain.Message, error) {
	if err := domain.ValidateSend(req); err != nil {
		return domain.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	registered, err := s.registry.exists(from)
	if err != nil {
		return domain.Message{}, err
	}
	if !registered {
		return domain.Message{}, errors.ErrUnknownSender
	}

	at := s.now()
	m := domain.NewUserMessage(from, req.To, s.censor(req.Text), req.Type, at)
	if err := s.messages.Insert(m, at); err != nil {
		return domain.Message{}, err
	}
	return m, nil
}

// ListVisibleTo returns the caller's view of the history: records sent by
// the caller, addressed to the caller, or broadcast, in store order. When
// limit is given, the trailing slice of the already filtered sequence is
// returned, never a truncation of the raw history.
func (s *MessageService) ListVisibleTo(caller string, limit *int) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.messages.FindAll()
	if err != nil {
		return nil, err
	}
	visible := lo.Filter(history, func(m domain.Message, _ int) bool {
		return m.VisibleTo(caller)
	})
	if limit != nil && *limit >= 0 && *limit < len(visible) {
		visible = visible[len(visible)-*limit:]
	}
	return visible, nil
}

// Edit replaces to/text/type on an existing record. The id, sender and time
// stamp are immutable. Only the original sender may edit.
func (s *MessageService) Edit(id, caller string, req domain.SendMessageRequest) error {
	if !domain.ValidMessageID(id) {
		return errors.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.messages.FindByID(id)
	if err != nil {
		return err
	}
	if m.From != caller {
		return errors.ErrNotOwner
	}
	if err := domain.ValidateSend(req); err != nil {
		return err
	}

	m.To = req.To
	m.Text = s.censor(req.Text)
	m.Type = req.Type
	return s.messages.Update(m)
}

// Remove deletes an existing record. Same identity checks as Edit.
func (s *MessageService) Remove(id, caller string) error {
	if !domain.ValidMessageID(id) {
		return errors.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.messages.FindByID(id)
	if err != nil {
		return err
	}
	if m.From != caller {
		return errors.ErrNotOwner
	}
	return s.messages.Delete(id)
}
