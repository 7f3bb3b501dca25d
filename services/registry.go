package services

import (
	"batepapo/domain"
	"batepapo/errors"
	"batepapo/repositories"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RegistryService tracks active participants. Every mutation runs inside the
// shared exclusive section, which is also held by the sweeper: a heartbeat
// that wins the lock prevents eviction, an eviction that wins turns the next
// heartbeat for that name into an unknown-participant failure.
type RegistryService struct {
	mu           *sync.Mutex
	log          *slog.Logger
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	now          func() time.Time
}

func NewRegistryService(
	log *slog.Logger,
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	mu *sync.Mutex,
) *RegistryService {
	return &RegistryService{
		mu:           mu,
		log:          log,
		participants: participants,
		messages:     messages,
		now:          time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *RegistryService) WithClock(now func() time.Time) *RegistryService {
	s.now = now
	return s
}

// Register creates a participant and appends the arrival notice. Duplicate
// names are rejected, never overwritten.
func (s *RegistryService) Register(req domain.RegisterRequest) error {
	if err := domain.ValidateRegister(req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	p := domain.Participant{Name: req.Name, LastStatus: domain.NowMillis(at)}
	if err := s.participants.Insert(p); err != nil {
		return err
	}

	notice := domain.NewStatusMessage(req.Name, domain.ArrivalText, at)
	if err := s.messages.Insert(notice, at); err != nil {
		return fmt.Errorf("recording arrival notice: %w", err)
	}
	s.log.Info("Participant registered", "name", req.Name)
	return nil
}

// List returns all current participants in store order.
func (s *RegistryService) List() ([]domain.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participants.FindAll()
}

// Heartbeat refreshes lastStatus for an existing participant.
func (s *RegistryService) Heartbeat(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participants.UpdateLastStatus(name, domain.NowMillis(s.now()))
}

// exists reports whether name is a registered participant. Store failures
// are surfaced so callers don't mistake them for an absent participant.
// The caller must already hold the exclusive section.
func (s *RegistryService) exists(name string) (bool, error) {
	_, err := s.participants.FindByName(name)
	if err == errors.ErrUnknownParticipant {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Evict removes the participant and appends the departure notice, but only
// if the participant is still idle beyond threshold once the exclusive
// section is held. A participant already gone, or refreshed by a concurrent
// heartbeat, is left untouched.
func (s *RegistryService) Evict(name string, threshold time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.participants.FindByName(name)
	if err == errors.ErrUnknownParticipant {
		return nil
	}
	if err != nil {
		return err
	}

	at := s.now()
	if !p.IdleLongerThan(threshold, at) {
		return nil
	}

	if err := s.participants.Delete(name); err != nil {
		return err
	}
	notice := domain.NewStatusMessage(name, domain.DepartureText, at)
	if err := s.messages.Insert(notice, at); err != nil {
		return fmt.Errorf("recording departure notice: %w", err)
	}
	s.log.Info("Participant evicted for inactivity", "name", name)
	return nil
}
