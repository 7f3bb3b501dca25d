package workers

import (
	"batepapo/services"
	"context"
	"log/slog"
	"time"
)

// Presence constants. The sweep period is deliberately close to the idle
// threshold so at least one sweep lands within roughly one idle window,
// bounding worst-case staleness to SweepInterval + IdleThreshold.
const (
	SweepInterval = 15 * time.Second
	IdleThreshold = 10 * time.Second
)

// SweeperWorker periodically evicts idle participants and emits their
// departure notices. It runs under the supervisor, independently of request
// handling.
type SweeperWorker struct {
	log      *slog.Logger
	registry *services.RegistryService
	interval time.Duration
	now      func() time.Time
}

func NewSweeperWorker(log *slog.Logger, registry *services.RegistryService) *SweeperWorker {
	return &SweeperWorker{
		log:      log,
		registry: registry,
		interval: SweepInterval,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (w *SweeperWorker) WithClock(now func() time.Time) *SweeperWorker {
	w.now = now
	return w
}

func (w *SweeperWorker) Run(ctx context.Context) error {
	w.log.Info("Starting presence sweeper", "interval", w.interval, "idleThreshold", IdleThreshold)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep snapshots the participant list and evicts everyone idle strictly
// longer than IdleThreshold. Each eviction is an independent unit: a failing
// one is logged and the scan moves on to the remaining participants.
func (w *SweeperWorker) Sweep() {
	participants, err := w.registry.List()
	if err != nil {
		w.log.Error("Sweep aborted, participant list unavailable", "error", err)
		return
	}

	at := w.now()
	for _, p := range participants {
		if !p.IdleLongerThan(IdleThreshold, at) {
			continue
		}
		if err := w.registry.Evict(p.Name, IdleThreshold); err != nil {
			w.log.Error("Failed to evict idle participant", "name", p.Name, "error", err)
		}
	}
}
