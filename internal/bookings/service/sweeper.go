package service

import (
	"context"

	"github.com/robfig/cron/v3"

	"courtops/pkg/config"
)

// Sweeper runs SweepStalePending on a cron schedule so abandoned PENDING
// bookings release their slots without operator action.
type Sweeper struct {
	cron    *cron.Cron
	service BookingService
	cfg     *config.Config
}

func NewSweeper(service BookingService, cfg *config.Config) *Sweeper {
	return &Sweeper{
		cron:    cron.New(),
		service: service,
		cfg:     cfg,
	}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.cfg.SweeperSchedule, s.run)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.cfg.Log.Info("Stale booking sweeper started", "schedule", s.cfg.SweeperSchedule)
	return nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()

	released, err := s.service.SweepStalePending(ctx)
	if err != nil {
		s.cfg.Log.Error("Sweep of stale pending bookings failed", "error", err)
		return
	}
	s.cfg.Log.Debug("Sweep completed", "released", released)
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cfg.Log.Info("Stale booking sweeper stopped")
}
