package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RefreshScheduler runs periodic scrape cycles in-process. Failures are
// logged and the next run proceeds; every cycle is a fresh attempt.
type RefreshScheduler struct {
	cron    *cron.Cron
	tracker *Tracker
	logger  *zap.Logger
}

func NewRefreshScheduler(spec string, tracker *Tracker, logger *zap.Logger) (*RefreshScheduler, error) {
	c := cron.New()

	s := &RefreshScheduler{
		cron:    c,
		tracker: tracker,
		logger:  logger,
	}

	if _, err := c.AddFunc(spec, s.runCycle); err != nil {
		return nil, err
	}

	logger.Info("Refresh scheduler configured", zap.String("spec", spec))
	return s, nil
}

func (s *RefreshScheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	if _, err := s.tracker.Refresh(ctx); err != nil {
		s.logger.Error("Scheduled refresh failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled refresh completed", zap.Duration("elapsed", time.Since(start)))
}

func (s *RefreshScheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running cycle to finish.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}
