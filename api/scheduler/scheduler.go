package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger removes expired reveal sessions
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Cleaner forgets idle rate limiter entries
type Cleaner interface {
	Cleanup(idle time.Duration) int
}

// Pruner drops request traces outside the metrics window
type Pruner interface {
	Prune(now time.Time)
}

// Scheduler runs the periodic housekeeping jobs
type Scheduler struct {
	cron     *cron.Cron
	Sessions Purger
	Limiter  Cleaner
	Metrics  Pruner
	// LimiterIdle is how long a visitor may be idle before its limiter is dropped
	LimiterIdle time.Duration
}

// NewScheduler creates a new scheduler instance
func NewScheduler(sessions Purger, limiter Cleaner, metrics Pruner) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		Sessions:    sessions,
		Limiter:     limiter,
		Metrics:     metrics,
		LimiterIdle: time.Hour,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() {
	jobs := []struct {
		spec string
		name string
		fn   func()
	}{
		{"*/5 * * * *", "purge expired reveal sessions", s.PurgeExpiredSessions},
		{"*/15 * * * *", "clean visitor limiters", s.CleanLimiters},
		{"*/5 * * * *", "prune request traces", s.PruneTraces},
	}
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.fn); err != nil {
			zap.S().Errorw("failed to register job", "job", job.name, "error", err)
		}
	}

	s.cron.Start()
	zap.S().Info("scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

// PurgeExpiredSessions deletes reveal sessions whose code has expired
func (s *Scheduler) PurgeExpiredSessions() {
	if s.Sessions == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.Sessions.PurgeExpired(ctx)
	if err != nil {
		zap.S().Errorw("failed to purge expired reveal sessions", "error", err)
		return
	}
	if n > 0 {
		zap.S().Infow("purged expired reveal sessions", "count", n)
	}
}

// CleanLimiters drops limiter state of idle visitors
func (s *Scheduler) CleanLimiters() {
	if s.Limiter == nil {
		return
	}
	if n := s.Limiter.Cleanup(s.LimiterIdle); n > 0 {
		zap.S().Debugw("cleaned visitor limiters", "count", n)
	}
}

// PruneTraces drops request traces older than the metrics window
func (s *Scheduler) PruneTraces() {
	if s.Metrics == nil {
		return
	}
	s.Metrics.Prune(time.Now())
}
