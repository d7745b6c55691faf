// Package scheduler refreshes the time-sensitive feeds on cron schedules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/dashboard"
	"github.com/couchcryptid/space-dashboard/internal/observability"
	"github.com/robfig/cron/v3"
)

// Refresher reloads the feeds that change over time.
type Refresher interface {
	LoadLaunches(ctx context.Context) (dashboard.LaunchState, error)
	LoadToday(ctx context.Context) (dashboard.PictureState, error)
}

// Scheduler runs refresh jobs on cron schedules.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	logger    *slog.Logger
	metrics   *observability.Metrics
	location  *time.Location
	ctx       context.Context
	jobs      int
}

// New registers the launch and picture refresh jobs. An empty spec disables
// that job. Schedules are evaluated in loc; nil means UTC.
func New(launchSpec, pictureSpec string, loc *time.Location, r Refresher, logger *slog.Logger, metrics *observability.Metrics) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		location:  loc,
		refresher: r,
		logger:    logger,
		metrics:   metrics,
		ctx:       context.Background(),
	}

	if launchSpec != "" {
		if _, err := s.cron.AddFunc(launchSpec, s.refreshLaunches); err != nil {
			return nil, err
		}
		s.jobs++
	}
	if pictureSpec != "" {
		if _, err := s.cron.AddFunc(pictureSpec, s.refreshPicture); err != nil {
			return nil, err
		}
		s.jobs++
	}

	return s, nil
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return s.jobs
}

// Location returns the zone the schedules are evaluated in.
func (s *Scheduler) Location() *time.Location {
	return s.location
}

// Start runs the jobs in the background until ctx is cancelled or Stop is
// called. Job runs inherit ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", s.jobs)
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshLaunches() {
	s.metrics.RefreshRuns.WithLabelValues("launches").Inc()
	if _, err := s.refresher.LoadLaunches(s.ctx); err != nil {
		s.logger.Warn("scheduled launch refresh failed", "error", err)
		return
	}
	s.logger.Debug("scheduled launch refresh done")
}

func (s *Scheduler) refreshPicture() {
	s.metrics.RefreshRuns.WithLabelValues("apod").Inc()
	if _, err := s.refresher.LoadToday(s.ctx); err != nil {
		s.logger.Warn("scheduled picture refresh failed", "error", err)
		return
	}
	s.logger.Debug("scheduled picture refresh done")
}
