// Package dashboard holds the live state of the three feeds: the current
// picture, the launch feed and the body cache with its selection.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/domain"
	"github.com/couchcryptid/space-dashboard/internal/observability"
)

// PictureSource fetches a raw picture of the day.
type PictureSource interface {
	FetchPicture(ctx context.Context, date string) (domain.RawPicture, error)
}

// LaunchSource fetches the raw upcoming launch page.
type LaunchSource interface {
	FetchLaunches(ctx context.Context) (domain.RawLaunchPage, error)
}

// BodySource fetches the raw payload for one celestial body.
type BodySource interface {
	FetchBody(ctx context.Context, key domain.BodyKey) ([]byte, error)
}

// Publisher forwards normalized records downstream.
type Publisher interface {
	Publish(ctx context.Context, records []domain.Record) error
}

// Sources groups the three upstream feeds.
type Sources struct {
	Pictures PictureSource
	Launches LaunchSource
	Bodies   BodySource
}

// Dashboard is the application state shared by the API, the terminal UI and
// the refresh scheduler. All methods are safe for concurrent use.
type Dashboard struct {
	sources   Sources
	publisher Publisher
	store     *BodyStore
	loc       *time.Location
	logger    *slog.Logger
	metrics   *observability.Metrics

	// pictureSeq numbers picture requests; only the latest may update state.
	pictureSeq atomic.Uint64
	ready      atomic.Bool

	mu       sync.RWMutex
	picture  PictureState
	launches LaunchState
	selected domain.BodyKey
	body     *domain.CelestialBody
}

// New creates a Dashboard. publisher may be nil to disable publishing; loc is
// the zone used for "today" and launch times.
func New(sources Sources, publisher Publisher, loc *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Dashboard {
	if loc == nil {
		loc = time.UTC
	}
	return &Dashboard{
		sources:   sources,
		publisher: publisher,
		store:     NewBodyStore(),
		loc:       loc,
		logger:    logger,
		metrics:   metrics,
		picture:   initialPictureState(),
		launches:  LaunchState{Feed: domain.LaunchFeed{Others: []domain.LaunchRecord{}}},
		selected:  domain.DefaultBody,
	}
}

// Location returns the display zone.
func (d *Dashboard) Location() *time.Location {
	return d.loc
}

// CheckReadiness returns nil once the initial body load has settled, or an
// error describing why the service is not yet ready.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if !d.ready.Load() {
		return errors.New("celestial bodies have not finished loading")
	}
	return nil
}

// Snapshot is a consistent copy of the dashboard state.
type Snapshot struct {
	Picture  PictureState `json:"picture"`
	Launches LaunchState  `json:"launches"`
	Bodies   BodiesState  `json:"bodies"`
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() Snapshot {
	return Snapshot{
		Picture:  d.Picture(),
		Launches: d.Launches(),
		Bodies:   d.Bodies(),
	}
}

// Load runs the three startup loads concurrently: today's picture, the launch
// feed and all bodies. Each pipeline degrades on its own; Load returns once
// all three have settled.
func (d *Dashboard) Load(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		_, _ = d.LoadToday(ctx)
	}()
	go func() {
		defer wg.Done()
		_, _ = d.LoadLaunches(ctx)
	}()
	go func() {
		defer wg.Done()
		d.LoadBodies(ctx)
	}()
	wg.Wait()
}

// publish forwards records when a publisher is configured. Failures are
// logged and counted but never surface to the caller.
func (d *Dashboard) publish(ctx context.Context, records ...domain.Record) {
	if d.publisher == nil || len(records) == 0 {
		return
	}
	if err := d.publisher.Publish(ctx, records); err != nil {
		d.metrics.PublishErrors.Inc()
		d.logger.Warn("publish records failed", "record_type", records[0].Type, "count", len(records), "error", err)
		return
	}
	d.metrics.RecordsPublished.WithLabelValues(string(records[0].Type)).Add(float64(len(records)))
}
