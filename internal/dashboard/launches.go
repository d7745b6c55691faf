package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// LaunchErrorMessage is the one user-facing message for a failed launch load.
const LaunchErrorMessage = "Failed to load launches. Please try again later."

// LaunchState is the launch feed panel. A failed refresh sets Error and keeps
// the previous feed and count.
type LaunchState struct {
	Feed      domain.LaunchFeed `json:"feed"`
	Label     string            `json:"label"`
	Loaded    bool              `json:"loaded"`
	Error     string            `json:"error,omitempty"`
	UpdatedAt time.Time         `json:"updated_at,omitzero"`
}

// Launches returns the current launch state.
func (d *Dashboard) Launches() LaunchState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.launches
}

// LoadLaunches fetches and normalizes the upcoming launch feed.
func (d *Dashboard) LoadLaunches(ctx context.Context) (LaunchState, error) {
	page, err := d.sources.Launches.FetchLaunches(ctx)
	if err != nil {
		d.mu.Lock()
		d.launches.Error = LaunchErrorMessage
		state := d.launches
		d.mu.Unlock()
		d.logger.Warn("launch load failed", "error", err)
		return state, fmt.Errorf("load launches: %w", err)
	}

	feed := domain.NormalizeLaunches(page, d.loc)

	d.mu.Lock()
	d.launches = LaunchState{
		Feed:      feed,
		Label:     feed.CountLabel(),
		Loaded:    true,
		UpdatedAt: domain.Now(),
	}
	state := d.launches
	d.mu.Unlock()

	d.logger.Info("launches loaded", "count", feed.Count)
	d.publish(ctx, domain.LaunchRecords(feed)...)
	return state, nil
}
