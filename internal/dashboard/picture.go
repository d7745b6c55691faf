package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// ErrSuperseded is returned when a picture response arrives after a newer
// request was issued. The response is discarded.
var ErrSuperseded = errors.New("picture request superseded by a newer one")

// PictureState is what the picture panel shows. After a failed fetch the
// display switches to the placeholder while the text keeps its last values.
type PictureState struct {
	Picture       domain.PictureOfDay   `json:"picture"`
	Display       domain.PictureDisplay `json:"display"`
	RequestedDate string                `json:"requested_date"`
	DateLabel     string                `json:"date_label"`
	Loaded        bool                  `json:"loaded"`
	Error         string                `json:"error,omitempty"`
}

func initialPictureState() PictureState {
	p := domain.DefaultPicture()
	return PictureState{Picture: p, Display: p.Display()}
}

// Picture returns the current picture state.
func (d *Dashboard) Picture() PictureState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.picture
}

// LoadToday loads the provider's current picture. No date is sent, so the
// provider decides which day is today.
func (d *Dashboard) LoadToday(ctx context.Context) (PictureState, error) {
	return d.LoadPicture(ctx, "")
}

// LoadPicture validates date, fetches the picture and updates state. Invalid
// and future dates fail with domain.ErrInvalidDate or domain.ErrFutureDate
// without a request. An empty date asks the provider for its current picture
// and the requested date is taken from the response. If another picture
// request was issued while this one was in flight, the response is dropped
// and ErrSuperseded returned.
func (d *Dashboard) LoadPicture(ctx context.Context, date string) (PictureState, error) {
	iso := strings.TrimSpace(date)
	if iso != "" {
		resolved, err := domain.ResolvePictureDate(iso, d.loc)
		if err != nil {
			return d.Picture(), err
		}
		iso = resolved
	}
	seq := d.pictureSeq.Add(1)

	raw, fetchErr := d.sources.Pictures.FetchPicture(ctx, iso)

	d.mu.Lock()
	if seq != d.pictureSeq.Load() {
		state := d.picture
		d.mu.Unlock()
		d.metrics.StalePicturesDiscarded.Inc()
		d.logger.Debug("stale picture response discarded", "date", iso)
		return state, ErrSuperseded
	}

	if iso == "" {
		iso = raw.Date
		if fetchErr != nil || iso == "" {
			iso = domain.Today(d.loc)
		}
	}
	d.picture.RequestedDate = iso
	d.picture.DateLabel, _ = domain.FormatInputDate(iso)
	if fetchErr != nil {
		d.picture.Display = domain.PlaceholderDisplay()
		d.picture.Error = fetchErr.Error()
		state := d.picture
		d.mu.Unlock()
		d.logger.Warn("picture load failed, showing placeholder", "date", iso, "error", fetchErr)
		return state, fmt.Errorf("load picture %s: %w", iso, fetchErr)
	}

	picture := domain.NormalizePicture(raw)
	d.picture.Picture = picture
	d.picture.Display = picture.Display()
	d.picture.Loaded = true
	d.picture.Error = ""
	state := d.picture
	d.mu.Unlock()

	d.logger.Info("picture loaded", "date", iso, "media_type", picture.MediaType)
	d.publish(ctx, domain.PictureRecord(picture))
	return state, nil
}
