package dashboard

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/couchcryptid/space-dashboard/internal/domain"
)

// BodyStatus reports whether a body's payload is cached and usable.
type BodyStatus struct {
	Key    domain.BodyKey `json:"key"`
	Name   string         `json:"name"`
	Loaded bool           `json:"loaded"`
}

// BodiesState is the planet panel: the cache status of every body and the
// detail of the selected one. Body is nil until a selection succeeds.
type BodiesState struct {
	Statuses []BodyStatus          `json:"statuses"`
	Selected domain.BodyKey        `json:"selected"`
	Body     *domain.CelestialBody `json:"body,omitempty"`
}

// Bodies returns the current planet panel state.
func (d *Dashboard) Bodies() BodiesState {
	keys := domain.Bodies()
	statuses := make([]BodyStatus, len(keys))
	for i, k := range keys {
		payload, ok := d.store.Get(k)
		if ok {
			_, ok = decodeBody(k, payload)
		}
		statuses[i] = BodyStatus{Key: k, Name: k.Title(), Loaded: ok}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	state := BodiesState{Statuses: statuses, Selected: d.selected}
	if d.body != nil {
		b := *d.body
		state.Body = &b
	}
	return state
}

// LoadBodies fetches all eight bodies concurrently and waits for every fetch
// to settle. A failed fetch leaves that body uncached without affecting the
// others. Once all have settled the default body is selected and the
// dashboard reports ready. It returns the number of cached bodies.
func (d *Dashboard) LoadBodies(ctx context.Context) int {
	var wg sync.WaitGroup
	for _, key := range domain.Bodies() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.loadBody(ctx, key)
		}()
	}
	wg.Wait()

	cached := d.store.Len()
	d.logger.Info("bodies loaded", "cached", cached, "total", len(domain.Bodies()))

	d.SelectBody(domain.DefaultBody)
	d.ready.Store(true)
	d.metrics.DashboardReady.Set(1)
	return cached
}

// LoadBody fetches a single body into the cache unless it is already there,
// then selects it. It reports whether the selection changed to key.
func (d *Dashboard) LoadBody(ctx context.Context, key domain.BodyKey) bool {
	d.loadBody(ctx, key)
	return d.SelectBody(key)
}

func (d *Dashboard) loadBody(ctx context.Context, key domain.BodyKey) {
	if _, ok := d.store.Get(key); ok {
		return
	}
	payload, err := d.sources.Bodies.FetchBody(ctx, key)
	if err != nil {
		d.logger.Warn("body fetch failed, skipping", "body", key, "error", err)
		return
	}
	if !d.store.Put(key, payload) {
		return
	}
	d.metrics.BodiesCached.Set(float64(d.store.Len()))

	if body, ok := decodeBody(key, payload); ok {
		d.publish(ctx, domain.BodyRecord(body))
	}
}

// SelectBody makes key the detail body, re-deriving its display fields from
// the cached payload. It reports false and leaves the selection unchanged
// when the body has no usable cached payload.
func (d *Dashboard) SelectBody(key domain.BodyKey) bool {
	payload, ok := d.store.Get(key)
	if !ok {
		d.logger.Debug("body not cached, selection ignored", "body", key)
		return false
	}
	body, ok := decodeBody(key, payload)
	if !ok {
		d.logger.Warn("cached body payload unusable, selection ignored", "body", key)
		return false
	}

	d.mu.Lock()
	d.selected = key
	d.body = &body
	d.mu.Unlock()
	return true
}

// decodeBody normalizes a cached payload. Empty objects and undecodable
// payloads are unusable.
func decodeBody(key domain.BodyKey, payload []byte) (domain.CelestialBody, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || len(fields) == 0 {
		return domain.CelestialBody{}, false
	}
	var raw domain.RawBody
	if err := json.Unmarshal(payload, &raw); err != nil {
		return domain.CelestialBody{}, false
	}
	return domain.NormalizeBody(key, raw), true
}
