package dashboard_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/dashboard"
	"github.com/couchcryptid/space-dashboard/internal/domain"
	"github.com/couchcryptid/space-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPictures struct {
	fetch func(ctx context.Context, date string) (domain.RawPicture, error)
	calls atomic.Int64

	mu    sync.Mutex
	dates []string
}

func (m *mockPictures) FetchPicture(ctx context.Context, date string) (domain.RawPicture, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.dates = append(m.dates, date)
	m.mu.Unlock()
	return m.fetch(ctx, date)
}

func (m *mockPictures) requestedDates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.dates...)
}

type mockLaunches struct {
	page domain.RawLaunchPage
	err  error
}

func (m *mockLaunches) FetchLaunches(context.Context) (domain.RawLaunchPage, error) {
	return m.page, m.err
}

type mockBodies struct {
	payloads map[domain.BodyKey]string
	calls    atomic.Int64
	delay    time.Duration

	// When barrier is set, every fetch blocks until barrier calls are in
	// flight at once. A fetch that gives up waiting sets stalled.
	barrier int64
	allIn   chan struct{}
	once    sync.Once
	stalled atomic.Bool
}

func (m *mockBodies) FetchBody(_ context.Context, key domain.BodyKey) ([]byte, error) {
	n := m.calls.Add(1)
	if m.barrier > 0 {
		if n == m.barrier {
			m.once.Do(func() { close(m.allIn) })
		}
		select {
		case <-m.allIn:
		case <-time.After(2 * time.Second):
			m.stalled.Store(true)
			return nil, &domain.FetchError{Provider: domain.ProviderBodies, Err: errors.New("fetches did not overlap")}
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	p, ok := m.payloads[key]
	if !ok {
		return nil, &domain.FetchError{Provider: domain.ProviderBodies, StatusCode: 404, Err: errors.New("not found")}
	}
	return []byte(p), nil
}

type mockPublisher struct {
	mu      sync.Mutex
	records []domain.Record
	err     error
}

func (m *mockPublisher) Publish(_ context.Context, records []domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, records...)
	return nil
}

func (m *mockPublisher) published() []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Record(nil), m.records...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(testNow))
	t.Cleanup(func() { domain.SetClock(nil) })
}

type fixture struct {
	d         *dashboard.Dashboard
	pictures  *mockPictures
	launches  *mockLaunches
	bodies    *mockBodies
	publisher *mockPublisher
	metrics   *observability.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	freezeClock(t)

	f := &fixture{
		pictures: &mockPictures{fetch: func(_ context.Context, date string) (domain.RawPicture, error) {
			if date == "" {
				date = "2024-03-10"
			}
			return domain.RawPicture{Date: date, Title: "Picture " + date, MediaType: "image", URL: "https://example.com/" + date + ".jpg"}, nil
		}},
		launches:  &mockLaunches{},
		bodies:    &mockBodies{payloads: map[domain.BodyKey]string{}},
		publisher: &mockPublisher{},
		metrics:   observability.NewMetricsForTesting(),
	}
	f.d = dashboard.New(
		dashboard.Sources{Pictures: f.pictures, Launches: f.launches, Bodies: f.bodies},
		f.publisher, time.UTC, discardLogger(), f.metrics,
	)
	return f
}

// --- picture ---

func TestDashboard_InitialPicture(t *testing.T) {
	f := newFixture(t)

	state := f.d.Picture()
	assert.False(t, state.Loaded)
	assert.Equal(t, domain.DefaultPictureTitle, state.Picture.Title)
	assert.Equal(t, domain.DefaultExplanation, state.Picture.Explanation)
	assert.Equal(t, domain.DefaultCopyright, state.Picture.CopyrightText)
}

func TestDashboard_LoadPicture(t *testing.T) {
	f := newFixture(t)

	state, err := f.d.LoadPicture(context.Background(), "2024-01-15")
	require.NoError(t, err)

	assert.True(t, state.Loaded)
	assert.Equal(t, "2024-01-15", state.RequestedDate)
	assert.Equal(t, "Jan 15, 2024", state.DateLabel)
	assert.Equal(t, "Picture 2024-01-15", state.Picture.Title)
	assert.Equal(t, domain.DisplayImage, state.Display.Mode)
	assert.Empty(t, state.Error)

	records := f.publisher.published()
	require.Len(t, records, 1)
	assert.Equal(t, domain.RecordPicture, records[0].Type)
	assert.Equal(t, "2024-01-15", records[0].Key)
}

func TestDashboard_LoadToday(t *testing.T) {
	f := newFixture(t)

	state, err := f.d.LoadToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", state.RequestedDate)
	assert.Equal(t, []string{""}, f.pictures.requestedDates())
}

func TestDashboard_LoadToday_UsesProviderDate(t *testing.T) {
	f := newFixture(t)
	// The provider is still on the previous day while the display zone has
	// already rolled over.
	f.pictures.fetch = func(_ context.Context, date string) (domain.RawPicture, error) {
		if date != "" {
			return domain.RawPicture{}, errors.New("unexpected date " + date)
		}
		return domain.RawPicture{Date: "2024-03-09", Title: "Provider today", MediaType: "image", URL: "https://example.com/a.jpg"}, nil
	}

	state, err := f.d.LoadToday(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{""}, f.pictures.requestedDates(), "today is left to the provider")
	assert.Equal(t, "2024-03-09", state.RequestedDate)
	assert.Equal(t, "Mar 9, 2024", state.DateLabel)
	assert.Equal(t, "Provider today", state.Picture.Title)

	records := f.publisher.published()
	require.Len(t, records, 1)
	assert.Equal(t, "2024-03-09", records[0].Key)
}

func TestDashboard_LoadToday_FailureLabelsLocalToday(t *testing.T) {
	f := newFixture(t)
	f.pictures.fetch = func(context.Context, string) (domain.RawPicture, error) {
		return domain.RawPicture{}, &domain.FetchError{Provider: domain.ProviderPicture, StatusCode: 503, Err: errors.New("unavailable")}
	}

	state, err := f.d.LoadToday(context.Background())
	require.Error(t, err)
	assert.Equal(t, "2024-03-10", state.RequestedDate)
	assert.Equal(t, "Mar 10, 2024", state.DateLabel)
}

func TestDashboard_LoadPicture_Video(t *testing.T) {
	f := newFixture(t)
	f.pictures.fetch = func(context.Context, string) (domain.RawPicture, error) {
		return domain.RawPicture{MediaType: "video", URL: "https://www.youtube.com/embed/xyz"}, nil
	}

	state, err := f.d.LoadPicture(context.Background(), "2024-02-01")
	require.NoError(t, err)

	assert.Equal(t, domain.DisplayVideo, state.Display.Mode)
	assert.False(t, state.Display.ImageVisible)
	assert.Equal(t, "https://www.youtube.com/embed/xyz", state.Display.EmbedURL)
}

func TestDashboard_LoadPicture_RejectsFutureDateWithoutRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.d.LoadPicture(context.Background(), "2024-03-11")
	require.ErrorIs(t, err, domain.ErrFutureDate)

	_, err = f.d.LoadPicture(context.Background(), "yesterday")
	require.ErrorIs(t, err, domain.ErrInvalidDate)

	assert.Zero(t, f.pictures.calls.Load())
	assert.False(t, f.d.Picture().Loaded)
}

func TestDashboard_LoadPicture_FailureKeepsText(t *testing.T) {
	f := newFixture(t)

	_, err := f.d.LoadPicture(context.Background(), "2024-01-15")
	require.NoError(t, err)

	f.pictures.fetch = func(context.Context, string) (domain.RawPicture, error) {
		return domain.RawPicture{}, &domain.FetchError{Provider: domain.ProviderPicture, StatusCode: 500, Err: errors.New("boom")}
	}
	state, err := f.d.LoadPicture(context.Background(), "2024-01-16")

	var fetchErr *domain.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.DisplayPlaceholder, state.Display.Mode)
	assert.Equal(t, domain.PlaceholderImage, state.Display.ImageURL)
	assert.Equal(t, "Picture 2024-01-15", state.Picture.Title, "text keeps the last successful values")
	assert.Equal(t, "2024-01-16", state.RequestedDate)
	assert.NotEmpty(t, state.Error)
}

func TestDashboard_LoadPicture_FailureBeforeAnySuccessShowsDefaults(t *testing.T) {
	f := newFixture(t)
	f.pictures.fetch = func(context.Context, string) (domain.RawPicture, error) {
		return domain.RawPicture{}, &domain.FetchError{Provider: domain.ProviderPicture, Err: errors.New("offline")}
	}

	state, err := f.d.LoadToday(context.Background())
	require.Error(t, err)

	assert.Equal(t, domain.DisplayPlaceholder, state.Display.Mode)
	assert.Equal(t, domain.DefaultPictureTitle, state.Picture.Title)
	assert.Equal(t, domain.DefaultExplanation, state.Picture.Explanation)
	assert.Equal(t, domain.DefaultCopyright, state.Picture.CopyrightText)
}

func TestDashboard_LoadPicture_DiscardsStaleResponse(t *testing.T) {
	f := newFixture(t)

	release := make(chan struct{})
	started := make(chan struct{})
	f.pictures.fetch = func(_ context.Context, date string) (domain.RawPicture, error) {
		if date == "2024-01-01" {
			close(started)
			<-release
		}
		return domain.RawPicture{Date: date, Title: "Picture " + date}, nil
	}

	slowErr := make(chan error, 1)
	go func() {
		_, err := f.d.LoadPicture(context.Background(), "2024-01-01")
		slowErr <- err
	}()
	<-started

	state, err := f.d.LoadPicture(context.Background(), "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, "Picture 2024-02-02", state.Picture.Title)

	close(release)
	require.ErrorIs(t, <-slowErr, dashboard.ErrSuperseded)

	assert.Equal(t, "Picture 2024-02-02", f.d.Picture().Picture.Title)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.StalePicturesDiscarded), 0)
}

// --- launches ---

func launchPage() domain.RawLaunchPage {
	return domain.RawLaunchPage{Results: []domain.RawLaunch{
		{ID: "l1", Name: "Falcon 9 | Starlink", Net: "2024-03-13T12:00:00Z", Status: &domain.RawLaunchStatus{Abbrev: "Go"}},
		{ID: "l2", Name: "Starship | IFT-4", Status: &domain.RawLaunchStatus{Abbrev: "TBC"}},
	}}
}

func TestDashboard_LoadLaunches(t *testing.T) {
	f := newFixture(t)
	f.launches.page = launchPage()

	state, err := f.d.LoadLaunches(context.Background())
	require.NoError(t, err)

	assert.True(t, state.Loaded)
	assert.Equal(t, 2, state.Feed.Count)
	assert.Equal(t, "2 Launches", state.Label)
	require.NotNil(t, state.Feed.Featured)
	assert.Equal(t, "l1", state.Feed.Featured.ID)
	require.NotNil(t, state.Feed.Featured.DaysUntil)
	assert.Equal(t, 3, *state.Feed.Featured.DaysUntil)
	require.Len(t, state.Feed.Others, 1)
	assert.Equal(t, domain.StatusTentative, state.Feed.Others[0].StatusClass)
	assert.Equal(t, testNow, state.UpdatedAt)

	assert.Len(t, f.publisher.published(), 2)
	assert.InDelta(t, 2, testutil.ToFloat64(f.metrics.RecordsPublished.WithLabelValues("launch")), 0)
}

func TestDashboard_LoadLaunches_FailureKeepsCount(t *testing.T) {
	f := newFixture(t)
	f.launches.page = launchPage()
	_, err := f.d.LoadLaunches(context.Background())
	require.NoError(t, err)

	f.launches.err = &domain.FetchError{Provider: domain.ProviderLaunches, StatusCode: 503, Err: errors.New("unavailable")}
	state, err := f.d.LoadLaunches(context.Background())
	require.Error(t, err)

	assert.Equal(t, dashboard.LaunchErrorMessage, state.Error)
	assert.Equal(t, 2, state.Feed.Count)
	assert.Equal(t, "2 Launches", state.Label)
}

func TestDashboard_LoadLaunches_Empty(t *testing.T) {
	f := newFixture(t)

	state, err := f.d.LoadLaunches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, state.Feed.Count)
	assert.Nil(t, state.Feed.Featured)
	assert.Empty(t, state.Feed.Others)
	assert.Empty(t, state.Error)
}

func TestDashboard_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	f.launches.page = launchPage()

	state, err := f.d.LoadLaunches(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Loaded)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.PublishErrors), 0)
}

// --- bodies ---

const (
	earthPayload = `{"englishName":"Earth","isPlanet":true,"moons":[{"moon":"La Lune"}],"gravity":9.8,"semimajorAxis":149598023}`
	marsPayload  = `{"englishName":"Mars","isPlanet":true,"moons":[{"moon":"Phobos"},{"moon":"Deimos"}],"gravity":3.71}`
)

func TestDashboard_LoadBodies(t *testing.T) {
	f := newFixture(t)
	f.bodies.payloads[domain.Earth] = earthPayload
	f.bodies.payloads[domain.Mars] = marsPayload
	f.bodies.delay = 10 * time.Millisecond

	require.Error(t, f.d.CheckReadiness(context.Background()))

	cached := f.d.LoadBodies(context.Background())

	assert.Equal(t, 2, cached)
	assert.Equal(t, int64(8), f.bodies.calls.Load(), "every body is fetched even when others fail")
	require.NoError(t, f.d.CheckReadiness(context.Background()))
	assert.InDelta(t, 2, testutil.ToFloat64(f.metrics.BodiesCached), 0)

	state := f.d.Bodies()
	assert.Equal(t, domain.Earth, state.Selected)
	require.NotNil(t, state.Body)
	assert.Equal(t, "Earth", state.Body.Display.Name)
	assert.Equal(t, "149.6M km", state.Body.Display.Distance)

	require.Len(t, state.Statuses, 8)
	for _, s := range state.Statuses {
		want := s.Key == domain.Earth || s.Key == domain.Mars
		assert.Equal(t, want, s.Loaded, "status for %s", s.Key)
	}

	assert.Len(t, f.publisher.published(), 2)
}

func TestDashboard_LoadBodies_FetchesConcurrently(t *testing.T) {
	f := newFixture(t)
	f.bodies.payloads[domain.Earth] = earthPayload
	f.bodies.barrier = int64(len(domain.Bodies()))
	f.bodies.allIn = make(chan struct{})

	cached := f.d.LoadBodies(context.Background())

	assert.False(t, f.bodies.stalled.Load(), "all body fetches must be in flight together")
	assert.Equal(t, 1, cached)
	assert.Equal(t, int64(8), f.bodies.calls.Load())
}

func TestDashboard_SelectBody(t *testing.T) {
	f := newFixture(t)
	f.bodies.payloads[domain.Earth] = earthPayload
	f.bodies.payloads[domain.Mars] = marsPayload
	f.d.LoadBodies(context.Background())

	require.True(t, f.d.SelectBody(domain.Mars))
	state := f.d.Bodies()
	assert.Equal(t, domain.Mars, state.Selected)
	assert.Equal(t, "2", state.Body.Display.Moons)
	assert.Equal(t, "3.7 m/s²", state.Body.Display.Gravity)

	t.Run("uncached body is a no-op", func(t *testing.T) {
		assert.False(t, f.d.SelectBody(domain.Jupiter))
		state := f.d.Bodies()
		assert.Equal(t, domain.Mars, state.Selected)
		assert.Equal(t, "Mars", state.Body.Display.Name)
	})

	t.Run("selection re-derives without refetching", func(t *testing.T) {
		before := f.bodies.calls.Load()
		require.True(t, f.d.SelectBody(domain.Earth))
		require.True(t, f.d.SelectBody(domain.Mars))
		assert.Equal(t, before, f.bodies.calls.Load())
	})
}

func TestDashboard_SelectBody_EmptyPayloadIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.bodies.payloads[domain.Earth] = earthPayload
	f.bodies.payloads[domain.Venus] = `{}`
	f.d.LoadBodies(context.Background())

	assert.False(t, f.d.SelectBody(domain.Venus))
	state := f.d.Bodies()
	assert.Equal(t, domain.Earth, state.Selected)

	for _, s := range state.Statuses {
		switch s.Key {
		case domain.Venus:
			assert.False(t, s.Loaded, "an empty payload is not reported as loaded")
		case domain.Earth:
			assert.True(t, s.Loaded)
		}
	}
}

func TestDashboard_LoadBody(t *testing.T) {
	f := newFixture(t)
	f.bodies.payloads[domain.Mars] = marsPayload

	require.True(t, f.d.LoadBody(context.Background(), domain.Mars))
	assert.Equal(t, domain.Mars, f.d.Bodies().Selected)
	assert.Equal(t, int64(1), f.bodies.calls.Load())

	require.True(t, f.d.LoadBody(context.Background(), domain.Mars))
	assert.Equal(t, int64(1), f.bodies.calls.Load(), "cached body is not fetched again")

	assert.False(t, f.d.LoadBody(context.Background(), domain.Saturn))
	assert.Equal(t, domain.Mars, f.d.Bodies().Selected)
}

func TestDashboard_LoadBodies_EarthMissing(t *testing.T) {
	f := newFixture(t)
	f.bodies.payloads[domain.Mars] = marsPayload

	f.d.LoadBodies(context.Background())

	state := f.d.Bodies()
	assert.Equal(t, domain.Earth, state.Selected)
	assert.Nil(t, state.Body)
	require.NoError(t, f.d.CheckReadiness(context.Background()))
}

func TestDashboard_LoadBodies_CachesOncePerSession(t *testing.T) {
	f := newFixture(t)
	f.bodies.payloads[domain.Earth] = earthPayload

	f.d.LoadBodies(context.Background())
	f.bodies.payloads[domain.Earth] = marsPayload
	f.d.LoadBodies(context.Background())

	assert.Equal(t, int64(8+7), f.bodies.calls.Load(), "cached bodies are not fetched again")
	assert.Equal(t, "Earth", f.d.Bodies().Body.Display.Name)
}

// --- whole dashboard ---

func TestDashboard_Load(t *testing.T) {
	f := newFixture(t)
	f.launches.page = launchPage()
	f.bodies.payloads[domain.Earth] = earthPayload

	f.d.Load(context.Background())

	snap := f.d.Snapshot()
	assert.True(t, snap.Picture.Loaded)
	assert.Equal(t, "2024-03-10", snap.Picture.RequestedDate)
	assert.True(t, snap.Launches.Loaded)
	assert.Equal(t, domain.Earth, snap.Bodies.Selected)
	require.NotNil(t, snap.Bodies.Body)
}

func TestDashboard_PipelinesAreIndependent(t *testing.T) {
	f := newFixture(t)
	f.launches.err = &domain.FetchError{Provider: domain.ProviderLaunches, Err: errors.New("down")}
	f.pictures.fetch = func(context.Context, string) (domain.RawPicture, error) {
		return domain.RawPicture{}, &domain.FetchError{Provider: domain.ProviderPicture, Err: errors.New("down")}
	}
	f.bodies.payloads[domain.Earth] = earthPayload

	f.d.Load(context.Background())

	snap := f.d.Snapshot()
	assert.Equal(t, domain.DisplayPlaceholder, snap.Picture.Display.Mode)
	assert.Equal(t, dashboard.LaunchErrorMessage, snap.Launches.Error)
	require.NotNil(t, snap.Bodies.Body)
	assert.Equal(t, "Earth", snap.Bodies.Body.Display.Name)
}
