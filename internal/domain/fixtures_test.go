package domain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixtures under testdata/ are recorded provider payloads; see cmd/recordfixtures.

func loadFixture(t *testing.T, name string, v any) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestFixtures_Picture(t *testing.T) {
	var raw RawPicture
	loadFixture(t, "apod.json", &raw)

	p := NormalizePicture(raw)
	assert.Equal(t, "Astronomy Picture of the Day - January 15, 2024", p.Heading)
	assert.Equal(t, MediaImage, p.MediaType)
	assert.Equal(t, raw.URL, p.MediaURL)
	assert.Contains(t, p.CopyrightText, "Roberto Colombari")

	d := p.Display()
	assert.Equal(t, DisplayImage, d.Mode)
	assert.True(t, d.ImageVisible)
}

func TestFixtures_PictureVideo(t *testing.T) {
	var raw RawPicture
	loadFixture(t, "apod_video.json", &raw)

	p := NormalizePicture(raw)
	assert.Equal(t, MediaVideo, p.MediaType)
	assert.Equal(t, DefaultCopyright, p.CopyrightText)

	d := p.Display()
	assert.Equal(t, DisplayVideo, d.Mode)
	assert.False(t, d.ImageVisible)
	assert.Equal(t, raw.URL, d.EmbedURL)
}

func TestFixtures_Launches(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })

	var page RawLaunchPage
	loadFixture(t, "launches.json", &page)

	feed := NormalizeLaunches(page, time.UTC)
	require.Equal(t, 4, feed.Count)
	require.NotNil(t, feed.Featured)
	require.Len(t, feed.Others, 3)

	tests := []struct {
		name   string
		got    LaunchRecord
		status StatusClass
		icon   LaunchIcon
		days   *int
	}{
		{"falcon", *feed.Featured, StatusAffirmative, IconShuttle, ptr(3)},
		{"starship", feed.Others[0], StatusTentative, IconRocket, ptr(5)},
		{"electron", feed.Others[1], StatusNeutral, IconSatellite, ptr(10)},
		{"unscheduled", feed.Others[2], StatusNeutral, IconSatellite, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.got.StatusClass)
			assert.Equal(t, tt.icon, tt.got.Icon)
			assert.Equal(t, tt.days, tt.got.DaysUntil)
		})
	}

	assert.Equal(t, "Launch of a Synspective StriX satellite.", feed.Others[1].Description, "falls back to the top-level description")

	unscheduled := feed.Others[2]
	assert.Equal(t, UnknownAgency, unscheduled.AgencyName)
	assert.Equal(t, UnknownRocket, unscheduled.RocketName)
	assert.Equal(t, ToBeDetermined, unscheduled.PadName)
	assert.Equal(t, ToBeDetermined, unscheduled.DateLong)
	assert.Equal(t, NoLaunchDescription, unscheduled.Description)
}

func TestFixtures_Bodies(t *testing.T) {
	for _, key := range Bodies() {
		t.Run(string(key), func(t *testing.T) {
			var raw RawBody
			loadFixture(t, filepath.Join("bodies", string(key)+".json"), &raw)

			b := NormalizeBody(key, raw)
			assert.Equal(t, key.Title(), b.Display.Name)
			assert.True(t, b.IsPlanet)
			assert.NotEmpty(t, b.Display.Facts)

			v := reflect.ValueOf(b.Display)
			for i := range v.NumField() {
				if s, ok := v.Field(i).Interface().(string); ok {
					assert.NotEmpty(t, s, v.Type().Field(i).Name)
				}
			}
		})
	}
}

func TestFixtures_BodyMass(t *testing.T) {
	tests := []struct {
		key  BodyKey
		want string
	}{
		{Mercury, "330,114,000,000,000,000,000,000 kg"},
		{Mars, "641,711,999,999,999,900,000,000 kg"},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			var raw RawBody
			loadFixture(t, filepath.Join("bodies", string(tt.key)+".json"), &raw)

			assert.Equal(t, tt.want, NormalizeBody(tt.key, raw).Display.Mass)
		})
	}
}

func TestFixtures_BodyDiscovery(t *testing.T) {
	var raw RawBody
	loadFixture(t, "bodies/neptune.json", &raw)

	b := NormalizeBody(Neptune, raw)
	assert.Equal(t, "Urbain Le Verrier", b.Display.Discoverer)
	assert.Equal(t, "23/09/1846", b.Display.DiscoveryDate)
	assert.Equal(t, "1 known moon", b.Display.Facts[0])
}
