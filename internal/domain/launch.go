package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Launch fallbacks for fields the provider leaves out.
const (
	UnknownLaunch       = "Unknown Launch"
	UnknownAgency       = "Unknown Agency"
	UnknownRocket       = "Unknown Rocket"
	UnknownCountry      = "Unknown"
	ToBeDetermined      = "TBD"
	NoLaunchDescription = "No description available."
)

// StatusClass buckets a launch status abbreviation for styling.
type StatusClass string

const (
	StatusAffirmative StatusClass = "affirmative"
	StatusTentative   StatusClass = "tentative"
	StatusNeutral     StatusClass = "neutral"
)

// LaunchIcon picks the card glyph from the rocket name.
type LaunchIcon string

const (
	IconShuttle   LaunchIcon = "shuttle"
	IconRocket    LaunchIcon = "rocket"
	IconSatellite LaunchIcon = "satellite"
)

// RawLaunchPage is the upcoming-launch list response.
type RawLaunchPage struct {
	Count   int         `json:"count"`
	Next    *string     `json:"next"`
	Results []RawLaunch `json:"results"`
}

// RawLaunch is one upcoming launch as returned by the provider. Nested objects
// are pointers because any of them may be null.
type RawLaunch struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Net                   string           `json:"net"`
	Description           string           `json:"description,omitempty"`
	Status                *RawLaunchStatus `json:"status"`
	LaunchServiceProvider *RawAgency       `json:"launch_service_provider"`
	Rocket                *RawRocket       `json:"rocket"`
	Pad                   *RawPad          `json:"pad"`
	Mission               *RawMission      `json:"mission"`
}

type RawLaunchStatus struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
}

type RawAgency struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type RawRocket struct {
	ID            int                 `json:"id"`
	Configuration *RawRocketConfigRef `json:"configuration"`
}

type RawRocketConfigRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name,omitempty"`
}

type RawPad struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Location *RawPadLocation `json:"location"`
}

type RawPadLocation struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

type RawMission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// LaunchRecord is a display-ready upcoming launch. NetTime and DaysUntil are
// nil when the provider has no scheduled time.
type LaunchRecord struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	AgencyName         string      `json:"agency_name"`
	RocketName         string      `json:"rocket_name"`
	NetTime            *time.Time  `json:"net_time,omitempty"`
	PadName            string      `json:"pad_name"`
	CountryCode        string      `json:"country_code"`
	StatusAbbreviation string      `json:"status"`
	StatusClass        StatusClass `json:"status_class"`
	Description        string      `json:"description"`
	DaysUntil          *int        `json:"days_until,omitempty"`
	Icon               LaunchIcon  `json:"icon"`
	DateLong           string      `json:"date_long"`
	DateShort          string      `json:"date_short"`
	TimeLong           string      `json:"time_long"`
	TimeShort          string      `json:"time_short"`
}

// LaunchFeed splits the ordered launch list into the featured launch and the
// grid. Featured is nil for an empty feed.
type LaunchFeed struct {
	Count    int            `json:"count"`
	Featured *LaunchRecord  `json:"featured,omitempty"`
	Others   []LaunchRecord `json:"others"`
}

// CountLabel is the feed header, e.g. "10 Launches".
func (f LaunchFeed) CountLabel() string {
	return strconv.Itoa(f.Count) + " Launches"
}

// ClassifyStatus maps "Go" to affirmative and "TBC" to tentative. Anything
// else, including "TBD" and an empty status, is neutral.
func ClassifyStatus(abbrev string) StatusClass {
	switch abbrev {
	case "Go":
		return StatusAffirmative
	case "TBC":
		return StatusTentative
	default:
		return StatusNeutral
	}
}

// SelectIcon chooses the launch glyph from the rocket name, case-insensitively.
func SelectIcon(rocketName string) LaunchIcon {
	name := strings.ToLower(rocketName)
	switch {
	case strings.Contains(name, "falcon"):
		return IconShuttle
	case strings.Contains(name, "starship"):
		return IconRocket
	default:
		return IconSatellite
	}
}

// DaysUntil returns the whole days remaining until net, rounded up and
// clamped at zero for launches already in the past.
func DaysUntil(net, now time.Time) int {
	days := math.Ceil(net.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// NormalizeLaunch maps one provider launch onto display fields. Times are
// rendered in loc.
func NormalizeLaunch(raw RawLaunch, loc *time.Location) LaunchRecord {
	if loc == nil {
		loc = time.UTC
	}
	r := LaunchRecord{
		ID:                 raw.ID,
		Name:               orDefault(raw.Name, UnknownLaunch),
		AgencyName:         UnknownAgency,
		RocketName:         UnknownRocket,
		PadName:            ToBeDetermined,
		CountryCode:        UnknownCountry,
		StatusAbbreviation: ToBeDetermined,
		Description:        NoLaunchDescription,
		DateLong:           ToBeDetermined,
		DateShort:          ToBeDetermined,
		TimeLong:           ToBeDetermined,
		TimeShort:          ToBeDetermined,
	}

	if raw.LaunchServiceProvider != nil {
		r.AgencyName = orDefault(raw.LaunchServiceProvider.Name, UnknownAgency)
	}
	if raw.Rocket != nil && raw.Rocket.Configuration != nil {
		r.RocketName = orDefault(raw.Rocket.Configuration.Name, UnknownRocket)
	}
	if raw.Pad != nil {
		r.PadName = orDefault(raw.Pad.Name, ToBeDetermined)
		if raw.Pad.Location != nil {
			r.CountryCode = orDefault(raw.Pad.Location.CountryCode, UnknownCountry)
		}
	}

	abbrev := ""
	if raw.Status != nil {
		abbrev = raw.Status.Abbrev
	}
	r.StatusAbbreviation = orDefault(abbrev, ToBeDetermined)
	r.StatusClass = ClassifyStatus(abbrev)

	switch {
	case raw.Mission != nil && strings.TrimSpace(raw.Mission.Description) != "":
		r.Description = raw.Mission.Description
	case strings.TrimSpace(raw.Description) != "":
		r.Description = raw.Description
	}

	r.Icon = SelectIcon(r.RocketName)

	if net, ok := parseNet(raw.Net); ok {
		local := net.In(loc)
		days := DaysUntil(net, clock.Now())
		r.NetTime = &net
		r.DaysUntil = &days
		r.DateLong = local.Format("January 2, 2006")
		r.DateShort = local.Format("Jan 2, 2006")
		r.TimeLong = local.Format("3:04 PM MST")
		r.TimeShort = local.Format("03:04 PM MST")
	}

	return r
}

// NormalizeLaunches keeps the provider order: the first launch is featured and
// the rest form the grid.
func NormalizeLaunches(page RawLaunchPage, loc *time.Location) LaunchFeed {
	feed := LaunchFeed{Count: len(page.Results), Others: []LaunchRecord{}}
	for i, raw := range page.Results {
		rec := NormalizeLaunch(raw, loc)
		if i == 0 {
			feed.Featured = &rec
			continue
		}
		feed.Others = append(feed.Others, rec)
	}
	return feed
}

// parseNet accepts the provider's RFC 3339 timestamps. An unparsable value is
// treated the same as a missing one.
func parseNet(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
