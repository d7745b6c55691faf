package tui

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/space-dashboard/internal/dashboard"
	"github.com/couchcryptid/space-dashboard/internal/domain"
)

var launchIcons = map[domain.LaunchIcon]string{
	domain.IconShuttle:   "🚀",
	domain.IconRocket:    "🛸",
	domain.IconSatellite: "🛰",
}

// PictureView renders the picture panel.
func PictureView(s dashboard.PictureState) string {
	var b strings.Builder
	p := s.Picture

	b.WriteString(titleStyle.Render(p.Heading) + "\n\n")
	b.WriteString(headingStyle.Render(p.Title) + "\n")
	field(&b, "Media", p.MediaLabel)
	switch s.Display.Mode {
	case domain.DisplayVideo:
		field(&b, "Video", s.Display.EmbedURL)
	default:
		field(&b, "Image", s.Display.ImageURL)
	}
	field(&b, "Copyright", p.CopyrightText)
	b.WriteString("\n" + p.Explanation + "\n")

	if s.Error != "" {
		b.WriteString("\n" + errorStyle.Render(s.Error) + "\n")
	}
	return b.String()
}

// LaunchesView renders the launch feed: the featured launch in full, then one
// line per remaining launch.
func LaunchesView(s dashboard.LaunchState) string {
	var b strings.Builder

	label := s.Label
	if label == "" {
		label = s.Feed.CountLabel()
	}
	b.WriteString(titleStyle.Render("Upcoming Launches") + "  " + mutedStyle.Render(label) + "\n\n")

	if s.Error != "" {
		b.WriteString(errorStyle.Render(s.Error) + "\n\n")
	}
	if s.Feed.Featured == nil {
		if s.Error == "" {
			b.WriteString(mutedStyle.Render("No upcoming launches.") + "\n")
		}
		return b.String()
	}

	f := s.Feed.Featured
	b.WriteString(headingStyle.Render(launchIcons[f.Icon]+" "+f.Name) + "  " + statusBadge(*f) + "\n")
	field(&b, "Agency", f.AgencyName)
	field(&b, "Rocket", f.RocketName)
	field(&b, "Pad", f.PadName+" ("+f.CountryCode+")")
	field(&b, "When", f.DateLong+" "+f.TimeLong)
	if f.DaysUntil != nil {
		field(&b, "T-minus", fmt.Sprintf("%d days", *f.DaysUntil))
	}
	b.WriteString("\n" + f.Description + "\n")

	if len(s.Feed.Others) > 0 {
		b.WriteString("\n")
	}
	for _, l := range s.Feed.Others {
		fmt.Fprintf(&b, "%s %-40s %s %s  %s\n", launchIcons[l.Icon], l.Name, l.DateShort, l.TimeShort, statusBadge(l))
	}
	return b.String()
}

// BodyView renders the detail of the selected body.
func BodyView(s dashboard.BodiesState) string {
	var b strings.Builder
	if s.Body == nil {
		b.WriteString(mutedStyle.Render(s.Selected.Title()+" is not available.") + "\n")
		return b.String()
	}

	d := s.Body.Display
	b.WriteString(titleStyle.Render(d.Name) + "\n")
	b.WriteString(d.Description + "\n\n")
	for _, row := range [][2]string{
		{"Distance from Sun", d.Distance},
		{"Radius", d.Radius},
		{"Mass", d.Mass},
		{"Volume", d.Volume},
		{"Density", d.Density},
		{"Gravity", d.Gravity},
		{"Escape velocity", d.EscapeVelocity},
		{"Orbital period", d.OrbitalPeriod},
		{"Rotation period", d.RotationPeriod},
		{"Perihelion", d.Perihelion},
		{"Aphelion", d.Aphelion},
		{"Eccentricity", d.Eccentricity},
		{"Inclination", d.Inclination},
		{"Axial tilt", d.AxialTilt},
		{"Avg. temperature", d.AvgTemp},
		{"Moons", d.Moons},
		{"Type", d.BodyType},
		{"Discovered by", d.Discoverer},
		{"Discovery date", d.DiscoveryDate},
	} {
		field(&b, row[0], row[1])
	}

	if len(d.Facts) > 0 {
		b.WriteString("\n" + headingStyle.Render("Facts") + "\n")
		for _, fact := range d.Facts {
			b.WriteString("  • " + fact + "\n")
		}
	}
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-18s", label+":")), value)
}

func statusBadge(l domain.LaunchRecord) string {
	style, ok := statusStyles[string(l.StatusClass)]
	if !ok {
		style = statusStyles[string(domain.StatusNeutral)]
	}
	return style.Render("[" + l.StatusAbbreviation + "]")
}
