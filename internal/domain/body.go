package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BodyKey identifies one of the eight tracked planets.
type BodyKey string

const (
	Mercury BodyKey = "mercury"
	Venus   BodyKey = "venus"
	Earth   BodyKey = "earth"
	Mars    BodyKey = "mars"
	Jupiter BodyKey = "jupiter"
	Saturn  BodyKey = "saturn"
	Uranus  BodyKey = "uranus"
	Neptune BodyKey = "neptune"
)

// DefaultBody is selected once the initial body load settles.
const DefaultBody = Earth

// Body fallbacks.
const (
	DefaultDiscoverer    = "Known since antiquity"
	DefaultDiscoveryDate = "Ancient"
	DefaultBodyType      = "Planet"
	DefaultFact          = "Explore this celestial body in our solar system"
)

var bodyKeys = []BodyKey{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}

// The body provider keys its resources by French name.
var providerSlugs = map[BodyKey]string{
	Mercury: "mercure",
	Venus:   "venus",
	Earth:   "terre",
	Mars:    "mars",
	Jupiter: "jupiter",
	Saturn:  "saturne",
	Uranus:  "uranus",
	Neptune: "neptune",
}

// Bodies returns the eight body keys in orbital order.
func Bodies() []BodyKey {
	out := make([]BodyKey, len(bodyKeys))
	copy(out, bodyKeys)
	return out
}

// ParseBodyKey accepts a body key in any case.
func ParseBodyKey(s string) (BodyKey, error) {
	k := BodyKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := providerSlugs[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBody, s)
	}
	return k, nil
}

// Slug returns the provider resource name for the key.
func (k BodyKey) Slug() string {
	return providerSlugs[k]
}

// Title returns the key with its first letter upper-cased.
func (k BodyKey) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// RawBody is a body payload from the solar-system provider. Numeric fields are
// pointers so a missing value can be told apart from zero.
type RawBody struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	EnglishName     string     `json:"englishName"`
	IsPlanet        bool       `json:"isPlanet"`
	Moons           []RawMoon  `json:"moons"`
	SemimajorAxis   *float64   `json:"semimajorAxis"`
	Perihelion      *float64   `json:"perihelion"`
	Aphelion        *float64   `json:"aphelion"`
	Eccentricity    *float64   `json:"eccentricity"`
	Inclination     *float64   `json:"inclination"`
	Mass            *RawMass   `json:"mass"`
	Vol             *RawVolume `json:"vol"`
	Density         *float64   `json:"density"`
	Gravity         *float64   `json:"gravity"`
	Escape          *float64   `json:"escape"`
	MeanRadius      *float64   `json:"meanRadius"`
	EquaRadius      *float64   `json:"equaRadius"`
	PolarRadius     *float64   `json:"polarRadius"`
	SideralOrbit    *float64   `json:"sideralOrbit"`
	SideralRotation *float64   `json:"sideralRotation"`
	AroundPlanet    *RawAround `json:"aroundPlanet"`
	DiscoveredBy    string     `json:"discoveredBy"`
	DiscoveryDate   string     `json:"discoveryDate"`
	AlternativeName string     `json:"alternativeName"`
	AxialTilt       *float64   `json:"axialTilt"`
	AvgTemp         *float64   `json:"avgTemp"`
	BodyType        string     `json:"bodyType"`
}

type RawMoon struct {
	Moon string `json:"moon"`
	Rel  string `json:"rel"`
}

type RawMass struct {
	MassValue    *float64 `json:"massValue"`
	MassExponent *int     `json:"massExponent"`
}

type RawVolume struct {
	VolValue    *float64 `json:"volValue"`
	VolExponent *int     `json:"volExponent"`
}

type RawAround struct {
	Planet string `json:"planet"`
	Rel    string `json:"rel"`
}

// CelestialBody holds the numeric facts for a body plus their display strings.
// Nil numeric fields were missing from the payload.
type CelestialBody struct {
	Key                 BodyKey     `json:"key"`
	EnglishName         string      `json:"english_name"`
	BodyType            string      `json:"body_type"`
	IsPlanet            bool        `json:"is_planet"`
	MeanRadiusKm        *float64    `json:"mean_radius_km,omitempty"`
	MassKg              *float64    `json:"mass_kg,omitempty"`
	DensityGcm3         *float64    `json:"density_gcm3,omitempty"`
	SemimajorAxisKm     *float64    `json:"semimajor_axis_km,omitempty"`
	OrbitalPeriodDays   *float64    `json:"orbital_period_days,omitempty"`
	RotationPeriodHours *float64    `json:"rotation_period_hours,omitempty"`
	MoonCount           int         `json:"moon_count"`
	GravityMs2          *float64    `json:"gravity_ms2,omitempty"`
	DiscoveredBy        string      `json:"discovered_by,omitempty"`
	DiscoveryDate       string      `json:"discovery_date,omitempty"`
	VolumeKm3           *float64    `json:"volume_km3,omitempty"`
	PerihelionKm        *float64    `json:"perihelion_km,omitempty"`
	AphelionKm          *float64    `json:"aphelion_km,omitempty"`
	Eccentricity        *float64    `json:"eccentricity,omitempty"`
	InclinationDeg      *float64    `json:"inclination_deg,omitempty"`
	AxialTiltDeg        *float64    `json:"axial_tilt_deg,omitempty"`
	AvgTempK            *float64    `json:"avg_temp_k,omitempty"`
	EscapeVelocityKms   *float64    `json:"escape_velocity_kms,omitempty"`
	OrbitsAround        string      `json:"orbits_around,omitempty"`
	Display             BodyDisplay `json:"display"`
}

// BodyDisplay is the detail panel text for a body. Every field is either a
// formatted value, a named default or NotAvailable.
type BodyDisplay struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Distance       string   `json:"distance"`
	Radius         string   `json:"radius"`
	Mass           string   `json:"mass"`
	Density        string   `json:"density"`
	OrbitalPeriod  string   `json:"orbital_period"`
	RotationPeriod string   `json:"rotation_period"`
	Moons          string   `json:"moons"`
	Gravity        string   `json:"gravity"`
	Discoverer     string   `json:"discoverer"`
	DiscoveryDate  string   `json:"discovery_date"`
	BodyType       string   `json:"body_type"`
	Volume         string   `json:"volume"`
	Perihelion     string   `json:"perihelion"`
	Aphelion       string   `json:"aphelion"`
	Eccentricity   string   `json:"eccentricity"`
	Inclination    string   `json:"inclination"`
	AxialTilt      string   `json:"axial_tilt"`
	AvgTemp        string   `json:"avg_temp"`
	EscapeVelocity string   `json:"escape_velocity"`
	Facts          []string `json:"facts"`
}

// NormalizeBody derives the numeric facts and display strings for key from
// its raw payload. It never fails: an empty payload yields a record of
// defaults and NotAvailable.
//
// Distances, volume and the moon count keep zero as a real value; every other
// numeric field treats zero the same as missing.
func NormalizeBody(key BodyKey, raw RawBody) CelestialBody {
	b := CelestialBody{
		Key:                 key,
		EnglishName:         raw.EnglishName,
		BodyType:            raw.BodyType,
		IsPlanet:            raw.IsPlanet,
		MeanRadiusKm:        nonZero(raw.MeanRadius),
		MassKg:              scaled(massParts(raw.Mass)),
		DensityGcm3:         nonZero(raw.Density),
		SemimajorAxisKm:     raw.SemimajorAxis,
		OrbitalPeriodDays:   nonZero(raw.SideralOrbit),
		RotationPeriodHours: nonZero(raw.SideralRotation),
		MoonCount:           len(raw.Moons),
		GravityMs2:          nonZero(raw.Gravity),
		DiscoveredBy:        raw.DiscoveredBy,
		DiscoveryDate:       raw.DiscoveryDate,
		VolumeKm3:           scaled(volumeParts(raw.Vol)),
		PerihelionKm:        raw.Perihelion,
		AphelionKm:          raw.Aphelion,
		Eccentricity:        nonZero(raw.Eccentricity),
		InclinationDeg:      nonZero(raw.Inclination),
		AxialTiltDeg:        nonZero(raw.AxialTilt),
		AvgTempK:            nonZero(raw.AvgTemp),
	}
	if v := nonZero(raw.Escape); v != nil {
		kms := *v / 1000
		b.EscapeVelocityKms = &kms
	}
	if raw.AroundPlanet != nil {
		b.OrbitsAround = raw.AroundPlanet.Planet
	}
	b.Display = formatBody(key, b)
	return b
}

func formatBody(key BodyKey, b CelestialBody) BodyDisplay {
	name := orDefault(b.EnglishName, key.Title())
	d := BodyDisplay{
		Name:           name,
		Description:    fmt.Sprintf("%s is a %s in our solar system.", name, orDefault(b.BodyType, "planet")),
		Distance:       FormatDistance(b.SemimajorAxisKm),
		Radius:         formatFixed(b.MeanRadiusKm, 0, " km"),
		Mass:           FormatMass(b.MassKg),
		Density:        formatFixed(b.DensityGcm3, 2, " g/cm³"),
		OrbitalPeriod:  FormatDays(b.OrbitalPeriodDays),
		RotationPeriod: FormatRotation(b.RotationPeriodHours),
		Moons:          strconv.Itoa(b.MoonCount),
		Gravity:        formatFixed(b.GravityMs2, 1, " m/s²"),
		Discoverer:     orDefault(b.DiscoveredBy, DefaultDiscoverer),
		DiscoveryDate:  orDefault(b.DiscoveryDate, DefaultDiscoveryDate),
		BodyType:       orDefault(b.BodyType, DefaultBodyType),
		Volume:         FormatLargeNumber(b.VolumeKm3),
		Perihelion:     FormatDistance(b.PerihelionKm),
		Aphelion:       FormatDistance(b.AphelionKm),
		Eccentricity:   formatFixed(b.Eccentricity, 4, ""),
		Inclination:    formatFixed(b.InclinationDeg, 2, "°"),
		AxialTilt:      formatFixed(b.AxialTiltDeg, 2, "°"),
		AvgTemp:        NotAvailable,
		EscapeVelocity: formatFixed(b.EscapeVelocityKms, 1, " km/s"),
		Facts:          bodyFacts(b),
	}
	if b.AvgTempK != nil {
		d.AvgTemp = strconv.FormatFloat(*b.AvgTempK, 'f', -1, 64) + "K"
	}
	return d
}

func bodyFacts(b CelestialBody) []string {
	var facts []string
	switch {
	case b.MoonCount == 1:
		facts = append(facts, "1 known moon")
	case b.MoonCount > 1:
		facts = append(facts, fmt.Sprintf("%d known moons", b.MoonCount))
	}
	if b.IsPlanet {
		facts = append(facts, "Official planet in our solar system")
	}
	if b.GravityMs2 != nil {
		facts = append(facts, fmt.Sprintf("Surface gravity: %.1f m/s²", *b.GravityMs2))
	}
	if b.OrbitsAround != "" {
		facts = append(facts, "Orbits around "+b.OrbitsAround)
	}
	if len(facts) == 0 {
		facts = append(facts, DefaultFact)
	}
	return facts
}

func formatFixed(v *float64, decimals int, suffix string) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64) + suffix
}

func nonZero(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func massParts(m *RawMass) (*float64, *int) {
	if m == nil {
		return nil, nil
	}
	return nonZero(m.MassValue), m.MassExponent
}

func volumeParts(v *RawVolume) (*float64, *int) {
	if v == nil {
		return nil, nil
	}
	return v.VolValue, v.VolExponent
}

// scaled combines a mantissa and base-10 exponent. Both parts are required.
func scaled(mantissa *float64, exponent *int) *float64 {
	if mantissa == nil || exponent == nil {
		return nil
	}
	v := *mantissa * math.Pow10(*exponent)
	return &v
}
