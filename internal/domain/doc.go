// Package domain normalizes the three space feeds behind the dashboard into
// display-ready records.
//
// # Data Sources
//
// Picture of the day: NASA APOD (https://api.nasa.gov/planetary/apod). One
// record per calendar date, keyed by an ISO "YYYY-MM-DD" date. The provider
// publishes nothing for future dates, so those are rejected locally.
//
// Upcoming launches: The Space Devs Launch Library 2
// (https://lldev.thespacedevs.com/2.2.0/launch/upcoming/), queried with
// limit=10 and ordering=net. The first result is the featured launch.
//
// Planets: le-systeme-solaire (https://api.le-systeme-solaire.net/rest/bodies/).
// Resources are named in French, so each [BodyKey] maps to a slug:
//
//	mercury → mercure   venus → venus     earth → terre      mars → mars
//	jupiter → jupiter   saturn → saturne  uranus → uranus    neptune → neptune
//
// # Provider Conventions
//
// Picture media:
//
//	media_type "video" → embedded player, image hidden.
//	anything else      → image from url, then hdurl, then the placeholder.
//
// Launch time:
//
//	"net" (no earlier than) is an RFC 3339 UTC timestamp and may be null.
//	daysUntil = ceil((net - now) / 24h), never negative.
//
// Launch status abbreviations:
//
//	Go  → affirmative
//	TBC → tentative
//	TBD, Hold, Success, missing, ... → neutral
//
// Body magnitudes:
//
//	mass = massValue × 10^massExponent kg
//	vol  = volValue × 10^volExponent km³
//	semimajorAxis, perihelion, aphelion in km; escape in m/s;
//	sideralOrbit in days; sideralRotation in hours (negative is retrograde).
//
// # Missing Values
//
// Every display field renders as a value, a named default, or [NotAvailable].
// Distances, volume and the moon count distinguish zero from missing; the other
// numeric fields treat zero as missing.
package domain
