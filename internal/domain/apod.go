package domain

import (
	"fmt"
	"strings"
	"time"
)

// MediaType classifies the picture-of-the-day payload.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// DateLayout is the provider's ISO calendar date format.
const DateLayout = "2006-01-02"

// Picture fallbacks shown when the provider omits a field or the fetch fails.
const (
	PlaceholderImage    = "./assets/images/placeholder.webp"
	DefaultPictureTitle = "No title available"
	DefaultExplanation  = "No explanation available."
	DefaultCopyright    = "© NASA/JPL"
	DefaultAltText      = "Astronomy Picture of the Day"
)

// RawPicture is the APOD response body.
type RawPicture struct {
	Date           string `json:"date"`
	Title          string `json:"title"`
	Explanation    string `json:"explanation"`
	MediaType      string `json:"media_type"`
	URL            string `json:"url"`
	HDURL          string `json:"hdurl,omitempty"`
	ThumbnailURL   string `json:"thumbnail_url,omitempty"`
	Copyright      string `json:"copyright,omitempty"`
	ServiceVersion string `json:"service_version,omitempty"`
}

// PictureOfDay is the display-ready picture record.
type PictureOfDay struct {
	Date          string    `json:"date"`
	Heading       string    `json:"heading"`
	Title         string    `json:"title"`
	Explanation   string    `json:"explanation"`
	MediaType     MediaType `json:"media_type"`
	MediaLabel    string    `json:"media_label"`
	MediaURL      string    `json:"media_url"`
	AltText       string    `json:"alt_text"`
	Copyright     string    `json:"copyright,omitempty"`
	CopyrightText string    `json:"copyright_text"`
}

// DisplayMode is what the picture panel shows.
type DisplayMode string

const (
	DisplayImage       DisplayMode = "image"
	DisplayVideo       DisplayMode = "video"
	DisplayPlaceholder DisplayMode = "placeholder"
)

// PictureDisplay describes the media panel. In video mode the image is hidden
// and EmbedURL carries the player URL.
type PictureDisplay struct {
	Mode         DisplayMode `json:"mode"`
	ImageVisible bool        `json:"image_visible"`
	ImageURL     string      `json:"image_url,omitempty"`
	EmbedURL     string      `json:"embed_url,omitempty"`
}

// DefaultPicture is the text shown before any picture has loaded.
func DefaultPicture() PictureOfDay {
	return PictureOfDay{
		Title:         DefaultPictureTitle,
		Heading:       DefaultAltText,
		Explanation:   DefaultExplanation,
		MediaType:     MediaImage,
		MediaLabel:    "Image",
		MediaURL:      PlaceholderImage,
		AltText:       DefaultAltText,
		CopyrightText: DefaultCopyright,
	}
}

// PlaceholderDisplay is the media panel after a failed fetch.
func PlaceholderDisplay() PictureDisplay {
	return PictureDisplay{Mode: DisplayPlaceholder, ImageVisible: true, ImageURL: PlaceholderImage}
}

// NormalizePicture maps an APOD payload onto display fields. Only
// media_type "video" produces a video record; everything else is an image.
func NormalizePicture(raw RawPicture) PictureOfDay {
	p := PictureOfDay{
		Date:          raw.Date,
		Heading:       pictureHeading(raw.Date),
		Title:         orDefault(raw.Title, DefaultPictureTitle),
		Explanation:   orDefault(raw.Explanation, DefaultExplanation),
		AltText:       orDefault(raw.Title, DefaultAltText),
		Copyright:     strings.TrimSpace(raw.Copyright),
		CopyrightText: DefaultCopyright,
	}
	if p.Copyright != "" {
		p.CopyrightText = "© " + p.Copyright
	}

	if strings.EqualFold(raw.MediaType, string(MediaVideo)) {
		p.MediaType = MediaVideo
		p.MediaLabel = "Video"
		p.MediaURL = raw.URL
		return p
	}

	p.MediaType = MediaImage
	p.MediaLabel = "Image"
	p.MediaURL = firstNonEmpty(raw.URL, raw.HDURL, PlaceholderImage)
	return p
}

// Display returns the media panel state for the record.
func (p PictureOfDay) Display() PictureDisplay {
	if p.MediaType == MediaVideo {
		return PictureDisplay{Mode: DisplayVideo, EmbedURL: p.MediaURL}
	}
	return PictureDisplay{Mode: DisplayImage, ImageVisible: true, ImageURL: p.MediaURL}
}

// ResolvePictureDate validates a requested picture date. An empty input means
// today in loc. Dates after today are rejected before any request is made.
func ResolvePictureDate(input string, loc *time.Location) (string, error) {
	today := Today(loc)
	input = strings.TrimSpace(input)
	if input == "" {
		return today, nil
	}
	d, err := time.Parse(DateLayout, input)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	iso := d.Format(DateLayout)
	if iso > today {
		return "", fmt.Errorf("%w: %s", ErrFutureDate, iso)
	}
	return iso, nil
}

// FormatInputDate renders an ISO date for the date picker label, e.g.
// "2024-01-15" → "Jan 15, 2024".
func FormatInputDate(iso string) (string, error) {
	d, err := time.Parse(DateLayout, iso)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	return d.Format("Jan 2, 2006"), nil
}

func pictureHeading(iso string) string {
	d, err := time.Parse(DateLayout, iso)
	if err != nil {
		return DefaultAltText
	}
	return DefaultAltText + " - " + d.Format("January 2, 2006")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
