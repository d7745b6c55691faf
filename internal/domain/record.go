package domain

import "time"

// RecordType tags a published record with the feed it came from.
type RecordType string

const (
	RecordPicture RecordType = "picture"
	RecordLaunch  RecordType = "launch"
	RecordBody    RecordType = "body"
)

// Record is a normalized feed record ready to publish downstream. Key is the
// record identity: picture date, launch id or body key.
type Record struct {
	Type         RecordType
	Key          string
	NormalizedAt time.Time
	Payload      any
}

// PictureRecord wraps a normalized picture for publishing.
func PictureRecord(p PictureOfDay) Record {
	return Record{Type: RecordPicture, Key: p.Date, NormalizedAt: clock.Now(), Payload: p}
}

// LaunchRecords wraps every launch in the feed, featured first.
func LaunchRecords(feed LaunchFeed) []Record {
	now := clock.Now()
	out := make([]Record, 0, feed.Count)
	if feed.Featured != nil {
		out = append(out, Record{Type: RecordLaunch, Key: feed.Featured.ID, NormalizedAt: now, Payload: *feed.Featured})
	}
	for _, l := range feed.Others {
		out = append(out, Record{Type: RecordLaunch, Key: l.ID, NormalizedAt: now, Payload: l})
	}
	return out
}

// BodyRecord wraps a normalized body for publishing.
func BodyRecord(b CelestialBody) Record {
	return Record{Type: RecordBody, Key: string(b.Key), NormalizedAt: clock.Now(), Payload: b}
}
