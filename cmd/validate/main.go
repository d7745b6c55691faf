// Command validate normalizes every recorded fixture and checks the display
// invariants of the three feeds: pictures resolve to exactly one display mode,
// launches carry non-negative countdowns and a known status class, and every
// planet renders each display field as a value or "N/A".
//
// Usage:
//
//	go run ./cmd/validate -dir internal/domain/testdata
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/domain"
	"github.com/jonboulle/clockwork"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dir := flag.String("dir", "internal/domain/testdata", "fixture directory written by recordfixtures")
	now := flag.String("now", "", "reference time for countdowns (RFC3339); defaults to the current time")
	flag.Parse()

	if *now != "" {
		t, err := time.Parse(time.RFC3339, *now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -now: %v\n", err)
			os.Exit(2)
		}
		domain.SetClock(clockwork.NewFakeClockAt(t))
	}

	os.Exit(run(*dir))
}

func run(dir string) int {
	defer domain.SetClock(nil)

	fmt.Println("=== Space Dashboard Fixture Validation ===")
	fmt.Println()

	phases := []*phase{
		validatePictures(dir),
		validateLaunches(dir),
		validateBodies(dir),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// ── Phase 1: Pictures ──

func validatePictures(dir string) *phase {
	p := &phase{name: "Phase 1: Picture of the day"}

	for _, name := range []string{"apod.json", "apod_video.json"} {
		var raw domain.RawPicture
		if err := loadJSON(filepath.Join(dir, name), &raw); err != nil {
			p.errorf("%s: %v", name, err)
			continue
		}
		pic := domain.NormalizePicture(raw)
		d := pic.Display()

		switch pic.MediaType {
		case domain.MediaVideo:
			if d.Mode != domain.DisplayVideo || d.ImageVisible || d.EmbedURL == "" {
				p.errorf("%s: video picture must embed and hide the image, got %+v", name, d)
			}
		case domain.MediaImage:
			if d.Mode != domain.DisplayImage || !d.ImageVisible || d.ImageURL == "" {
				p.errorf("%s: image picture must show an image, got %+v", name, d)
			}
		default:
			p.errorf("%s: unexpected media type %q", name, pic.MediaType)
		}
		if pic.Title == "" || pic.Explanation == "" || pic.AltText == "" || pic.CopyrightText == "" {
			p.errorf("%s: empty text field in %+v", name, pic)
		}
	}
	return p
}

// ── Phase 2: Launches ──

func validateLaunches(dir string) *phase {
	p := &phase{name: "Phase 2: Upcoming launches"}

	var page domain.RawLaunchPage
	if err := loadJSON(filepath.Join(dir, "launches.json"), &page); err != nil {
		p.errorf("launches.json: %v", err)
		return p
	}

	feed := domain.NormalizeLaunches(page, time.UTC)
	if feed.Count != len(page.Results) {
		p.errorf("count %d, want %d", feed.Count, len(page.Results))
	}
	if len(page.Results) > 0 && feed.Featured == nil {
		p.errorf("non-empty feed has no featured launch")
	}

	for _, l := range domain.LaunchRecords(feed) {
		rec, ok := l.Payload.(domain.LaunchRecord)
		if !ok {
			p.errorf("%s: payload is %T", l.Key, l.Payload)
			continue
		}
		if rec.DaysUntil != nil && *rec.DaysUntil < 0 {
			p.errorf("%s: negative countdown %d", rec.ID, *rec.DaysUntil)
		}
		switch rec.StatusClass {
		case domain.StatusAffirmative, domain.StatusTentative, domain.StatusNeutral:
		default:
			p.errorf("%s: unknown status class %q", rec.ID, rec.StatusClass)
		}
		if (rec.NetTime == nil) != (rec.DateLong == domain.ToBeDetermined) {
			p.errorf("%s: date label %q disagrees with net time", rec.ID, rec.DateLong)
		}
		if rec.Name == "" || rec.AgencyName == "" || rec.RocketName == "" || rec.Description == "" {
			p.errorf("%s: empty text field", rec.ID)
		}
	}
	return p
}

// ── Phase 3: Bodies ──

func validateBodies(dir string) *phase {
	p := &phase{name: "Phase 3: Celestial bodies"}

	for _, key := range domain.Bodies() {
		for _, raw := range bodyInputs(p, dir, key) {
			b := domain.NormalizeBody(key, raw)
			v := reflect.ValueOf(b.Display)
			for i := range v.NumField() {
				if s, ok := v.Field(i).Interface().(string); ok && s == "" {
					p.errorf("%s: display field %s is empty", key, v.Type().Field(i).Name)
				}
			}
			if len(b.Display.Facts) == 0 {
				p.errorf("%s: no facts", key)
			}
		}
	}
	return p
}

// bodyInputs returns the recorded payload for key plus an empty payload, which
// must normalize just as cleanly.
func bodyInputs(p *phase, dir string, key domain.BodyKey) []domain.RawBody {
	inputs := []domain.RawBody{{}}
	var raw domain.RawBody
	if err := loadJSON(filepath.Join(dir, "bodies", string(key)+".json"), &raw); err != nil {
		p.errorf("%s: %v", key, err)
		return inputs
	}
	return append(inputs, raw)
}
