// Command recordfixtures fetches live provider payloads and stores them as
// test fixtures: one picture of the day (image), one video day, the upcoming
// launch page and all eight planets. Provider settings come from the same
// environment variables as the service.
//
// Usage:
//
//	go run ./cmd/recordfixtures \
//	  -out internal/domain/testdata \
//	  -date 2024-01-15 \
//	  -video-date 2024-02-03
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/space-dashboard/internal/adapter/feeds"
	"github.com/couchcryptid/space-dashboard/internal/config"
	"github.com/couchcryptid/space-dashboard/internal/domain"
	"github.com/couchcryptid/space-dashboard/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "internal/domain/testdata", "fixture directory")
	date := flag.String("date", "2024-01-15", "picture date for apod.json (an image day)")
	videoDate := flag.String("video-date", "2024-02-03", "picture date for apod_video.json (a video day)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall fetch timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := feeds.NewClient(cfg, observability.NewMetrics(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	for name, d := range map[string]string{"apod.json": *date, "apod_video.json": *videoDate} {
		raw, err := client.FetchPicture(ctx, d)
		if err != nil {
			return fmt.Errorf("fetch picture %s: %w", d, err)
		}
		if err := writeJSON(filepath.Join(*out, name), raw); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Printf("%s: %s (%s)", name, raw.Title, raw.MediaType)
	}

	page, err := client.FetchLaunches(ctx)
	if err != nil {
		return fmt.Errorf("fetch launches: %w", err)
	}
	if err := writeJSON(filepath.Join(*out, "launches.json"), page); err != nil {
		return fmt.Errorf("writing launches.json: %w", err)
	}
	log.Printf("launches.json: %d of %d upcoming", len(page.Results), page.Count)

	for _, key := range domain.Bodies() {
		payload, err := client.FetchBody(ctx, key)
		if err != nil {
			return fmt.Errorf("fetch body %s: %w", key, err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, payload, "", "  "); err != nil {
			return fmt.Errorf("indent body %s: %w", key, err)
		}
		buf.WriteByte('\n')
		path := filepath.Join(*out, "bodies", string(key)+".json")
		if err := writeFile(path, buf.Bytes()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("bodies/%s.json: %d bytes", key, buf.Len())
	}

	log.Printf("fixtures written to %s", *out)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
