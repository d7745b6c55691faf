// Command spacectl runs the space dashboard service and its terminal views.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/couchcryptid/space-dashboard/internal/adapter/feeds"
	kafkaadapter "github.com/couchcryptid/space-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/space-dashboard/internal/config"
	"github.com/couchcryptid/space-dashboard/internal/dashboard"
	"github.com/couchcryptid/space-dashboard/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spacectl",
	Short: "Space dashboard: picture of the day, upcoming launches and the planets",
	Long: `spacectl serves the space dashboard API and offers terminal views of the
same feeds. Settings come from the environment, an optional .env file in the
working directory and an optional CONFIG_FILE (YAML).`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, tuiCmd, apodCmd, launchesCmd, bodyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the wired dashboard shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	dash    *dashboard.Dashboard
	writer  *kafkaadapter.Writer
}

type logMode int

const (
	logService logMode = iota // configured level and format on stdout
	logQuiet                  // warnings on stderr, keeps stdout for output
	logNone                   // discarded, the terminal belongs to the UI
)

// newApp loads configuration and wires the feed client, the optional Kafka
// publisher and the dashboard.
func newApp(mode logMode) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg, mode)
	metrics := observability.NewMetrics()
	client := feeds.NewClient(cfg, metrics, logger)

	a := &app{cfg: cfg, logger: logger, metrics: metrics}

	var publisher dashboard.Publisher
	if cfg.KafkaEnabled {
		a.writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = a.writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	a.dash = dashboard.New(dashboard.Sources{
		Pictures: client,
		Launches: client,
		Bodies:   client,
	}, publisher, cfg.DisplayLocation, logger, metrics)

	return a, nil
}

func newLogger(cfg *config.Config, mode logMode) *slog.Logger {
	switch mode {
	case logQuiet:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	case logNone:
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	default:
		return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	}
}

func (a *app) close() {
	if a.writer == nil {
		return
	}
	if err := a.writer.Close(); err != nil {
		a.logger.Error("kafka writer close error", "error", err)
	}
}
