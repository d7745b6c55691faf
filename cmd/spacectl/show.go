package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/space-dashboard/internal/dashboard"
	"github.com/couchcryptid/space-dashboard/internal/domain"
	"github.com/couchcryptid/space-dashboard/internal/tui"
	"github.com/spf13/cobra"
)

var apodCmd = &cobra.Command{
	Use:   "apod",
	Short: "Print the astronomy picture of the day",
	Long: `Prints the picture of the day for --date (YYYY-MM-DD), or today in
DISPLAY_TIMEZONE when no date is given.

Examples:
  spacectl apod
  spacectl apod --date 2024-01-15 --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		date, _ := cmd.Flags().GetString("date")
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp(logQuiet)
		if err != nil {
			return err
		}
		defer a.close()

		state, err := a.dash.LoadPicture(cmd.Context(), date)
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrFutureDate) {
			return err
		}
		if output == "json" {
			return printJSON(state)
		}
		fmt.Print(tui.PictureView(state))
		return nil
	},
}

var launchesCmd = &cobra.Command{
	Use:   "launches",
	Short: "Print the next upcoming launches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp(logQuiet)
		if err != nil {
			return err
		}
		defer a.close()

		state, err := a.dash.LoadLaunches(cmd.Context())
		switch strings.ToLower(output) {
		case "json":
			return printJSON(state)
		case "table":
			if err != nil {
				return errors.New(dashboard.LaunchErrorMessage)
			}
			printLaunchTable(state.Feed)
			return nil
		default:
			fmt.Print(tui.LaunchesView(state))
			return nil
		}
	},
}

var bodyCmd = &cobra.Command{
	Use:   "body <key>",
	Short: "Print the detail of one planet",
	Long: `Prints the detail view of one of the eight planets: mercury, venus, earth,
mars, jupiter, saturn, uranus or neptune.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		key, err := domain.ParseBodyKey(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(logQuiet)
		if err != nil {
			return err
		}
		defer a.close()

		if !a.dash.LoadBody(cmd.Context(), key) {
			return fmt.Errorf("%s is not available", key.Title())
		}
		state := a.dash.Bodies()
		if output == "json" {
			return printJSON(state.Body)
		}
		fmt.Print(tui.BodyView(state))
		return nil
	},
}

func init() {
	apodCmd.Flags().StringP("date", "d", "", "Picture date (YYYY-MM-DD); defaults to today")
	apodCmd.Flags().StringP("output", "O", "text", "Output format: text or json")
	launchesCmd.Flags().StringP("output", "O", "text", "Output format: text, table or json")
	bodyCmd.Flags().StringP("output", "O", "text", "Output format: text or json")
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printLaunchTable(feed domain.LaunchFeed) {
	records := feed.Others
	if feed.Featured != nil {
		records = append([]domain.LaunchRecord{*feed.Featured}, records...)
	}
	if len(records) == 0 {
		fmt.Println("No upcoming launches.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAGENCY\tROCKET\tDATE\tTIME\tSTATUS\tDAYS")
	fmt.Fprintln(w, "----\t------\t------\t----\t----\t------\t----")
	for _, l := range records {
		days := "-"
		if l.DaysUntil != nil {
			days = fmt.Sprintf("%d", *l.DaysUntil)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Name, l.AgencyName, l.RocketName, l.DateShort, l.TimeShort, l.StatusAbbreviation, days)
	}
	w.Flush()
}
