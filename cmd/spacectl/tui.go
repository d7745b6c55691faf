package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/couchcryptid/space-dashboard/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal dashboard",
	Long: `Opens the dashboard in the terminal. tab or 1-3 switch sections, s toggles
the sidebar, enter loads the typed date and t loads today's picture, ←/→ pick
a planet, r refreshes launches and q quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(logNone)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		p := tea.NewProgram(tui.New(ctx, a.dash), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run terminal dashboard: %w", err)
		}
		return nil
	},
}
