package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theakshaypant/doven/internal/config"
	"github.com/theakshaypant/doven/internal/core"
	"github.com/theakshaypant/doven/internal/digest"
	"github.com/theakshaypant/doven/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive digest viewer",
	Long:  `Show the digest in a scrollable full-screen view. Press r to fetch again.`,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	provider, err := newProvider(cmd.Context(), s)
	if err != nil {
		return err
	}

	m := tui.NewModel(provider, func() (core.Query, error) {
		return buildQuery(s)
	}, s.Timeout, digest.PlainDescriber)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
