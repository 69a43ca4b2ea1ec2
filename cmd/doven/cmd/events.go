package cmd

import (
	"bytes"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theakshaypant/doven/internal/config"
	"github.com/theakshaypant/doven/internal/digest"
	"github.com/theakshaypant/doven/internal/export"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Export the coming events as JSON, YAML or iCalendar",
	Long: `Fetch the same window as the digest and write the normalized events in a
machine-readable format. "text" prints the digest.

Nothing is written unless the whole fetch succeeds.`,
	Example: `  doven events --format json
  doven events -f ics > uge.ics`,
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringP("format", "f", config.DefaultFormat, "Output format: text, json, yaml or ics")
	viper.BindPFlag(config.KeyFormat, eventsCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(viper.GetString(config.KeyFormat))
	if err != nil {
		return err
	}
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	q, events, err := fetchEvents(cmd.Context(), s)
	if err != nil {
		return err
	}

	return writeAll(cmd, func(buf *bytes.Buffer) error {
		if format == export.FormatText {
			return digest.Render(buf, q.Window, events, digest.Options{Describer: digest.PlainDescriber})
		}
		return export.Write(buf, format, export.NewDocument(q, events), time.Now())
	})
}
