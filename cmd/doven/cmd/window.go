package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theakshaypant/doven/internal/adapter/google"
	"github.com/theakshaypant/doven/internal/config"
	"github.com/theakshaypant/doven/internal/core"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Print the time window and request the next run would use",
	Long: `Compute the window without calling the provider. Useful for checking
time zone offsets around daylight saving changes. The API key is not needed
and is shown redacted.`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	span := config.Settings{Days: v.GetInt(config.KeyDays)}.Span()

	win, err := calculator.Next(v.GetString(config.KeyTimezone), span)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "zone:     %s\n", win.Zone)
	fmt.Fprintf(out, "time_min: %s\n", win.TimeMin())
	fmt.Fprintf(out, "time_max: %s\n", win.TimeMax())
	fmt.Fprintf(out, "query:    %s\n", win.Encode())

	if id, ok := config.Lookup(v, config.KeyCalendarID); ok {
		q := core.Query{
			CalendarID: google.QualifyCalendarID(id),
			Window:     win,
			MaxResults: v.GetInt(config.KeyMaxResults),
		}
		base, _ := config.Lookup(v, config.KeyBaseURL)
		fmt.Fprintf(out, "request:  %s\n", google.RequestURL(base, q))
	}
	return nil
}
