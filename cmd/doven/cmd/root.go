package cmd

import (
	"bytes"
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/theakshaypant/doven/internal/adapter/google"
	"github.com/theakshaypant/doven/internal/config"
	"github.com/theakshaypant/doven/internal/core"
	"github.com/theakshaypant/doven/internal/digest"
	appLog "github.com/theakshaypant/doven/internal/log"
	"github.com/theakshaypant/doven/internal/window"
)

var (
	cfgFile string
	logger  = zap.NewNop()

	// Swapped in tests to pin the window.
	calculator = window.Calculator{}
)

var rootCmd = &cobra.Command{
	Use:   "doven",
	Short: "A weekly digest of a shared Google calendar",
	Long: `doven ("lazy" in Danish) fetches the coming week from a public Google
calendar and prints it as a short Danish digest, ready to paste into a
newsletter or a chat.

The API key and calendar id come from flags, DOVEN_* environment variables,
a .env file or $HOME/.config/doven/config.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE:              runDigest,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logFailure(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/doven/config.yaml)")

	rootCmd.PersistentFlags().StringP("calendar", "c", "", "Calendar id; short ids get @group.calendar.google.com")
	rootCmd.PersistentFlags().String("timezone", config.DefaultTimezone, "IANA time zone the window is computed in")
	rootCmd.PersistentFlags().IntP("days", "d", config.DefaultDays, "Number of days to look ahead")
	rootCmd.PersistentFlags().Int("max-results", core.DefaultMaxResults, "Maximum number of events to fetch")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Deadline for the provider call")
	rootCmd.PersistentFlags().String("base-url", "", "Calendar API base URL (default is Google's)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.Flags().Int("width", 72, "Wrap event descriptions at this width (0 disables)")

	// Bind persistent flags to viper
	viper.BindPFlag(config.KeyCalendarID, rootCmd.PersistentFlags().Lookup("calendar"))
	viper.BindPFlag(config.KeyTimezone, rootCmd.PersistentFlags().Lookup("timezone"))
	viper.BindPFlag(config.KeyDays, rootCmd.PersistentFlags().Lookup("days"))
	viper.BindPFlag(config.KeyMaxResults, rootCmd.PersistentFlags().Lookup("max-results"))
	viper.BindPFlag(config.KeyTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag(config.KeyBaseURL, rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	used, err := config.Init(viper.GetViper(), cfgFile)
	logger = appLog.NewStderr(viper.GetBool(config.KeyVerbose))
	if err != nil {
		return err
	}
	if used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

func runDigest(cmd *cobra.Command, args []string) error {
	s, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	q, events, err := fetchEvents(cmd.Context(), s)
	if err != nil {
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	return digest.Render(cmd.OutOrStdout(), q.Window, events, digest.Options{
		Width:     width,
		Describer: digest.PlainDescriber,
	})
}

// buildQuery computes a fresh window and pairs it with the settings.
func buildQuery(s config.Settings) (core.Query, error) {
	win, err := calculator.Next(s.Timezone, s.Span())
	if err != nil {
		return core.Query{}, err
	}
	return core.Query{
		CalendarID: google.QualifyCalendarID(s.CalendarID),
		Window:     win,
		MaxResults: s.MaxResults,
		APIKey:     s.APIKey,
	}, nil
}

func newProvider(ctx context.Context, s config.Settings) (*google.GoogleAdapter, error) {
	return google.NewGoogleAdapter(ctx, "google", "Google Calendar", google.Options{
		BaseURL:     s.BaseURL,
		AccessToken: s.AccessToken,
		Logger:      logger,
	})
}

// fetchEvents runs one query under the configured timeout.
func fetchEvents(ctx context.Context, s config.Settings) (core.Query, []core.Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	q, err := buildQuery(s)
	if err != nil {
		return core.Query{}, nil, err
	}
	provider, err := newProvider(ctx, s)
	if err != nil {
		return core.Query{}, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	events, err := provider.FetchEvents(ctx, q)
	if err != nil {
		return core.Query{}, nil, err
	}
	return q, events, nil
}

// writeAll renders into memory first so a failure leaves stdout empty.
func writeAll(cmd *cobra.Command, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	_, err := buf.WriteTo(cmd.OutOrStdout())
	return err
}

func logFailure(err error) {
	fields := []zap.Field{zap.Error(err)}
	if kind := core.KindOf(err); kind != 0 {
		fields = append([]zap.Field{zap.Stringer("kind", kind)}, fields...)
	}
	if core.Retryable(err) {
		fields = append(fields, zap.Bool("retryable", true))
	}
	logger.Error("doven failed", fields...)
}
