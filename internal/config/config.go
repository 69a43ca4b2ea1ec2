// Package config resolves settings from flags, environment, .env files and
// an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/theakshaypant/doven/internal/core"
)

// Setting keys. Each is also read from DOVEN_<KEY> in the environment.
const (
	KeyAPIKey      = "google_api_key"
	KeyCalendarID  = "calendar_id"
	KeyTimezone    = "timezone"
	KeyDays        = "days"
	KeyMaxResults  = "max_results"
	KeyBaseURL     = "base_url"
	KeyAccessToken = "access_token"
	KeyTimeout     = "timeout"
	KeyFormat      = "format"
	KeyVerbose     = "verbose"
)

const (
	DefaultTimezone = "Europe/Copenhagen"
	DefaultDays     = 7
	DefaultTimeout  = 15 * time.Second
	DefaultFormat   = "json"
	EnvPrefix       = "DOVEN"
)

// ErrMissing is wrapped by Get when a key has no value.
var ErrMissing = errors.New("missing configuration")

// Settings is the resolved configuration for one run.
type Settings struct {
	APIKey      string
	CalendarID  string
	Timezone    string
	Days        int
	MaxResults  int
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
	Format      string
}

// Span returns the look-ahead period.
func (s Settings) Span() time.Duration {
	return time.Duration(s.Days) * 24 * time.Hour
}

// Init prepares v: .env files are loaded into the process environment,
// defaults are set, and the config file is read if there is one. It returns
// the path of the config file that was used, or "".
func Init(v *viper.Viper, cfgFile string, dotenvPaths ...string) (string, error) {
	LoadDotEnv(dotenvPaths...)

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return "", configError("read config file", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "doven"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	// The plain variable name is what existing .env files use.
	if err := v.BindEnv(KeyAPIKey, EnvPrefix+"_GOOGLE_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return "", err
	}

	v.SetDefault(KeyTimezone, DefaultTimezone)
	v.SetDefault(KeyDays, DefaultDays)
	v.SetDefault(KeyMaxResults, core.DefaultMaxResults)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyFormat, DefaultFormat)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return "", nil
		}
		return "", configError("read config file", err)
	}
	return v.ConfigFileUsed(), nil
}

// LoadDotEnv loads each existing file into the environment. Variables that
// are already set win. With no paths it tries ./.env and then ~/.env.
func LoadDotEnv(paths ...string) []string {
	if len(paths) == 0 {
		paths = []string{".env"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".env"))
		}
	}

	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			loaded = append(loaded, p)
		}
	}
	return loaded
}

// Get returns the value for key, failing with ErrMissing (as a config
// error) when the key is unset or blank.
func Get(v *viper.Viper, key string) (string, error) {
	val, ok := Lookup(v, key)
	if !ok {
		return "", configError("get "+key, fmt.Errorf("%w: %s is not set (env %s_%s)", ErrMissing, key, EnvPrefix, strings.ToUpper(key)))
	}
	return val, nil
}

// Lookup returns the value for key and whether it is set and non-blank.
func Lookup(v *viper.Viper, key string) (string, bool) {
	if !v.IsSet(key) {
		return "", false
	}
	val := strings.TrimSpace(v.GetString(key))
	return val, val != ""
}

// Load resolves every setting. The API key and calendar id are required.
func Load(v *viper.Viper) (Settings, error) {
	apiKey, err := Get(v, KeyAPIKey)
	if err != nil {
		return Settings{}, err
	}
	calendarID, err := Get(v, KeyCalendarID)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		APIKey:     apiKey,
		CalendarID: calendarID,
		Timezone:   v.GetString(KeyTimezone),
		Days:       v.GetInt(KeyDays),
		MaxResults: v.GetInt(KeyMaxResults),
		Timeout:    v.GetDuration(KeyTimeout),
		Format:     v.GetString(KeyFormat),
	}
	s.BaseURL, _ = Lookup(v, KeyBaseURL)
	s.AccessToken, _ = Lookup(v, KeyAccessToken)

	if s.Days <= 0 {
		return Settings{}, configError("load", fmt.Errorf("days must be positive, got %d", s.Days))
	}
	if s.MaxResults <= 0 {
		return Settings{}, configError("load", fmt.Errorf("max_results must be positive, got %d", s.MaxResults))
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	return s, nil
}

func configError(op string, err error) error {
	return &core.Error{Kind: core.KindConfig, Op: "config: " + op, Err: err}
}
