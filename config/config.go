package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/weatherbot-go/errs"
	"github.com/angas/weatherbot-go/logging"
	"github.com/spf13/viper"
)

type AppConfigLocation struct {
	// Place name to geocode, e.g. "Milpitas"
	Place string
	// Region code appended to the geocoding query, e.g. a US state code "06"
	RegionCode string `mapstructure:"region_code"`
}

type AppConfigGeocoding struct {
	// OpenWeatherMap API key, usually provided via GEOCODING_API_KEY
	ApiKey  string  `mapstructure:"api_key"`
	BaseUrl *string `mapstructure:"base_url"`
}

func (g AppConfigGeocoding) GetBaseUrl() string {
	if g.BaseUrl == nil {
		return "https://api.openweathermap.org/geo/1.0/direct"
	}
	return *g.BaseUrl
}

type AppConfigForecast struct {
	BaseUrl *string `mapstructure:"base_url"`
	// IANA timezone forecast timestamps are converted to, default: America/Los_Angeles
	Timezone *string `mapstructure:"timezone"`
}

func (f AppConfigForecast) GetBaseUrl() string {
	if f.BaseUrl == nil {
		return "https://api.open-meteo.com/v1/forecast"
	}
	return *f.BaseUrl
}

func (f AppConfigForecast) GetTimezone() string {
	if f.Timezone == nil {
		return "America/Los_Angeles"
	}
	return *f.Timezone
}

type AppConfigDiscord struct {
	// Bot credential, usually provided via DISCORD_BOT_TOKEN
	BotToken string `mapstructure:"bot_token"`
	// Discord user id of the single recipient
	UserId string `mapstructure:"user_id"`
	// Name used in the message greeting
	DisplayName string `mapstructure:"display_name"`
}

type AppConfigReport struct {
	// Cron spec for daemon mode, default: every morning at 06:30
	RunAt *string `mapstructure:"run_at"`
}

func (r AppConfigReport) GetRunAt() string {
	if r.RunAt == nil {
		return "30 6 * * *"
	}
	return *r.RunAt
}

type AppConfigDatabase struct {
	Path *string
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == nil {
		return "weatherbot.db"
	}
	return *d.Path
}

type AppConfigLogging struct {
	// Min log level for database: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries kept in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Location  AppConfigLocation
	Geocoding AppConfigGeocoding
	Forecast  AppConfigForecast
	Discord   AppConfigDiscord
	Report    AppConfigReport
	Database  AppConfigDatabase
	Logging   AppConfigLogging
}

// Keys must be registered for AutomaticEnv to reach viper.Unmarshal,
// so every env-overridable setting gets a default here.
func setDefaults(v *viper.Viper) {
	v.SetDefault("location.place", "Milpitas")
	v.SetDefault("location.region_code", "06")
	v.SetDefault("geocoding.api_key", "")
	v.SetDefault("discord.bot_token", "")
	v.SetDefault("discord.user_id", "")
	v.SetDefault("discord.display_name", "Anton")
	v.SetDefault("logging.console_level", "INFO")
	v.SetDefault("logging.db_level", "INFO")
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
		// No config file is fine, everything can come from env.
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}

// Validate fails fast on missing required inputs before any network call.
func (c *AppConfig) Validate() error {
	if c.Location.Place == "" {
		return fmt.Errorf("%w: location.place is required", errs.ErrValidation)
	}
	if c.Geocoding.ApiKey == "" {
		return fmt.Errorf("%w: geocoding.api_key is required", errs.ErrValidation)
	}
	if c.Discord.UserId == "" {
		return fmt.Errorf("%w: discord.user_id is required", errs.ErrValidation)
	}
	if c.Discord.DisplayName == "" {
		return fmt.Errorf("%w: discord.display_name is required", errs.ErrValidation)
	}
	if c.Discord.BotToken == "" {
		return fmt.Errorf("%w: discord.bot_token is required", errs.ErrAuth)
	}
	return nil
}
