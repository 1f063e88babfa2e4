// Package config loads and validates the application configuration from an
// optional config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines all application settings. Credentials come from the
// environment (DISCORD_TOKEN, NAKDAN_API_KEY, optionally DEEPL_AUTH_KEY);
// everything else has a default and may be overridden in config.yaml or
// via ALEPHBOT_-prefixed environment variables.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Nakdan    NakdanConfig    `mapstructure:"nakdan"`
	Dicta     DictaConfig     `mapstructure:"dicta"`
	DeepL     DeepLConfig     `mapstructure:"deepl"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Bot       BotConfig       `mapstructure:"bot"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

type DiscordConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// GuildID limits slash command registration to one guild, which takes
	// effect immediately. Empty registers commands globally.
	GuildID string `mapstructure:"guild_id"`
}

type NakdanConfig struct {
	APIKey       string        `mapstructure:"api_key"        validate:"required"`
	BaseURL      string        `mapstructure:"base_url"       validate:"required,url"`
	MorphBaseURL string        `mapstructure:"morph_base_url" validate:"required,url"`
	Genre        string        `mapstructure:"genre"          validate:"required"`
	Timeout      time.Duration `mapstructure:"timeout"        validate:"required,min=1s,max=2m"`
	// MaxTextLength bounds command input in runes.
	MaxTextLength int `mapstructure:"max_text_length" validate:"required,min=1,max=10000"`
}

type DictaConfig struct {
	WSURL   string        `mapstructure:"ws_url"  validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required,min=1s,max=2m"`
}

type DeepLConfig struct {
	// AuthKey is optional; without it the quota report task is skipped.
	AuthKey string        `mapstructure:"auth_key"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required,min=1s,max=2m"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
	// UsageRetentionDays controls how long invocation records are kept.
	UsageRetentionDays int `mapstructure:"usage_retention_days" validate:"required,min=1"`
}

// BotConfig holds interaction behavior and user-facing message strings.
type BotConfig struct {
	// RequestTimeout bounds one command invocation end to end; it must stay
	// well inside Discord's interaction validity window.
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  validate:"required,min=1s,max=10m"`
	CommandCooldown time.Duration `mapstructure:"command_cooldown" validate:"min=0"`

	MsgProvideText        string `mapstructure:"msg_provide_text"        validate:"required"`
	MsgProvideHebrew      string `mapstructure:"msg_provide_hebrew"      validate:"required"`
	MsgTextTooLong        string `mapstructure:"msg_text_too_long"       validate:"required"`
	MsgServiceUnavailable string `mapstructure:"msg_service_unavailable" validate:"required"`
	MsgCouldNotProcess    string `mapstructure:"msg_could_not_process"   validate:"required"`
	MsgGeneralError       string `mapstructure:"msg_general_error"       validate:"required"`
	MsgCooldown           string `mapstructure:"msg_cooldown"            validate:"required"`
}

type SchedulerConfig struct {
	// Cron expressions; empty disables the task.
	UsageCleanupSchedule string `mapstructure:"usage_cleanup_schedule"`
	UsageReportSchedule  string `mapstructure:"usage_report_schedule"`
}

// Load reads configuration from defaults, config.yaml (optional), and the
// environment, then validates it. Missing credentials fail loading, which
// the caller treats as fatal.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			slog.Info("configuration file not found, using defaults", "path", path)
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ALEPHBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials keep their documented plain names.
	_ = v.BindEnv("discord.token", "DISCORD_TOKEN")
	_ = v.BindEnv("nakdan.api_key", "NAKDAN_API_KEY")
	_ = v.BindEnv("deepl.auth_key", "DEEPL_AUTH_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("configuration loaded",
		"log_level", cfg.Log.Level,
		"db_path", cfg.Database.Path,
		"nakdan_timeout", cfg.Nakdan.Timeout)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("nakdan.base_url", "https://nakdan-2-0.loadbalancer.dicta.org.il")
	v.SetDefault("nakdan.morph_base_url", "https://nakdan-for-morph-analysis.loadbalancer.dicta.org.il")
	v.SetDefault("nakdan.genre", "modern")
	v.SetDefault("nakdan.timeout", 10*time.Second)
	v.SetDefault("nakdan.max_text_length", 500)

	v.SetDefault("dicta.ws_url", "wss://translate.loadbalancer.dicta.org.il/api/ws")
	v.SetDefault("dicta.timeout", 30*time.Second)

	v.SetDefault("deepl.timeout", 10*time.Second)

	v.SetDefault("database.path", "alephbot.db")
	v.SetDefault("database.usage_retention_days", 90)

	v.SetDefault("bot.request_timeout", 25*time.Second)
	v.SetDefault("bot.command_cooldown", 30*time.Second)
	v.SetDefault("bot.msg_provide_text", "Please provide some text. Example: `/vowelize שלום עולם`")
	v.SetDefault("bot.msg_provide_hebrew", "Please provide Hebrew text. Example: `/vowelize שלום עולם`")
	v.SetDefault("bot.msg_text_too_long", "Text is too long! Please keep it under %d characters.")
	v.SetDefault("bot.msg_service_unavailable", "The service is unavailable right now. Please try again later.")
	v.SetDefault("bot.msg_could_not_process", "Sorry, your text could not be processed. Please try again later.")
	v.SetDefault("bot.msg_general_error", "An unexpected error occurred. Please try again later.")
	v.SetDefault("bot.msg_cooldown", "Please wait %.1f seconds before using this command again.")

	v.SetDefault("scheduler.usage_cleanup_schedule", "0 0 4 * * *")
	v.SetDefault("scheduler.usage_report_schedule", "0 0 8 * * *")
}
