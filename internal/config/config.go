package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/phauna/phaunabot/internal/timefmt"
)

// Config holds the bot's runtime configuration, loaded from environment
// variables. The allow-list and Telegram token have no defaults; everything
// else does.
type Config struct {
	// TelegramToken is the bot token issued by BotFather.
	TelegramToken string `env:"TELEGRAM_TOKEN"`

	// AllowedChatIDs is the comma-separated list of Telegram chat IDs
	// permitted to talk to the bot. Loaded once and immutable afterwards.
	AllowedChatIDs []string `env:"ACCEPTED_TELEGRAM_CHAT_IDS" envSeparator:","`

	// UTCOffsetHours is the fixed offset applied when encoding user-entered
	// times, as a decimal hour count (-5 renders as -05:00, 5.5 as +05:30).
	UTCOffsetHours float64 `env:"PHAUNABOT_UTC_OFFSET_HOURS"`

	// TimeZone is the IANA zone name attached to created timed events.
	TimeZone string `env:"PHAUNABOT_TIMEZONE" envDefault:"America/Chicago"`

	// CalendarID selects the calendar the bot reads and writes.
	CalendarID string `env:"PHAUNABOT_CALENDAR_ID" envDefault:"primary"`

	// GoogleClientID and GoogleClientSecret identify the OAuth client.
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	// BaseURL is the externally reachable base for the auth HTTP server;
	// the OAuth redirect URI is derived from it.
	BaseURL string `env:"PHAUNABOT_BASE_URL" envDefault:"http://localhost:3002"`

	// HTTPAddr is the listen address for the auth/health HTTP server.
	HTTPAddr string `env:"PHAUNABOT_HTTP_ADDR" envDefault:":3002"`

	// MetricsAddr is the listen address for the Prometheus metrics server.
	MetricsAddr string `env:"PHAUNABOT_METRICS_ADDR" envDefault:":9090"`
}

// Parse reads the configuration from the environment without validating it.
// Commands that only need a slice of the configuration, such as the auth
// helpers, use Parse directly.
func Parse() (Config, error) {
	cfg := Config{UTCOffsetHours: timefmt.DefaultOffsetHours}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	cfg.AllowedChatIDs = trimAll(cfg.AllowedChatIDs)
	return cfg, nil
}

// Load parses the configuration from the environment and validates the
// fields the bot cannot run without.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return cfg, err
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN must be set")
	}
	if len(cfg.AllowedChatIDs) == 0 {
		return cfg, fmt.Errorf("ACCEPTED_TELEGRAM_CHAT_IDS must list at least one chat ID")
	}

	return cfg, nil
}

// RedirectURL returns the OAuth redirect URI served by the auth HTTP server.
func (c Config) RedirectURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/auth/google/redirect"
}

// trimAll trims whitespace around each entry and drops empty ones, so
// "123, 456," parses the way operators expect.
func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
