package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/models"
)

const (
	BackOfficeSimulated = "simulated"
	BackOfficeSQLite    = "sqlite"
	BackOfficeMySQL     = "mysql"
)

const devSessionSecret = "blackfish-dev-session-secret"

type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	SessionSecret  string
	SessionTTL     time.Duration
	SubmitDelay    time.Duration
	ConfirmWindow  time.Duration
	BackOffice     string
	BackOfficeDSN  string
	ContentFile    string
	HeroVideo      string
	AllowedOrigins []string
	SubmitRate     int
}

// LoadEnv reads .env into the process environment when the file exists.
// It reports whether a file was loaded.
func LoadEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for anything unset.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		BackOffice:    strings.ToLower(getEnv("BACKOFFICE_DRIVER", BackOfficeSimulated)),
		BackOfficeDSN: getEnv("BACKOFFICE_DSN", ""),
		ContentFile:   getEnv("CONTENT_FILE", ""),
		HeroVideo:     getEnv("HERO_VIDEO", ""),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SubmitDelay, err = getDuration("SUBMIT_DELAY", components.DefaultSubmitDelay); err != nil {
		return nil, err
	}
	if cfg.ConfirmWindow, err = getDuration("CONFIRM_WINDOW", components.DefaultConfirmWindow); err != nil {
		return nil, err
	}
	if cfg.SubmitRate, err = getInt("SUBMIT_RATE", 10); err != nil {
		return nil, err
	}
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = devSessionSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionTTL <= 0 {
		return models.ValidationError{Field: "SESSION_TTL", Msg: "must be positive"}
	}
	if c.SubmitDelay <= 0 {
		return models.ValidationError{Field: "SUBMIT_DELAY", Msg: "must be positive"}
	}
	if c.ConfirmWindow <= 0 {
		return models.ValidationError{Field: "CONFIRM_WINDOW", Msg: "must be positive"}
	}
	if c.SubmitRate <= 0 {
		return models.ValidationError{Field: "SUBMIT_RATE", Msg: "must be positive"}
	}
	switch c.BackOffice {
	case BackOfficeSimulated:
	case BackOfficeSQLite, BackOfficeMySQL:
		if c.BackOfficeDSN == "" {
			return models.ValidationError{Field: "BACKOFFICE_DSN", Msg: "is required for the " + c.BackOffice + " back office"}
		}
	default:
		return models.ValidationError{Field: "BACKOFFICE_DRIVER", Msg: fmt.Sprintf("unknown driver %q", c.BackOffice)}
	}
	return nil
}

// UsesDevSecret reports whether sessions are signed with the built-in key.
func (c *Config) UsesDevSecret() bool {
	return c.SessionSecret == devSessionSecret
}

func (c *Config) ReservationConfig() components.ReservationConfig {
	return components.ReservationConfig{
		SubmitDelay:   c.SubmitDelay,
		ConfirmWindow: c.ConfirmWindow,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// getDuration accepts Go durations ("1500ms", "5s") or a bare number of
// milliseconds.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, models.ValidationError{Field: key, Msg: fmt.Sprintf("invalid duration %q", raw)}
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.ValidationError{Field: key, Msg: fmt.Sprintf("invalid number %q", raw)}
	}
	return n, nil
}
