package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/services/source"
)

const EnvPrefix = "LEDGER"

type Settings struct {
	Source SourceSettings `mapstructure:"source"`
	Report ReportSettings `mapstructure:"report"`
	Server ServerSettings `mapstructure:"server"`
	Export ExportSettings `mapstructure:"export"`
}

type SourceSettings struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	Token         string        `mapstructure:"token"`
	PageSize      int           `mapstructure:"page_size" validate:"min=1"`
	OverFetchDays int           `mapstructure:"over_fetch_days" validate:"min=-1,max=366"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RetryMax      int           `mapstructure:"retry_max" validate:"min=0,max=10"`
}

type ReportSettings struct {
	PageSize int `mapstructure:"page_size" validate:"min=1,max=500"`
	// DefaultStart is a Jalaali day ("1404-03-01") used when a request names no start date.
	DefaultStart string `mapstructure:"default_start" validate:"required"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	// RateLimit is requests per minute per client IP; 0 disables limiting.
	RateLimit int `mapstructure:"rate_limit" validate:"min=0"`
}

type ExportSettings struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

var defaults = map[string]any{
	"source.base_url":        "",
	"source.token":           "",
	"source.page_size":       source.DefaultPageSize,
	"source.over_fetch_days": source.DefaultOverFetchDays,
	"source.timeout":         30 * time.Second,
	"source.retry_max":       2,
	"report.page_size":       10,
	"report.default_start":   "1404-03-01",
	"server.host":            "localhost",
	"server.port":            8080,
	"server.rate_limit":      120,
	"export.bucket":          "",
	"export.prefix":          "reports/",
	"export.region":          "",
}

// LoadSettings reads the optional settings file at path and applies LEDGER_* environment overrides
// (LEDGER_SOURCE_BASE_URL, LEDGER_SERVER_PORT, ...). A non-nil profile overrides the source
// endpoint before the result is validated.
func LoadSettings(path string, profile *Profile) (*Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	s.ApplyProfile(profile)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// ApplyProfile points the source settings at the profile's host and token.
func (s *Settings) ApplyProfile(p *Profile) {
	if p == nil {
		return
	}
	if p.Host != "" {
		s.Source.BaseURL = p.Host
	}
	if p.Token != "" {
		s.Source.Token = p.Token
	}
}

// DefaultRange spans from the configured Jalaali start day to now. An unusable start day falls back
// to today.
func (r ReportSettings) DefaultRange(ctx context.Context, now time.Time) (domain.DateRange, error) {
	start := now
	if d, err := calendar.ParseJalaali(r.DefaultStart); err == nil {
		start = calendar.GregorianOrNow(ctx, d)
	}
	if start.After(now) {
		start = now
	}
	return domain.NewDateRange(start, now)
}
