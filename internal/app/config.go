package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the landing service.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	EmailJSBaseURL    string        `envconfig:"EMAILJS_BASE_URL" default:"https://api.emailjs.com"`
	EmailJSPublicKey  string        `envconfig:"EMAILJS_PUBLIC_KEY" required:"true"`
	EmailJSPrivateKey string        `envconfig:"EMAILJS_PRIVATE_KEY"`
	EmailJSServiceID  string        `envconfig:"EMAILJS_SERVICE_ID" required:"true"`
	EmailJSTemplateID string        `envconfig:"EMAILJS_TEMPLATE_ID" required:"true"`
	EmailJSTimeout    time.Duration `envconfig:"EMAILJS_TIMEOUT" default:"15s"`
	EmailJSRate       float64       `envconfig:"EMAILJS_RATE" default:"1"`
	EmailJSBurst      int           `envconfig:"EMAILJS_BURST" default:"5"`

	LeadRecipients []string `envconfig:"LEAD_RECIPIENTS"`
	LeadTimezone   string   `envconfig:"LEAD_TIMEZONE" default:"UTC"`

	SubmitRateLimit int `envconfig:"SUBMIT_RATE_LIMIT" default:"10"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		return errors.New("session secret must be provided")
	}
	if c.CSRFSecret == "" {
		return errors.New("csrf secret must be provided")
	}
	if c.EmailJSPublicKey == "" || c.EmailJSServiceID == "" || c.EmailJSTemplateID == "" {
		return errors.New("emailjs public key, service id and template id must be provided")
	}
	if _, err := time.LoadLocation(c.LeadTimezone); err != nil {
		return errors.New("lead timezone is not a valid IANA zone")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Location resolves LeadTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c == nil || c.LeadTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.LeadTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
