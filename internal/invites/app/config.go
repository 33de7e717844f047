package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env                 string        `env:"ENV"                   envDefault:"dev"`  // Environment (dev, staging, prod)
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"` // json, text
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseFile string `env:"INVITES_DATABASE_FILE" envDefault:"invites.db"`
	PepperFile   string `env:"INVITES_PEPPER_FILE"   envDefault:"pepper"`

	// Access tokens are issued by the auth service. Issuer and Audience are
	// checked when set; keys come from JWKSURL or JWKSFile.
	Issuer              string        `env:"INVITES_ISSUER"`
	Audience            []string      `env:"INVITES_AUDIENCE"              envSeparator:","`
	JWKSURL             string        `env:"INVITES_JWKS_URL"`
	JWKSFile            string        `env:"INVITES_JWKS_FILE"`
	JWKSRefreshInterval time.Duration `env:"INVITES_JWKS_REFRESH_INTERVAL" envDefault:"15m"`

	SiteURL           string        `env:"INVITES_SITE_URL"            envDefault:"http://localhost:8080"`
	LoginURL          string        `env:"INVITES_LOGIN_URL"`
	LoginBackURL      string        `env:"INVITES_LOGIN_BACK_URL"`
	DaysToExpiry      int           `env:"INVITES_DAYS_TO_EXPIRY"      envDefault:"7"`
	ForceRequireGroup bool          `env:"INVITES_FORCE_REQUIRE_GROUP" envDefault:"false"`
	PasswordMinLength int           `env:"INVITES_PASSWORD_MIN_LENGTH" envDefault:"8"`
	MailDriver        string        `env:"INVITES_MAIL_DRIVER"         envDefault:"log"` // smtp, log
	MailFrom          string        `env:"INVITES_MAIL_FROM"           envDefault:"noreply@localhost"`
	MailTimeout       time.Duration `env:"INVITES_MAIL_TIMEOUT"        envDefault:"10s"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.JWKSURL == "" && c.JWKSFile == "" {
		errs = append(errs, errors.New("one of INVITES_JWKS_URL or INVITES_JWKS_FILE is required"))
	}
	if c.DaysToExpiry < 0 {
		errs = append(errs, errors.New("INVITES_DAYS_TO_EXPIRY must not be negative"))
	}
	switch c.MailDriver {
	case "log":
	case "smtp":
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required with the smtp mail driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown INVITES_MAIL_DRIVER %q", c.MailDriver))
	}
	return errors.Join(errs...)
}
