package templates

import (
	"time"

	"github.com/oksasatya/artflow-api/config"
)

type Option func(*EmailData)

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04:05 MST")
	}
}

func WithValidFor(dur time.Duration) Option {
	return func(d *EmailData) { d.ValidFor = dur.String() }
}

// NewBaseEmailData fills the common fields from config and applies opts.
func NewBaseEmailData(cfg *config.Config, purpose, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Purpose:        purpose,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewOTPData(cfg *config.Config, purpose, name, email, code string, opts ...Option) EmailData {
	d := NewBaseEmailData(cfg, purpose, name, email, opts...)
	d.Code = code
	return d
}
