package templates

import (
	"time"

	"github.com/oksasatya/go-hexagonal-users/config"
)

// timeLayout renders timestamps in emails, always in UTC.
const timeLayout = "02 January 2006, 15:04"

// branded returns EmailData for typ addressed to email, with company and
// link fields taken from cfg.
func branded(cfg *config.Config, typ, email string) EmailData {
	return EmailData{
		Type:           typ,
		Email:          email,
		RecipientEmail: email,
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
}

// NewWelcomeData is the queue payload for the welcome email sent after
// registration.
func NewWelcomeData(cfg *config.Config, email string, registeredAt time.Time) map[string]any {
	d := branded(cfg, Welcome, email)
	d.TimeAt = registeredAt.UTC()
	d.Time = d.TimeAt.Format(timeLayout)
	return ToMap(d)
}
