package templates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/pkg/mailer/templates"
)

func TestNewWelcomeData(t *testing.T) {
	cfg := &config.Config{AppName: "Users", CompanyName: "Acme", SupportURL: "https://acme.test/help"}
	at := time.Date(2024, 7, 9, 13, 45, 0, 0, time.FixedZone("WIB", 7*3600))

	data := templates.NewWelcomeData(cfg, "new@example.com", at)
	assert.Equal(t, "new@example.com", data["Email"])
	assert.Equal(t, "new@example.com", data["RecipientEmail"])
	assert.Equal(t, templates.Welcome, data["Type"])
	assert.Equal(t, "Acme", data["CompanyName"])
	assert.Equal(t, "09 July 2024, 06:45", data["Time"])
}

func TestRender_Welcome(t *testing.T) {
	cfg := &config.Config{AppName: "Users", CompanyName: "Acme", SupportURL: "https://acme.test/help"}
	data := templates.NewWelcomeData(cfg, "new@example.com", time.Date(2024, 7, 9, 6, 45, 0, 0, time.UTC))

	subject, text, html, err := templates.Render(templates.Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Users", subject)
	assert.Contains(t, text, "Hi new@example.com")
	assert.Contains(t, text, "https://acme.test/help")
	assert.Contains(t, html, "new@example.com")
}

func TestRender_DefaultsWhenBrandingMissing(t *testing.T) {
	data := templates.NewWelcomeData(&config.Config{}, "x@example.com", time.Now())

	subject, _, _, err := templates.Render(templates.Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to our service", subject)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := templates.Render("does_not_exist", map[string]any{})
	assert.ErrorIs(t, err, templates.ErrUnknownTemplate)
}
