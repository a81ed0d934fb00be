// Package valueobject contains immutable, self-validating domain values.
// Construction is the only way to obtain a valid instance.
package valueobject

import (
	"regexp"
	"strings"

	"github.com/oksasatya/go-hexagonal-users/internal/domain"
)

const invalidEmailMsg = "Invalid email format"

// local and domain labels must start and end with an alphanumeric character,
// TLD is at least two letters. Input is lowercased before matching.
var emailPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9._%-]*[a-z0-9])?@[a-z0-9]([a-z0-9.-]*[a-z0-9])?\.[a-z]{2,}$`)

// Email is a normalized (trimmed, lowercased) email address.
type Email struct {
	value string
}

// NewEmail validates and normalizes raw. Every rejection is a
// *domain.ValidationError with the same message so callers cannot probe which
// rule failed.
func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case v == "":
		return Email{}, invalidEmail()
	case strings.HasPrefix(v, ".") || strings.HasPrefix(v, "@"):
		return Email{}, invalidEmail()
	case strings.HasSuffix(v, ".") || strings.HasSuffix(v, "@"):
		return Email{}, invalidEmail()
	case strings.Contains(v, ".."):
		return Email{}, invalidEmail()
	}

	local, host, ok := strings.Cut(v, "@")
	if !ok || strings.Contains(host, "@") {
		return Email{}, invalidEmail()
	}
	if local == "" || host == "" || !strings.Contains(host, ".") {
		return Email{}, invalidEmail()
	}
	if !emailPattern.MatchString(v) {
		return Email{}, invalidEmail()
	}

	return Email{value: v}, nil
}

func invalidEmail() error {
	return domain.NewValidationError(invalidEmailMsg)
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
