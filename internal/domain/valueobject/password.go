package valueobject

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-hexagonal-users/internal/domain"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 128

	// PasswordSpecialChars is the set of symbols that satisfy the
	// special-character rule.
	PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

	maskedPassword = "Password(***)"
)

// Password is a plaintext secret that passed the strength rules. It only lives
// long enough to be hashed and is never rendered: every formatting path masks it.
type Password struct {
	value string
}

// NewPassword checks raw against the strength rules in a fixed order and
// reports the first violation. Surrounding whitespace is kept as typed.
func NewPassword(raw string) (Password, error) {
	if strings.TrimSpace(raw) == "" {
		return Password{}, domain.NewValidationError("Password cannot be empty")
	}

	n := utf8.RuneCountInString(raw)
	if n < PasswordMinLength {
		return Password{}, domain.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", PasswordMinLength))
	}
	if n > PasswordMaxLength {
		return Password{}, domain.NewValidationError(
			fmt.Sprintf("Password must not exceed %d characters", PasswordMaxLength))
	}

	if !strings.ContainsAny(raw, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return Password{}, domain.NewValidationError("Password must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(raw, "abcdefghijklmnopqrstuvwxyz") {
		return Password{}, domain.NewValidationError("Password must contain at least one lowercase letter")
	}
	if !strings.ContainsAny(raw, "0123456789") {
		return Password{}, domain.NewValidationError("Password must contain at least one digit")
	}
	if !strings.ContainsAny(raw, PasswordSpecialChars) {
		return Password{}, domain.NewValidationError("Password must contain at least one special character")
	}

	return Password{value: raw}, nil
}

// Reveal returns the plaintext. Only hashing code should call it.
func (p Password) Reveal() string { return p.value }

func (p Password) Equals(other Password) bool {
	return p.value == other.value
}

func (p Password) String() string   { return maskedPassword }
func (p Password) GoString() string { return maskedPassword }

func (p Password) MarshalText() ([]byte, error) {
	return []byte(maskedPassword), nil
}

func (p Password) MarshalJSON() ([]byte, error) {
	return []byte(`"` + maskedPassword + `"`), nil
}
