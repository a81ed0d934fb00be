// Package service holds stateless domain services.
package service

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

// DefaultCost matches 12 bcrypt rounds.
const DefaultCost = 12

// bcrypt ignores everything past 72 bytes of input.
const bcryptMaxInput = 72

// PasswordService hashes and verifies passwords with bcrypt.
type PasswordService struct {
	cost int
}

// NewPasswordService returns a service using cost as the bcrypt work factor.
// A non-positive cost selects DefaultCost; others are clamped to bcrypt's range.
func NewPasswordService(cost int) *PasswordService {
	switch {
	case cost <= 0:
		cost = DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &PasswordService{cost: cost}
}

func (s *PasswordService) Cost() int { return s.cost }

// Hash returns a salted bcrypt hash. Every call draws a fresh salt.
func (s *PasswordService) Hash(p valueobject.Password) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(p), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether p matches storedHash. Malformed or empty hashes yield
// false.
func (s *PasswordService) Verify(p valueobject.Password, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), bcryptInput(p)) == nil
}

// bcryptInput keeps long passwords fully significant by digesting anything
// bcrypt would otherwise truncate.
func bcryptInput(p valueobject.Password) []byte {
	raw := []byte(p.Reveal())
	if len(raw) <= bcryptMaxInput {
		return raw
	}
	sum := sha256.Sum256(raw)
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
